package websocket

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs attaches a dashboard connection to its property room and runs the
// pumps until the peer disconnects.
func ServeWs(hub *Hub, c *websocket.Conn, propertyID, userID uuid.UUID) {
	client := &Client{
		Hub:        hub,
		Conn:       c,
		PropertyID: propertyID,
		UserID:     userID,
		Send:       make(chan []byte, 256),
	}
	client.Hub.register <- client

	go client.writePump()
	client.readPump()
}
