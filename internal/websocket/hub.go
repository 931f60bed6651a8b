package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"stayops-be/internal/pkg/logger"
)

// Hub tracks dashboard connections grouped by property. Every connection
// joins exactly one property room; queue updates fan out to the room, and a
// redis channel relays them across instances.
type Hub struct {
	// PropertyID -> connected dashboards (multi-tab, multi-device)
	rooms map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	// Random per-process id so an instance can skip its own redis echoes.
	instanceID string

	mu sync.RWMutex

	// Redis connection for cross-instance fan-out
	rdb *redis.Client

	logger logger.ILogger
}

const clusterChannel = "cluster_events"

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rooms:      make(map[uuid.UUID][]*Client),
		instanceID: uuid.NewString(),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.rooms[client.PropertyID] = append(h.rooms[client.PropertyID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client joined property room", map[string]interface{}{
				"property_id": client.PropertyID,
				"user_id":     client.UserID,
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.rooms[client.PropertyID]; ok {
				for i, c := range clients {
					if c == client {
						h.rooms[client.PropertyID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.rooms[client.PropertyID]) == 0 {
					delete(h.rooms, client.PropertyID)
					h.logger.Info("Hub", "Property room empty", map[string]interface{}{
						"property_id": client.PropertyID,
					})
				}
			}
			h.mu.Unlock()
		}
	}
}

// ActiveProperties lists every property with at least one open dashboard.
// The refresh loop uses this to skip properties nobody is watching.
func (h *Hub) ActiveProperties() []uuid.UUID {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]uuid.UUID, 0, len(h.rooms))
	for id := range h.rooms {
		out = append(out, id)
	}
	return out
}

// BroadcastToProperty pushes an event frame to every dashboard in the
// property's room, locally and via redis to the other instances.
func (h *Hub) BroadcastToProperty(propertyID uuid.UUID, event string, data interface{}) {
	frame, err := json.Marshal(map[string]interface{}{
		"type": event,
		"data": data,
	})
	if err != nil {
		h.logger.Error("Hub", "Frame marshal failed", map[string]interface{}{"error": err.Error()})
		return
	}

	h.deliverLocal(propertyID, frame)

	if h.rdb != nil {
		payload, _ := json.Marshal(map[string]interface{}{
			"origin":             h.instanceID,
			"target_property_id": propertyID.String(),
			"message":            json.RawMessage(frame),
		})
		h.rdb.Publish(context.Background(), clusterChannel, payload)
	}
}

func (h *Hub) deliverLocal(propertyID uuid.UUID, frame []byte) {
	// Unregister closes Send under the write lock, so sends must happen
	// under the read lock or they can hit a closed channel. The sends are
	// non-blocking, which keeps holding the lock across the loop safe.
	var dropped []*Client

	h.mu.RLock()
	for _, client := range h.rooms[propertyID] {
		select {
		case client.Send <- frame:
		default:
			dropped = append(dropped, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range dropped {
		h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{
			"property_id": propertyID,
			"user_id":     client.UserID,
		})
		h.unregister <- client
	}
}

func (h *Hub) subscribeToRedis() {
	// Every instance subscribes to the shared channel and delivers any
	// frame whose target property has a local room. Frames for rooms this
	// instance does not hold are dropped without cost.
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload struct {
			Origin           string          `json:"origin"`
			TargetPropertyID string          `json:"target_property_id"`
			Message          json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}
		if payload.Origin == h.instanceID {
			// Already delivered locally when the broadcast originated here.
			continue
		}

		propertyID, err := uuid.Parse(payload.TargetPropertyID)
		if err != nil {
			continue
		}
		h.deliverLocal(propertyID, payload.Message)
	}
}
