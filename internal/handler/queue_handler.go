package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"stayops-be/internal/pkg/logger"
	"stayops-be/internal/pkg/serverutils"
	internalWS "stayops-be/internal/websocket"
)

// SnapshotReader hands back the last cached queue frame for a property, so a
// fresh connection can paint the dashboard before the next refresh fires.
type SnapshotReader interface {
	Load(ctx context.Context, propertyID uuid.UUID) ([]byte, bool)
}

// QueueHandler upgrades dashboard connections into a property's live queue
// room.
type QueueHandler struct {
	hub       *internalWS.Hub
	checker   serverutils.PropertyAccessChecker
	snapshots SnapshotReader
	logger    logger.ILogger
}

func NewQueueHandler(hub *internalWS.Hub, checker serverutils.PropertyAccessChecker, snapshots SnapshotReader, log logger.ILogger) *QueueHandler {
	return &QueueHandler{
		hub:       hub,
		checker:   checker,
		snapshots: snapshots,
		logger:    log,
	}
}

// ServeWs authenticates the handshake and joins the property room.
// Browsers cannot set headers on websocket upgrades, so the token is
// accepted from the query string first, Authorization header second.
func (h *QueueHandler) ServeWs(c *fiber.Ctx) error {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}
	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (Query 'token' or Header 'Authorization')"})
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return serverutils.JwtSecret(), nil
	})
	if err != nil || !token.Valid {
		h.logger.Warn("QueueHandler", "Invalid token in WS handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token missing user_id"})
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID format in token"})
	}

	propertyID, err := uuid.Parse(c.Params("propertyId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid property id"})
	}

	owns, err := h.checker.UserOwnsProperty(c.Context(), userID, propertyID)
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Property access could not be verified"})
	}
	if !owns {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Property does not belong to this account"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("QueueHandler", "WebSocket session started", map[string]interface{}{
				"user_id":     userID,
				"property_id": propertyID,
			})
			if h.snapshots != nil {
				if frame, ok := h.snapshots.Load(context.Background(), propertyID); ok {
					if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
						h.logger.Warn("QueueHandler", "Failed to replay cached snapshot", map[string]interface{}{"error": err.Error()})
					}
				}
			}
			internalWS.ServeWs(h.hub, conn, propertyID, userID)
			h.logger.Info("QueueHandler", "WebSocket session ended", map[string]interface{}{
				"user_id":     userID,
				"property_id": propertyID,
			})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}
