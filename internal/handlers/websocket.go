package handlers

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/goaltrackhq/goaltrack-api/internal/logger"
	"github.com/goaltrackhq/goaltrack-api/internal/middleware"
	"github.com/goaltrackhq/goaltrack-api/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// GoalsEvent is the JSON message pushed to connected clients whenever the
// owner's goal list changes.
type GoalsEvent struct {
	Type  string        `json:"type"`
	Goals []models.Goal `json:"goals"`
}

const EventGoalsSnapshot = "goals_snapshot"

// WebSocketUpgrade checks the upgrade request and validates the JWT.
func WebSocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		// Authenticate via query param: ?token=<jwt>
		tokenString := c.Query("token")
		if tokenString == "" {
			// Also check Authorization header for non-browser clients
			authHeader := c.Get("Authorization")
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				tokenString = ""
			}
		}

		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing authentication token",
			})
		}

		claims, err := middleware.ParseToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		c.Locals("userId", claims.UserID)
		return c.Next()
	}
}

// HandleGoalStream delivers the live goal subscription: the current list
// on connect, then a fresh snapshot after every goal write — the explicit
// replacement for clients polling until data shows up.
func HandleGoalStream(c *websocket.Conn) {
	userID, ok := c.Locals("userId").(uuid.UUID)
	if !ok {
		c.Close()
		return
	}

	var writeMu sync.Mutex
	send := func(goals []models.Goal) {
		msg, err := json.Marshal(GoalsEvent{Type: EventGoalsSnapshot, Goals: goals})
		if err != nil {
			logger.L.Errorw("goal stream marshal failed", "err", err)
			return
		}
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
			logger.L.Debugw("goal stream write failed", "ownerId", userID, "err", err)
		}
	}

	// Initial snapshot, delivered once on registration.
	goals, err := Store.ListGoals(context.Background(), userID)
	if err != nil {
		logger.L.Errorw("goal stream initial fetch failed", "ownerId", userID, "err", err)
		c.Close()
		return
	}
	send(goals)

	unsubscribe := Store.SubscribeGoals(userID, send)
	defer unsubscribe()

	// Keep connection alive — read messages (client sends pings/keepalives)
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}
