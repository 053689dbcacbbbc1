package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	PlayerIDHeader = "X-Player-ID"
	PlayerIDQuery  = "playerId"
	PlayerIDLocal  = "playerID"
)

// EnsurePlayerID reads the caller's identity from the X-Player-ID header, or
// the playerId query parameter for clients that cannot set headers (browser
// websockets), and rejects requests that carry neither.
func EnsurePlayerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if PlayerID(c) != "" {
			return c.Next()
		}

		playerID := strings.TrimSpace(c.Get(PlayerIDHeader))
		if playerID == "" {
			playerID = strings.TrimSpace(c.Query(PlayerIDQuery))
		}
		if playerID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Player ID is required. Please ensure client is properly initialized.",
			})
		}

		c.Locals(PlayerIDLocal, playerID)
		return c.Next()
	}
}

// PlayerID returns the identity stored by EnsurePlayerID, or "".
func PlayerID(c *fiber.Ctx) string {
	id, _ := c.Locals(PlayerIDLocal).(string)
	return id
}
