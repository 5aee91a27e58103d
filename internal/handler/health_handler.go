package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// Pinger is an interface for health check ping operations.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	pool          Pinger
	notifications bool
}

// NewHealthHandler creates a new HealthHandler. notifications reports
// whether the AMQP notifier is wired, so operators can tell at a glance.
func NewHealthHandler(pool Pinger, notifications bool) *HealthHandler {
	return &HealthHandler{pool: pool, notifications: notifications}
}

// Check performs a health check by pinging the database.
// Returns 200 OK when the database is reachable, 503 otherwise.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	if err := h.pool.Ping(c.Context()); err != nil {
		log.Error().Err(err).Msg("health check failed: database unreachable")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unhealthy",
			"error":  "database connection failed",
		})
	}
	return c.JSON(fiber.Map{
		"status":        "healthy",
		"notifications": h.notifications,
	})
}
