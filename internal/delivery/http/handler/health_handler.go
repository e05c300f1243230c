package handler

import (
	"context"
	"time"

	"skillbridge/internal/database"
	"skillbridge/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// Pinger reports cache reachability. Nil is treated as down.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	serviceName string
	db          database.DB
	cache       Pinger
}

func NewHealthHandler(serviceName string, db database.DB, cache Pinger) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.GetHealth)
}

// GetHealth reports degraded-but-alive when only Redis is down; the service
// still matches without its cache and queue.
func (h *HealthHandler) GetHealth(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	deps := fiber.Map{
		"database": "up",
		"redis":    "up",
	}

	dbUp := h.db != nil
	if dbUp {
		if err := h.db.Ping(ctx); err != nil {
			dbUp = false
		}
	}
	if !dbUp {
		deps["database"] = "down"
	}

	if h.cache == nil || h.cache.Ping(ctx) != nil {
		deps["redis"] = "down"
	}

	body := fiber.Map{
		"service":      h.serviceName,
		"status":       "healthy",
		"dependencies": deps,
	}

	if !dbUp {
		body["status"] = "unhealthy"
		return response.Error(c, fiber.StatusServiceUnavailable, "unhealthy", body)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, body)
}
