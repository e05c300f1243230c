package routes

import (
	"skillbridge/internal/delivery/http/handler"
	v1 "skillbridge/internal/delivery/http/routes/v1"
	"skillbridge/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health *handler.HealthHandler
	ws     *ws.Handler
	v1deps v1.Deps
}

func NewRegistry(health *handler.HealthHandler, wsHandler *ws.Handler, deps v1.Deps) *Registry {
	return &Registry{health: health, ws: wsHandler, v1deps: deps}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	if r.health != nil {
		r.health.RegisterRoutes(app)
	}
	if r.ws != nil {
		app.Get("/ws/matches", r.ws.HandleMatchesWS)
	}

	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.v1deps)
}
