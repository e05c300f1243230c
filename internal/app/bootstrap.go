package app

import (
	"context"
	"fmt"
	"strings"

	"skillbridge/internal/delivery/http/handler"
	"skillbridge/internal/delivery/http/middleware"
	"skillbridge/internal/delivery/http/routes"
	v1 "skillbridge/internal/delivery/http/routes/v1"
	"skillbridge/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// Bootstrap wires the whole service: HTTP surface, websocket hub, queue
// consumer and scheduler. The returned cleanup stops background work and
// closes connections.
func Bootstrap(c *Container) (*App, func() error, error) {
	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})

	errMw := middleware.NewErrorMiddleware(c.Logger)
	accessMw := middleware.NewAccessLogMiddleware(c.Logger)
	f.Use(errMw.Middleware())
	f.Use(accessMw.Middleware())

	healthHandler := handler.NewHealthHandler(c.Config.App.AppName, c.DB, c.Cache)
	wsHandler := ws.NewHandler(c.Hub, c.Logger)

	registry := routes.NewRegistry(healthHandler, wsHandler, v1.Deps{
		JWT:             c.JWT,
		Matching:        c.Matching,
		Actions:         c.Actions,
		Recommendations: c.Recommendations,
		Preferences:     c.Preferences,
		Analytics:       c.Analytics,
	})
	registry.Register(f)

	bgCtx, bgCancel := context.WithCancel(context.Background())
	go c.Hub.Run()

	if c.Config.Matching.ConsumerEnabled && c.Queue.Available() {
		go c.Consumer.Run(bgCtx)
	} else {
		c.Logger.Printf("[App] Queue consumer disabled")
	}

	if c.Config.Matching.SchedulerEnabled {
		go c.Scheduler.Run(bgCtx)
	} else {
		c.Logger.Printf("[App] Scheduler disabled")
	}

	cleanup := func() error {
		bgCancel()
		return c.Close()
	}

	return &App{Fiber: f, Container: c}, cleanup, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
