package routes

import (
	"agri-match/internal/delivery/http/handler"
	v1 "agri-match/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health *handler.HealthHandler
	v1     v1.Handlers
	mw     v1.Middlewares
}

func NewRegistry(health *handler.HealthHandler, handlers v1.Handlers, mw v1.Middlewares) *Registry {
	return &Registry{health: health, v1: handlers, mw: mw}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health != nil {
		r.health.RegisterRoutes(app)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	v1.Register(api.Group("/v1"), r.v1, r.mw)
}
