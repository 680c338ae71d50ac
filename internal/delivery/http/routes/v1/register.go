package v1

import (
	"agri-match/internal/delivery/http/handler"
	"agri-match/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Match       *handler.MatchHandler
	Application *handler.ApplicationHandler
	Job         *handler.JobHandler
}

type Middlewares struct {
	Auth       *middleware.AuthMiddleware
	ApplyLimit *middleware.RateLimitMiddleware
}

// Register mounts the v1 API. Auth is attached per route: job reads accept
// anonymous callers, everything else needs an access token.
func Register(r fiber.Router, h Handlers, mw Middlewares) {
	if r == nil || mw.Auth == nil {
		return
	}

	optional := mw.Auth.Optional()
	required := mw.Auth.Middleware()

	if h.Job != nil {
		jobs := r.Group("/jobs")
		jobs.Get("", optional, h.Job.List)
		jobs.Get("/:id", optional, h.Job.Get)
		jobs.Patch("/:id/status", required, h.Job.ChangeStatus)
	}

	if h.Match != nil {
		r.Get("/matches", required, h.Match.GetMatches)
	}

	if h.Application != nil {
		apps := r.Group("/applications")
		apps.Post("", required, mw.ApplyLimit.Middleware(), h.Application.Create)
		apps.Patch("/:id/status", required, h.Application.UpdateStatus)
	}
}
