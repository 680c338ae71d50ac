package app

import (
	"context"
	"fmt"
	"strings"

	"agri-match/internal/config"
	"agri-match/internal/delivery/http/handler"
	"agri-match/internal/delivery/http/middleware"
	"agri-match/internal/delivery/http/routes"
	v1 "agri-match/internal/delivery/http/routes/v1"
	"agri-match/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

const applyRateLimitScope = "apply"

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP app on top of a wired container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("bootstrap container: %w", err)
	}
	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *zap.Logger) {
	if app == nil {
		return
	}

	errMw := middleware.NewErrorMiddleware(logger)
	accessMw := middleware.NewAccessLogMiddleware(logger)
	app.Use(accessMw.Middleware())
	app.Use(errMw.Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil || c == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(c.Config.JWT.AccessSecret, c.Config.JWT.AccessExpiresIn)

	var cachePinger handler.Pinger
	if c.Cache != nil && c.Cache.Client() != nil {
		cachePinger = c.Cache
	}

	var limiter middleware.Limiter
	if c.Limiter != nil {
		limiter = c.Limiter
	}

	routes.NewRegistry(
		handler.NewHealthHandler(c.DB, cachePinger),
		v1.Handlers{
			Match:       handler.NewMatchHandler(c.Ranking),
			Application: handler.NewApplicationHandler(c.Recorder),
			Job:         handler.NewJobHandler(c.JobFeed),
		},
		v1.Middlewares{
			Auth: middleware.NewAuthMiddleware(jwtSvc),
			ApplyLimit: middleware.NewRateLimitMiddleware(
				limiter,
				applyRateLimitScope,
				c.Config.RateLimit.ApplyLimit,
				c.Config.RateLimit.ApplyWindow,
			),
		},
	).Register(app)
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
