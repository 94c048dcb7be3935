package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"specshare/docs"
	"specshare/internal/http/middleware"
	"specshare/internal/logger"
	"specshare/internal/service"
)

// RouteConfig carries the dependencies of the HTTP routes.
type RouteConfig struct {
	Specs     service.SpecService
	DB        Pinger
	Log       logger.Logger
	PublicURL string
	// Metrics serves MetricsPath when non-nil.
	Metrics fiber.Handler
	Swagger bool
}

// RegisterRoutes attaches every route plus the terminal catch-all, so it
// must be the last registration on app.
//
// Routes are added per method with app.Add: app.Get would also answer HEAD,
// which belongs to the catch-all here.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Add(fiber.MethodGet, "/health", Health())
	app.Add(fiber.MethodGet, "/health/ready", Ready(cfg.DB))

	app.Add(fiber.MethodPost, "/api/specs", CreateSpec(cfg.Specs, cfg.Log, cfg.PublicURL))
	app.Add(fiber.MethodGet, "/api/specs/:id", GetSpec(cfg.Specs, cfg.Log))
	app.Add(fiber.MethodGet, "/s/:id", GetSpecContent(cfg.Specs, cfg.Log))

	if cfg.Metrics != nil {
		app.Add(fiber.MethodGet, middleware.MetricsPath, cfg.Metrics)
	}
	if cfg.Swagger {
		app.Add(fiber.MethodGet, "/swagger/*", Swagger())
	}

	app.Use(NotFound())
}

// Swagger serves the UI with the host and scheme of the current request.
func Swagger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get(fiber.HeaderHost)
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	}
}
