package app

import (
	"fmt"
	"strings"

	"jobradar/internal/delivery/http/handler"
	"jobradar/internal/delivery/http/middleware"
	"jobradar/internal/delivery/http/routes"
	"jobradar/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/compress"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type App struct {
	Fiber *fiber.App
}

func New(c *Container) *App {
	cfg := c.Config
	f := fiber.New(fiber.Config{
		AppName:      cfg.App.AppName,
		ErrorHandler: middleware.ErrorHandler,
	})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f}
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(c.Log).Middleware())
	app.Use(middleware.NewErrorMiddleware(c.Log).Middleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  c.Config.App.CORSOrigins,
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderAPIKey},
		ExposeHeaders: []string{middleware.HeaderRequestID, "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
	}))
	app.Use(compress.New())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	auth := middleware.NewAuthMiddleware(c.JWT)
	reg := &routes.Registry{
		Health:      handler.NewHealthHandler(c.Config.App.AppName, c.Config.App.Version),
		Jobs:        handler.NewJobsHandler(c.JobSearch),
		Analytics:   handler.NewAnalyticsHandler(c.Analytics),
		Prediction:  handler.NewPredictionHandler(c.Prediction),
		Preferences: handler.NewPreferenceHandler(c.Preferences),
		Admin:       handler.NewAdminHandler(c.DataRefresh, c.Analytics, c.Auth, c.Health),
		Tokens:      handler.NewAuthHandler(c.Auth),
		WS:          ws.NewHandler(c.Hub, c.Log),
		Auth:        auth,
		RateLimit:   middleware.NewRateLimitMiddleware(c.Limiter, c.Log),
		AdminKey:    middleware.NewAdminKeyMiddleware(c.Config.Admin.APIKeyHash),
	}
	reg.Register(app)
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

