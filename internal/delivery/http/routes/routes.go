package routes

import (
	"jobradar/internal/delivery/http/handler"
	"jobradar/internal/delivery/http/middleware"
	"jobradar/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	Health      *handler.HealthHandler
	Jobs        *handler.JobsHandler
	Analytics   *handler.AnalyticsHandler
	Prediction  *handler.PredictionHandler
	Preferences *handler.PreferenceHandler
	Admin       *handler.AdminHandler
	Tokens      *handler.AuthHandler
	WS          *ws.Handler

	Auth      *middleware.AuthMiddleware
	RateLimit *middleware.RateLimitMiddleware
	AdminKey  *middleware.AdminKeyMiddleware
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
	r.registerWS(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	r.Health.RegisterRoutes(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api", r.Auth.Optional(), r.RateLimit.Middleware())

	jobs := api.Group("/jobs")
	r.Analytics.RegisterRoutes(jobs)
	r.Prediction.RegisterRoutes(jobs)
	r.Jobs.RegisterRoutes(jobs)

	r.Tokens.RegisterRoutes(api.Group("/auth"))

	users := api.Group("/users", r.Auth.Middleware())
	r.Preferences.RegisterRoutes(users)

	admin := api.Group("/admin", r.AdminKey.Middleware())
	r.Admin.RegisterRoutes(admin)
}

func (r *Registry) registerWS(app *fiber.App) {
	if r.WS == nil {
		return
	}
	r.WS.RegisterRoutes(app.Group("/ws"))
}
