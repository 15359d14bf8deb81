package handler

import (
	"jobradar/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	service string
	version string
}

func NewHealthHandler(service, version string) *HealthHandler {
	return &HealthHandler{service: service, version: version}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.HandleRoot)
	r.Get("/health", h.HandleHealth)
}

func (h *HealthHandler) HandleRoot(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{
		"service": h.service,
		"version": h.version,
		"health":  "/health",
	})
}

// HandleHealth reports liveness and touches no dependency.
func (h *HealthHandler) HandleHealth(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{
		"status":  "healthy",
		"service": h.service,
	})
}
