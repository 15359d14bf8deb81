package handler

import (
	"jobradar/internal/delivery/http/dto"
	"jobradar/internal/pkg/response"
	"jobradar/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AnalyticsHandler struct {
	uc usecase.AnalyticsUsecase
}

func NewAnalyticsHandler(uc usecase.AnalyticsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

func (h *AnalyticsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/stats", h.HandleDashboard)
	r.Get("/skills/:skill/trend", h.HandleSkillTrend)
}

func (h *AnalyticsHandler) HandleDashboard(c fiber.Ctx) error {
	d, err := h.uc.Dashboard(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", dto.NewDashboardResponse(d))
}

func (h *AnalyticsHandler) HandleSkillTrend(c fiber.Ctx) error {
	t, err := h.uc.SkillTrend(c.Context(), c.Params("skill"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", t)
}
