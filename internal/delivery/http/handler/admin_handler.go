package handler

import (
	"jobradar/internal/delivery/http/dto"
	"jobradar/internal/delivery/http/middleware"
	"jobradar/internal/pkg/response"
	"jobradar/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AdminHandler struct {
	refresh   usecase.DataRefreshUsecase
	analytics usecase.AnalyticsUsecase
	auth      usecase.AuthUsecase
	health    usecase.HealthUsecase
}

func NewAdminHandler(
	refresh usecase.DataRefreshUsecase,
	analytics usecase.AnalyticsUsecase,
	auth usecase.AuthUsecase,
	health usecase.HealthUsecase,
) *AdminHandler {
	return &AdminHandler{refresh: refresh, analytics: analytics, auth: auth, health: health}
}

func (h *AdminHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/refresh-data", h.HandleRefresh)
	r.Post("/retrain", h.HandleRetrain)
	r.Post("/jobs", h.HandleIngest)
	r.Post("/tokens", h.HandleIssueToken)
	r.Get("/health", h.HandleHealth)
	r.Get("/stats", h.HandleStats)
}

func (h *AdminHandler) HandleRefresh(c fiber.Ctx) error {
	s, err := h.refresh.Refresh(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "data refreshed", s)
}

func (h *AdminHandler) HandleRetrain(c fiber.Ctx) error {
	s, err := h.refresh.Retrain(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "model retrained", s)
}

func (h *AdminHandler) HandleIngest(c fiber.Ctx) error {
	raws, err := usecase.DecodeJobPayload(c.Body())
	if err != nil {
		return mapUsecaseError(err)
	}

	s, err := h.refresh.Ingest(c.Context(), raws)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "jobs ingested", s)
}

func (h *AdminHandler) HandleIssueToken(c fiber.Ctx) error {
	var req dto.IssueTokenRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	tok, err := h.auth.IssueToken(c.Context(), req.UserID, req.Role)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "token issued", dto.NewTokenResponse(tok))
}

func (h *AdminHandler) HandleHealth(c fiber.Ctx) error {
	r := h.health.Check(c.Context())
	if r.Status != usecase.StatusHealthy {
		return middleware.NewAppError(fiber.StatusServiceUnavailable, response.MessageServiceUnavailable, r, nil)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, r)
}

func (h *AdminHandler) HandleStats(c fiber.Ctx) error {
	s, err := h.analytics.DetailedStats(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", dto.NewDetailedStatsResponse(s))
}
