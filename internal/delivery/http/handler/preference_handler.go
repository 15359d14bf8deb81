package handler

import (
	"jobradar/internal/delivery/http/dto"
	"jobradar/internal/delivery/http/middleware"
	"jobradar/internal/pkg/response"
	"jobradar/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type PreferenceHandler struct {
	uc usecase.PreferenceUsecase
}

func NewPreferenceHandler(uc usecase.PreferenceUsecase) *PreferenceHandler {
	return &PreferenceHandler{uc: uc}
}

func (h *PreferenceHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me/preferences", h.GetMine)
	r.Put("/me/preferences", h.UpdateMine)
}

func (h *PreferenceHandler) GetMine(c fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, nil)
	}

	p, err := h.uc.Get(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewPreferencesResponse(p))
}

func (h *PreferenceHandler) UpdateMine(c fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, nil)
	}

	var req dto.UpdatePreferencesRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	p, err := h.uc.Update(c.Context(), userID, usecase.UpdatePreferenceInput{
		Preference: req.Preferences.ToDomain(),
		SavedJobs:  req.SavedJobs,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewPreferencesResponse(p))
}
