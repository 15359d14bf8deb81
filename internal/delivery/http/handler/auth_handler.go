package handler

import (
	"jobradar/internal/delivery/http/dto"
	"jobradar/internal/pkg/response"
	"jobradar/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	uc usecase.AuthUsecase
}

func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/refresh", h.HandleRefresh)
}

func (h *AuthHandler) HandleRefresh(c fiber.Ctx) error {
	var req dto.RefreshTokenRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("body", "must be a JSON object", err)
	}

	tok, err := h.uc.Refresh(c.Context(), req.RefreshToken)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "token refreshed", dto.NewTokenResponse(tok))
}
