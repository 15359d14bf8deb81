package handler

import (
	"errors"
	"strconv"

	"jobradar/internal/delivery/http/middleware"
	"jobradar/internal/pkg/response"
	"jobradar/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	var verr *usecase.ValidationError
	switch {
	case errors.As(err, &verr):
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageValidationFailed, fiber.Map{"fields": verr.Fields}, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, response.MessageJobNotFound, nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, err)
	case errors.Is(err, usecase.ErrBusy):
		return middleware.NewAppError(fiber.StatusConflict, response.MessageBusy, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func badRequest(field, reason string, cause error) error {
	return middleware.NewAppError(fiber.StatusBadRequest, response.MessageValidationFailed, fiber.Map{"fields": fiber.Map{field: reason}}, cause)
}

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, badRequest(key, "must be an integer", err)
	}
	return v, nil
}

func parseQueryFloat(c fiber.Ctx, key string) (*float64, error) {
	s := c.Query(key)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, badRequest(key, "must be a number", err)
	}
	return &v, nil
}

func parseJobID(field, s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, badRequest(field, "is required", nil)
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, badRequest(field, "must be a valid UUID", err)
	}
	return id, nil
}
