package middleware

import (
	"errors"

	"jobradar/internal/logger"
	"jobradar/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type AppError struct {
	StatusCode int
	Message    string
	Data       interface{}
	Cause      error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewAppError(statusCode int, message string, data interface{}, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Data: data, Cause: cause}
}

type ErrorMiddleware struct {
	log logger.Logger
}

func NewErrorMiddleware(log logger.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{log: logger.OrNop(log)}
}

func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				m.log.Error("panic recovered", map[string]interface{}{
					"panic":  r,
					"method": c.Method(),
					"path":   c.Path(),
				})
				err = response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		status, msg, data := normalizeError(err)
		if status >= fiber.StatusInternalServerError {
			m.log.Error("request failed", map[string]interface{}{
				"method": c.Method(),
				"path":   c.Path(),
				"status": status,
				"error":  err.Error(),
			})
		}
		return response.Error(c, status, msg, data)
	}
}

// ErrorHandler renders errors that escape the middleware chain, such as
// unmatched routes, in the same envelope.
func ErrorHandler(c fiber.Ctx, err error) error {
	status, msg, data := normalizeError(err)
	return response.Error(c, status, msg, data)
}

func normalizeError(err error) (int, string, interface{}) {
	if err == nil {
		return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.StatusCode <= 0 {
			return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
		}

		status := appErr.StatusCode
		msg := appErr.Message
		if msg == "" {
			msg = response.MessageFor(status)
		}

		if status == fiber.StatusServiceUnavailable {
			return status, msg, appErr.Data
		}
		if status >= 500 {
			return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
		}
		return status, msg, appErr.Data
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status := fiberErr.Code
		if status <= 0 {
			status = fiber.StatusInternalServerError
		}

		if status >= 500 {
			return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
		}

		msg := fiberErr.Message
		if msg == "" {
			msg = response.MessageFor(status)
		}
		return status, msg, nil
	}

	return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
}
