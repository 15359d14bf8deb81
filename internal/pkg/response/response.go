// Package response renders the {status, message, data} envelope every
// jobradar endpoint replies with, and holds the messages clients can match on.
package response

import "github.com/gofiber/fiber/v3"

type Envelope struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

const (
	MessageOK = "ok"

	MessageBadRequest       = "Bad request"
	MessageValidationFailed = "Validation failed"
	MessageJobNotFound      = "Job not found"
	MessageNotFound         = "Not found"
	MessageBusy             = "Operation already running"

	MessageUnauthorized  = "Unauthorized"
	MessageTokenExpired  = "Token expired"
	MessageInvalidToken  = "Invalid token"
	MessageForbidden     = "Forbidden"
	MessageMissingAPIKey = "Missing API key"
	MessageInvalidAPIKey = "Invalid API key"
	MessageAdminDisabled = "Admin API disabled"

	MessageTooManyRequests     = "Too many requests"
	MessageServiceUnavailable  = "Service unavailable"
	MessageInternalServerError = "Internal server error"
	MessageError               = "error"
)

var statusMessages = map[int]string{
	fiber.StatusOK:                 MessageOK,
	fiber.StatusBadRequest:         MessageBadRequest,
	fiber.StatusUnauthorized:       MessageUnauthorized,
	fiber.StatusForbidden:          MessageForbidden,
	fiber.StatusNotFound:           MessageNotFound,
	fiber.StatusConflict:           MessageBusy,
	fiber.StatusTooManyRequests:    MessageTooManyRequests,
	fiber.StatusServiceUnavailable: MessageServiceUnavailable,
}

// MessageFor is the fallback message for status when a caller gives none.
func MessageFor(status int) string {
	if m, ok := statusMessages[status]; ok {
		return m
	}
	if status >= fiber.StatusInternalServerError {
		return MessageInternalServerError
	}
	if status < fiber.StatusBadRequest {
		return MessageOK
	}
	return MessageError
}

func Success(c fiber.Ctx, status int, message string, data interface{}) error {
	return write(c, status, message, data)
}

func Error(c fiber.Ctx, status int, message string, data interface{}) error {
	return write(c, status, message, data)
}

func write(c fiber.Ctx, status int, message string, data interface{}) error {
	if status < 100 || status > 599 {
		status = fiber.StatusInternalServerError
	}
	if message == "" {
		message = MessageFor(status)
	}
	return c.Status(status).JSON(Envelope{Status: status, Message: message, Data: data})
}
