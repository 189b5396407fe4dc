package presenter

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/hr/ingest/pkg/resume"
)

// ErrorResponse is the body of every non-2xx answer. Kind is set when the
// failure maps onto one of the pipeline's error kinds, so clients can branch
// on it instead of parsing Message.
type ErrorResponse struct {
	Message string           `json:"message"`
	Kind    resume.ErrorKind `json:"kind,omitempty"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Message: message})
}

// KindError is Error with a classified kind attached.
func KindError(c *fiber.Ctx, status int, kind resume.ErrorKind, message string) error {
	return JSON(c, status, ErrorResponse{Message: message, Kind: kind})
}
