package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/phuslu/log"

	"github.com/artem13815/hr/ingest/api/http/handlers"
	"github.com/artem13815/hr/ingest/api/http/presenter"
)

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, health *handlers.HealthHandler, authMW fiber.Handler, resumes *handlers.ResumesHandler) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", health.Health)
	v1.Get("/ready", health.Ready)

	rs := v1.Group("/resumes", authMW)
	rs.Post("/", resumes.Upload)
	rs.Get("/", resumes.List)
	// до /:id, иначе "active" попадёт в параметр
	rs.Get("/active", resumes.Active)
	rs.Get("/:id", resumes.Get)
	rs.Get("/:id/status", resumes.Status)
	rs.Post("/:id/reparse", resumes.Reparse)
	rs.Get("/:id/file", resumes.Download)
	rs.Delete("/:id", resumes.Delete)
}

// RequestLogger logs one line per request through logger.
func RequestLogger(logger *log.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		e := logger.Info()
		if status >= fiber.StatusInternalServerError {
			e = logger.Error()
		}
		e.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("http.request")
		return err
	}
}

// ErrorHandler renders errors that escape handlers (body limit, unknown
// route) in the same shape as handler errors.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "internal error"
	if fe, ok := err.(*fiber.Error); ok {
		code = fe.Code
		msg = fe.Message
	}
	return presenter.Error(c, code, msg)
}
