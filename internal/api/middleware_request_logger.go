package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// RequestLogger emits one structured log line per handled request.
func (handler *Handler) RequestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	event := handler.log.Info()
	if err != nil {
		event = handler.log.Warn().Err(err)
	}
	event.
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", c.Response().StatusCode()).
		Dur("duration", time.Since(start)).
		Msg("request")
	return err
}
