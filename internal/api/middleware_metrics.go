package api

import (
	"errors"
	"strconv"
	"time"

	"github.com/dorazhang07/ladle/internal/api/metrics"
	"github.com/gofiber/fiber/v2"
)

// RequestMetrics records a counter and duration sample per handled request,
// labelled by the registered route pattern rather than the raw path.
func (handler *Handler) RequestMetrics(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	if err != nil {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			status = fiberErr.Code
		} else {
			status = fiber.StatusInternalServerError
		}
	}

	route := c.Route().Path
	metrics.RequestsTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
	metrics.RequestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
	return err
}
