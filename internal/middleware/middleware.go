// Package middleware holds the fiber middleware shared by every route:
// request logging and Prometheus instrumentation.
package middleware

import (
	"errors"
	"log/slog"
	"strconv"
	"time"

	"storefront/internal/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// RequestID returns the id assigned by the requestid middleware, if any.
func RequestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok {
		return id
	}
	return ""
}

// RequestLogger logs each request with method, path, status, duration, IP
// and the request id assigned by the requestid middleware, which must run
// before it.
func RequestLogger(log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := statusOf(c, err)
		level := slog.LevelInfo
		if status >= fiber.StatusInternalServerError {
			level = slog.LevelError
		}

		attrs := []any{
			"request_id", RequestID(c),
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"duration", time.Since(start).String(),
			"ip", c.IP(),
		}
		if err != nil {
			attrs = append(attrs, "error", err)
		}
		log.Log(c.UserContext(), level, "request", attrs...)
		return err
	}
}

// Metrics records request count, latency and in-flight requests, labelled by
// the matched route pattern so ids do not explode label cardinality.
func Metrics(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		m.RequestInFlight.Inc()
		defer m.RequestInFlight.Dec()

		err := c.Next()

		route := c.Route().Path
		status := strconv.Itoa(statusOf(c, err))
		m.RequestTotal.WithLabelValues(c.Method(), route, status).Inc()
		m.RequestDuration.WithLabelValues(c.Method(), route, status).Observe(time.Since(start).Seconds())
		return err
	}
}

// statusOf reports the status the error handler will send for err, or the
// status already written when err is nil.
func statusOf(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
