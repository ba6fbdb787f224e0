package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDKey = "request_id"

// NewApp builds the Fiber application with request-id and logging
// middleware and all routes registered.
func NewApp(log *zap.Logger, maxUploadMB int) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:             maxUploadMB << 20,
		DisableStartupMessage: true,
	})

	app.Use(RequestID())
	app.Use(RequestLogger(log))

	h := &Handler{Log: log}
	h.Register(app)

	return app
}

// RequestID assigns each request a uuid, exposed in the X-Request-ID
// response header and echoed in JSON responses.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := uuid.NewString()
		c.Locals(requestIDKey, id)
		c.Set("X-Request-ID", id)
		return c.Next()
	}
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// RequestLogger logs HTTP requests with zap.
// Uses Warn for 4xx, Error for 5xx, Info for 2xx/3xx.
func RequestLogger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", requestID(c)),
			zap.String("remote_addr", c.IP()),
		}

		switch {
		case status >= 500:
			log.Error("http request", fields...)
		case status >= 400:
			log.Warn("http request", fields...)
		default:
			log.Info("http request", fields...)
		}

		return err
	}
}
