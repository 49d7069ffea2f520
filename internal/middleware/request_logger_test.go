package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestApp(logger *zap.Logger) *fiber.App {
	app := fiber.New()
	app.Use(requestid.New())
	app.Use(RequestLogger(logger))
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/bad", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusBadRequest).SendString("bad")
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusServiceUnavailable, "down")
	})
	return app
}

func TestRequestLogger(t *testing.T) {
	tests := []struct {
		path   string
		status int
		level  zapcore.Level
	}{
		{path: "/ok", status: 200, level: zapcore.InfoLevel},
		{path: "/bad", status: 400, level: zapcore.WarnLevel},
		{path: "/boom", status: 503, level: zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			app := newTestApp(zap.New(core))

			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			entries := logs.All()
			require.Len(t, entries, 1)
			entry := entries[0]
			assert.Equal(t, tt.level, entry.Level)
			assert.Equal(t, "request", entry.Message)

			ctx := entry.ContextMap()
			assert.Equal(t, tt.path, ctx["path"])
			assert.Equal(t, int64(tt.status), ctx["status"])
			assert.Equal(t, resp.Header.Get(fiber.HeaderXRequestID), ctx["request_id"])
			assert.NotEmpty(t, ctx["request_id"])
		})
	}
}
