package server

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/wcms19/yearbook/internal/host"
)

// AppOptions controls how the Fiber application should behave.
type AppOptions struct {
	Logger         *logrus.Logger
	Host           *host.Host
	RequestTimeout time.Duration
}

const contextKeyRequestID = "_yearbook_request_id"

// NewApp builds a Fiber application that renders entities by slug and id.
func NewApp(opts AppOptions) (*fiber.App, error) {
	if opts.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if opts.Host == nil {
		return nil, errors.New("host is required")
	}

	app := fiber.New(fiber.Config{
		CaseSensitive: true,
		ReadTimeout:   opts.RequestTimeout,
		WriteTimeout:  opts.RequestTimeout,
	})

	app.Use(recover.New())
	app.Use(requestIDMiddleware())

	r := &renderer{host: opts.Host, logger: opts.Logger}
	app.Get("/:slug", r.archive)
	app.Get("/:slug/:id", r.single)

	return app, nil
}

// requestIDMiddleware 为每个请求生成 ID 并写入 X-Request-ID 响应头。
func requestIDMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		reqID := uuid.NewString()
		c.Locals(contextKeyRequestID, reqID)
		c.Set("X-Request-ID", reqID)
		return c.Next()
	}
}

// RequestID returns the request identifier stored by the middleware.
func RequestID(c fiber.Ctx) string {
	if value := c.Locals(contextKeyRequestID); value != nil {
		if reqID, ok := value.(string); ok {
			return reqID
		}
	}
	return ""
}

func isDiagnosticsPath(path string) bool {
	return strings.HasPrefix(path, "/-/") || path == "/-"
}
