package middleware

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type AccessLogMiddleware struct {
	logger *log.Logger
}

func NewAccessLogMiddleware(logger *log.Logger) *AccessLogMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &AccessLogMiddleware{logger: logger}
}

// Middleware tags every request with an X-Request-ID and logs one line per
// request after the handler chain finishes.
func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
			c.Set("X-Request-ID", rid)
		}

		err := c.Next()

		m.logger.Printf(
			"HTTP access | rid=%s ip=%s method=%s path=%s status=%d latency=%s ua=%q",
			rid, c.IP(), c.Method(), redactQuery(c.OriginalURL()), c.Response().StatusCode(), time.Since(start), c.Get("User-Agent"),
		)

		return err
	}
}

// redactQuery masks credential-bearing query parameters before the URL is
// logged. The websocket handshake carries its bearer token as ?token=.
func redactQuery(originalURL string) string {
	path, query, ok := strings.Cut(originalURL, "?")
	if !ok {
		return originalURL
	}
	parts := strings.Split(query, "&")
	for i, p := range parts {
		if key, _, hasValue := strings.Cut(p, "="); hasValue && key == "token" {
			parts[i] = key + "=redacted"
		}
	}
	return path + "?" + strings.Join(parts, "&")
}
