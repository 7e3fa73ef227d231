package middleware

import (
	"time"

	"flight-booking/logger"
	"flight-booking/types"

	"github.com/gofiber/fiber/v2"
)

// maxLoggedBody caps how much of a body is persisted per request log row.
const maxLoggedBody = 4096

// RequestLog records every API request/response pair through the async
// logger. Bodies are truncated; auth endpoints are skipped so credentials
// never reach the log table.
func RequestLog(asyncLogger *logger.AsyncLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		path := c.Path()
		if path == "/api/auth/login" || path == "/api/auth/register" {
			return err
		}

		asyncLogger.Log(types.LogEntry{
			Method:          c.Method(),
			URL:             c.OriginalURL(),
			RequestBody:     truncate(c.Body()),
			ResponseBody:    truncate(c.Response().Body()),
			RequestHeaders:  c.Request().Header.String(),
			ResponseHeaders: c.Response().Header.String(),
			StatusCode:      c.Response().StatusCode(),
			CreatedAt:       time.Now(),
		})

		return err
	}
}

func truncate(body []byte) string {
	if len(body) > maxLoggedBody {
		return string(body[:maxLoggedBody])
	}
	return string(body)
}
