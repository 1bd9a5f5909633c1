package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/oarkflow/chatapp/pkg/utils"
)

// RequestLogger tags every request with an id and logs it once it has
// been handled.
func RequestLogger(c *fiber.Ctx) error {
	id := c.Get(utils.RequestIDHeader)
	if id == "" {
		id = utils.NewRequestID()
	}
	c.Locals(utils.RequestIDHeader, id)
	c.Set(utils.RequestIDHeader, id)

	start := time.Now()
	err := c.Next()

	event := log.Info()
	if err != nil {
		event = log.Error().Err(err)
	}
	event.
		Str("request_id", id).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", c.Response().StatusCode()).
		Str("ip", utils.GetClientIP(c)).
		Dur("latency", time.Since(start)).
		Msg("request")
	return err
}
