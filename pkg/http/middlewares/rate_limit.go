package middlewares

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/rs/zerolog/log"
	"github.com/sujit-baniya/flash"

	"github.com/oarkflow/chatapp/pkg/http/responses"
	"github.com/oarkflow/chatapp/pkg/utils"
)

const tooManyRequests = "Too many requests. Please wait before trying again."

// RateLimitWithMax limits each client to maxRequests per minute on the
// route it guards. A non-positive max disables the limit.
func RateLimitWithMax(maxRequests int) fiber.Handler {
	if maxRequests <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        maxRequests,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return fmt.Sprintf("%s:%s", utils.GetClientIP(c), c.Path())
		},
		LimitReached: func(c *fiber.Ctx) error {
			log.Warn().
				Str("ip", utils.GetClientIP(c)).
				Str("path", c.Path()).
				Msg("rate limit exceeded")
			if responses.WantsJSON(c) {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"success":     false,
					"message":     tooManyRequests,
					"retry_after": "60",
				})
			}
			flash.WithData(c, fiber.Map{
				"level":   "error",
				"message": tooManyRequests,
			})
			return c.Redirect(c.Path(), fiber.StatusSeeOther)
		},
	})
}
