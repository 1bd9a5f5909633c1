package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/oarkflow/xid/wuid"
)

func GetCookie(enableHTTPS bool, env, key, val string, maxAges ...int) *fiber.Cookie {
	maxAge := 300
	if len(maxAges) > 0 {
		maxAge = maxAges[0]
	}

	secure := enableHTTPS || env == "production"

	return &fiber.Cookie{
		Name:     key,
		Value:    val,
		Path:     "/",
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		MaxAge:   maxAge,
	}
}

func GetClientIP(c *fiber.Ctx) string {
	if xff := c.Get("X-Forwarded-For"); len(xff) > 0 {
		if comma := strings.IndexByte(xff, ','); comma > 0 {
			return strings.TrimSpace(xff[:comma])
		}
		return strings.TrimSpace(xff)
	}

	if xri := c.Get("X-Real-IP"); len(xri) > 0 {
		return strings.TrimSpace(xri)
	}

	ip := c.IP()
	if i := strings.LastIndexByte(ip, ':'); i != -1 && strings.Count(ip, ":") == 1 {
		return ip[:i]
	}
	return ip
}

// NewRequestID returns a unique, roughly time-ordered id.
func NewRequestID() string {
	return strconv.FormatInt(wuid.New().Int64(), 10)
}

func NewErrorID(statusCode int) string {
	return fmt.Sprintf("ERR-%d-%d", time.Now().Unix(), statusCode)
}
