package storage

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/oarkflow/chatapp/pkg/utils"
)

// MaxCookieSize is the largest name plus value browsers reliably keep.
const MaxCookieSize = 4000

var ErrValueTooLarge = errors.New("storage: value too large for a cookie")

// CookieStorage keeps values in cookies of the browser driving the
// current request, the server-side equivalent of the browser's local
// storage. Values are base64url encoded so JSON survives cookie syntax.
type CookieStorage struct {
	c           *fiber.Ctx
	enableHTTPS bool
	env         string
	maxAge      int
}

func NewCookieStorage(c *fiber.Ctx, enableHTTPS bool, env string, maxAge int) *CookieStorage {
	return &CookieStorage{c: c, enableHTTPS: enableHTTPS, env: env, maxAge: maxAge}
}

func (s *CookieStorage) Set(key string, value []byte) error {
	encoded := base64.RawURLEncoding.EncodeToString(value)
	if size := len(key) + len(encoded); size > MaxCookieSize {
		return fmt.Errorf("%w: %s is %d bytes encoded", ErrValueTooLarge, key, size)
	}
	s.c.Cookie(utils.GetCookie(s.enableHTTPS, s.env, key, encoded, s.maxAge))
	return nil
}

func (s *CookieStorage) Get(key string) ([]byte, bool, error) {
	raw := s.c.Cookies(key)
	if raw == "" {
		return nil, false, nil
	}
	value, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil, false, fmt.Errorf("decode cookie %s: %w", key, err)
	}
	return value, true, nil
}

func (s *CookieStorage) Delete(key string) error {
	s.c.Cookie(utils.GetCookie(s.enableHTTPS, s.env, key, "", -1))
	return nil
}
