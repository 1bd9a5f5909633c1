package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/oarkflow/chatapp/pkg/models"
	"github.com/oarkflow/chatapp/pkg/objects"
	"github.com/oarkflow/chatapp/pkg/storage"
	"github.com/oarkflow/chatapp/pkg/utils"
)

// redirectNavigator remembers where the controller wants to go; the
// handler turns that into the HTTP redirect.
type redirectNavigator struct {
	path string
}

func (n *redirectNavigator) Navigate(path string) {
	n.path = path
}

// clientStore is the browser-side storage of the current request.
func clientStore(c *fiber.Ctx) *storage.CookieStorage {
	enableHTTPS := objects.Config.GetBool("app.https")
	appEnv := objects.Config.GetString("app.env")
	maxAge := objects.Config.GetInt("storage.cookie_max_age", 30*24*60*60)
	return storage.NewCookieStorage(c, enableHTTPS, appEnv, maxAge)
}

func storageKey() string {
	return objects.Config.GetString("storage.key", "chatapp")
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(utils.RequestIDHeader).(string); ok {
		return id
	}
	return c.Get(utils.RequestIDHeader)
}

type flashView struct {
	Level   string
	Message string
}

func flashMessage(data fiber.Map) *flashView {
	msg := flashString(data, "message")
	if msg == "" {
		return nil
	}
	level := flashString(data, "level")
	if level == "" {
		level = "error"
	}
	return &flashView{Level: level, Message: msg}
}

// formFromFlash rebuilds the non-secret fields of a rejected submission.
func formFromFlash(data fiber.Map) models.RegistrationForm {
	return models.RegistrationForm{
		FullName: flashString(data, "fullname"),
		Username: flashString(data, "username"),
		Email:    flashString(data, "email"),
		Gender:   models.Gender(flashString(data, "gender")),
	}
}

func flashString(data fiber.Map, key string) string {
	v, ok := data[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
