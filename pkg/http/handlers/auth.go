package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/sujit-baniya/flash"

	"github.com/oarkflow/chatapp/pkg/form"
	"github.com/oarkflow/chatapp/pkg/http/requests"
	"github.com/oarkflow/chatapp/pkg/http/responses"
	"github.com/oarkflow/chatapp/pkg/models"
	"github.com/oarkflow/chatapp/pkg/notify"
	"github.com/oarkflow/chatapp/pkg/objects"
	"github.com/oarkflow/chatapp/pkg/session"
	"github.com/oarkflow/chatapp/pkg/utils"
)

func HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

func LandingPage(c *fiber.Ctx) error {
	return c.Redirect(utils.URL(utils.RegisterURI), fiber.StatusSeeOther)
}

func RegisterPage(c *fiber.Ctx) error {
	data := flash.Get(c)
	return responses.Render(c, utils.RegisterTemplate, fiber.Map{
		"Title":       "Register for Chats",
		"Form":        formFromFlash(data),
		"Flash":       flashMessage(data),
		"ButtonLabel": "Register",
	})
}

func LoginPage(c *fiber.Ctx) error {
	data := flash.Get(c)
	view := fiber.Map{
		"Title": "Login",
		"Flash": flashMessage(data),
	}
	auth := session.NewAuthContext()
	if found, err := session.Restore(auth, clientStore(c), storageKey()); err != nil {
		log.Warn().Err(err).Msg("ignoring unreadable client session")
	} else if found {
		user, _ := auth.AuthUser()
		var username, fullname string
		user.Field("username", &username)
		user.Field("fullname", &fullname)
		view["Username"] = username
		view["FullName"] = fullname
	}
	return responses.Render(c, utils.LoginTemplate, view)
}

// PostRegister runs one registration form submission for the browser.
// Browsers get a redirect: to the login page on success, back to the form
// otherwise, with the outcome carried in a flash cookie. JSON clients get
// the outcome as JSON.
func PostRegister(c *fiber.Ctx) error {
	var req requests.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return renderErrorPage(c, http.StatusBadRequest, "Invalid Form Data",
			"The form data you submitted could not be processed.",
			"Please check that all required fields are filled correctly and try again.",
			fmt.Sprintf("BodyParser error: %v", err), utils.URL(utils.RegisterURI))
	}

	nav := &redirectNavigator{}
	messages := &notify.Recorder{}
	store := clientStore(c)
	auth := session.NewAuthContext()
	ctrl := form.New(objects.Registrar, store, auth, nav,
		form.WithNotifier(messages),
		form.WithStorageKey(storageKey()),
		form.WithLoginPath(utils.URL(utils.LoginURI)),
		form.WithLogger(log.Logger.With().Str("request_id", requestID(c)).Logger()),
	)
	for id, value := range req.Fields() {
		ctrl.UpdateField(id, value)
	}
	if g := req.GenderValue(); g != models.GenderUnset {
		ctrl.ToggleGender(g)
	}

	resp, err := ctrl.Submit(c.UserContext())
	last, _ := messages.Last()
	if responses.WantsJSON(c) {
		if err != nil {
			return c.Status(statusFor(err)).JSON(fiber.Map{
				"success": false,
				"message": last.Text,
			})
		}
		return c.JSON(resp)
	}

	if err != nil {
		submitted := ctrl.Form()
		flash.WithData(c, fiber.Map{
			"level":    "error",
			"message":  last.Text,
			"fullname": submitted.FullName,
			"username": submitted.Username,
			"email":    submitted.Email,
			"gender":   string(submitted.Gender),
		})
		return c.Redirect(utils.URL(utils.RegisterURI), fiber.StatusSeeOther)
	}
	flash.WithData(c, fiber.Map{
		"level":   "success",
		"message": last.Text,
	})
	return c.Redirect(nav.path, fiber.StatusSeeOther)
}

func PostLogout(c *fiber.Ctx) error {
	auth := session.NewAuthContext()
	if err := auth.Clear(clientStore(c), storageKey()); err != nil {
		return renderErrorPage(c, http.StatusInternalServerError, "Logout Failed",
			"Your session could not be cleared.",
			"Please try again.",
			err.Error(), utils.URL(utils.LoginURI))
	}
	return c.Redirect(utils.URL(utils.LoginURI), fiber.StatusSeeOther)
}

func statusFor(err error) int {
	var serverErr *form.ServerError
	var transportErr *form.TransportError
	switch {
	case errors.Is(err, form.ErrPasswordMismatch):
		return fiber.StatusUnprocessableEntity
	case errors.As(err, &serverErr):
		return fiber.StatusBadRequest
	case errors.As(err, &transportErr):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusConflict
	}
}

func renderErrorPage(c *fiber.Ctx, statusCode int, title, message, description, technical, retryURL string) error {
	data := models.ErrorPageData{
		Title:       title,
		StatusCode:  statusCode,
		Message:     message,
		Description: description,
		Technical:   technical,
		RetryURL:    retryURL,
		ErrorID:     utils.NewErrorID(statusCode),
	}
	log.Warn().Str("error_id", data.ErrorID).Str("path", c.Path()).Msg(technical)
	c.Status(statusCode)
	if responses.WantsJSON(c) {
		return c.JSON(fiber.Map{"success": false, "message": message, "error_id": data.ErrorID})
	}
	return responses.Render(c, utils.ErrorTemplate, data)
}
