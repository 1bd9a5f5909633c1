package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/oarkflow/chatapp/pkg/http/handlers"
	"github.com/oarkflow/chatapp/pkg/http/middlewares"
	"github.com/oarkflow/chatapp/pkg/objects"
	"github.com/oarkflow/chatapp/pkg/utils"
)

func Setup(prefix string, router fiber.Router) {
	limit := 30
	if objects.Config != nil {
		limit = objects.Config.GetInt("server.register_rate_limit", limit)
	}
	route := router.Group(prefix, middlewares.RequestLogger)
	route.Get(utils.HealthURI, handlers.HealthCheck)
	route.Get(utils.LandingURI, handlers.LandingPage)
	route.Get(utils.RegisterURI, handlers.RegisterPage)
	route.Post(utils.RegisterURI, middlewares.RateLimitWithMax(limit), handlers.PostRegister)
	route.Get(utils.LoginURI, handlers.LoginPage)
	route.Post(utils.LogoutURI, handlers.PostLogout)
}
