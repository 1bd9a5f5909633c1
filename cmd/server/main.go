package main

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gookit/color"
	"github.com/rs/zerolog/log"

	"github.com/oarkflow/chatapp"
	"github.com/oarkflow/chatapp/pkg/config"
	"github.com/oarkflow/chatapp/pkg/logger"
)

func main() {
	cfg, err := config.New(".env", false, nil)
	if err != nil {
		color.Red.Println(err.Error())
		os.Exit(1)
	}
	config.Load(cfg)
	logger.New(cfg)

	app := fiber.New(fiber.Config{
		AppName:               cfg.GetString("app.name"),
		DisableStartupMessage: cfg.GetString("app.env") == "production",
	})
	plugin := chatapp.NewPlugin(
		chatapp.WithApp(app),
		chatapp.WithConfig(cfg),
		chatapp.WithTemplateReload(cfg.GetString("app.env") == "development"),
	)
	plugin.Register()
	defer plugin.Close()

	addr := cfg.GetString("server.addr", ":3000")
	log.Info().
		Str("addr", addr).
		Str("api", cfg.GetString("api.base_url")).
		Msg("starting registration server")
	if err := app.Listen(addr); err != nil {
		color.Red.Println("server stopped: " + err.Error())
		os.Exit(1)
	}
}
