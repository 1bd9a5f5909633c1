package config

import (
	"github.com/oarkflow/chatapp/pkg/contracts"
)

// Load registers the application settings, taking each value from the
// environment when present.
func Load(cfg contracts.Config) {
	cfg.Add("app.name", cfg.Env("CHATAPP_NAME", "Chats"))
	cfg.Add("app.env", cfg.Env("CHATAPP_ENV", "development"))
	cfg.Add("app.https", cfg.Env("CHATAPP_HTTPS", false))
	cfg.Add("app.url", cfg.Env("CHATAPP_URL", "http://localhost:3000"))

	cfg.Add("server.addr", cfg.Env("CHATAPP_ADDR", ":3000"))
	cfg.Add("server.register_rate_limit", cfg.Env("CHATAPP_REGISTER_RATE_LIMIT", 30))

	cfg.Add("api.base_url", cfg.Env("CHATAPP_API_URL", "http://localhost:5000"))
	cfg.Add("api.register_path", cfg.Env("CHATAPP_REGISTER_PATH", "/api/auth/register"))
	cfg.Add("api.timeout", cfg.Env("CHATAPP_API_TIMEOUT", "0s"))

	cfg.Add("storage.key", cfg.Env("CHATAPP_STORAGE_KEY", "chatapp"))
	cfg.Add("storage.driver", cfg.Env("CHATAPP_STORAGE_DRIVER", "sqlite"))
	cfg.Add("storage.dsn", cfg.Env("CHATAPP_STORAGE_DSN", "chatapp.db"))
	cfg.Add("storage.cookie_max_age", cfg.Env("CHATAPP_COOKIE_MAX_AGE", 30*24*60*60))

	cfg.Add("routes.login", cfg.Env("CHATAPP_LOGIN_PATH", "/login"))

	cfg.Add("log.level", cfg.Env("CHATAPP_LOG_LEVEL", "info"))
	cfg.Add("log.format", cfg.Env("CHATAPP_LOG_FORMAT", "console"))
}
