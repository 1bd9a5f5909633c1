package chatapp

import (
	"embed"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"

	"github.com/oarkflow/chatapp/pkg/client"
	"github.com/oarkflow/chatapp/pkg/config"
	"github.com/oarkflow/chatapp/pkg/contracts"
	"github.com/oarkflow/chatapp/pkg/http/routes"
	"github.com/oarkflow/chatapp/pkg/objects"
	"github.com/oarkflow/chatapp/pkg/utils"
)

//go:embed auth
var Assets embed.FS

// Plugin mounts the registration web front on a fiber app.
type Plugin struct {
	App       *fiber.App
	Prefix    string
	Config    contracts.Config
	Registrar contracts.Registrar
	Reload    bool
}

type Option func(*Plugin)

func WithPrefix(prefix string) Option {
	return func(p *Plugin) {
		if prefix != "" {
			p.Prefix = prefix
		}
	}
}

func WithApp(app *fiber.App) Option {
	return func(p *Plugin) {
		p.App = app
	}
}

func WithConfig(cfg contracts.Config) Option {
	return func(p *Plugin) {
		p.Config = cfg
	}
}

// WithRegistrar replaces the HTTP client built from the api.* settings.
func WithRegistrar(r contracts.Registrar) Option {
	return func(p *Plugin) {
		p.Registrar = r
	}
}

// WithTemplateReload re-reads templates on every render.
func WithTemplateReload(reload bool) Option {
	return func(p *Plugin) {
		p.Reload = reload
	}
}

func NewPlugin(opts ...Option) *Plugin {
	p := &Plugin{Prefix: "/"}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func NewViewEngine(reload bool) *html.Engine {
	engine := html.NewFileSystem(http.FS(Assets), ".html")
	engine.Reload(reload)
	engine.AddFuncMap(map[string]any{
		"uris": func() map[string]string {
			return utils.GetURIs()
		},
	})
	return engine
}

// Register wires configuration, the registration client and the views,
// then mounts the routes when an app is set.
func (p *Plugin) Register() {
	if p.Config == nil {
		cfg := config.Empty()
		config.Load(cfg)
		p.Config = cfg
	}
	if p.Registrar == nil {
		p.Registrar = client.FromConfig(p.Config)
	}
	utils.Prefix = p.Prefix
	utils.LoginURI = p.Config.GetString("routes.login", utils.LoginURI)

	objects.Config = p.Config
	objects.Registrar = p.Registrar
	objects.ViewEngine = NewViewEngine(p.Reload)
	objects.Layout = "layouts/main"
	if p.App != nil {
		routes.Setup(p.Prefix, p.App)
	}
}

func (p *Plugin) Name() string {
	return "Register"
}

func (p *Plugin) Close() error {
	return nil
}
