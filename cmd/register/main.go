package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/gookit/color"
	"github.com/rs/zerolog/log"

	"github.com/oarkflow/chatapp/pkg/client"
	"github.com/oarkflow/chatapp/pkg/config"
	"github.com/oarkflow/chatapp/pkg/contracts"
	"github.com/oarkflow/chatapp/pkg/form"
	"github.com/oarkflow/chatapp/pkg/logger"
	"github.com/oarkflow/chatapp/pkg/models"
	"github.com/oarkflow/chatapp/pkg/notify"
	"github.com/oarkflow/chatapp/pkg/prompt"
	"github.com/oarkflow/chatapp/pkg/session"
	"github.com/oarkflow/chatapp/pkg/storage"
)

// printNavigator shows where a browser would have gone next.
type printNavigator struct {
	base string
}

func (n printNavigator) Navigate(path string) {
	color.Cyan.Printf("Continue at %s%s\n", n.base, path)
}

func main() {
	cfg, err := config.New(".env", false, nil)
	if err != nil {
		color.Red.Println(err.Error())
		os.Exit(1)
	}
	config.Load(cfg)
	logger.New(cfg)

	store, closeStore, err := openStore(cfg)
	if err != nil {
		color.Red.Println("open storage: " + err.Error())
		os.Exit(1)
	}
	defer closeStore()

	key := cfg.GetString("storage.key", form.DefaultStorageKey)
	auth := session.NewAuthContext()
	if found, err := session.Restore(auth, store, key); err != nil {
		log.Warn().Err(err).Msg("ignoring unreadable stored session")
	} else if found {
		user, _ := auth.AuthUser()
		var username string
		user.Field("username", &username)
		if username != "" {
			color.Yellow.Printf("A session for %s is already stored; registering replaces it.\n", username)
		}
	}
	auth.Subscribe(func(user *models.RegisterResponse) {
		if user != nil {
			log.Debug().Msg("auth user set")
		}
	})

	ctrl := form.New(client.FromConfig(cfg), store, auth,
		printNavigator{base: cfg.GetString("app.url", "")},
		form.WithStorageKey(key),
		form.WithLoginPath(cfg.GetString("routes.login", form.DefaultLoginPath)),
		form.WithNotifier(notify.NewConsole(os.Stdout)),
		form.WithLoadingObserver(func(loading bool) {
			if loading {
				color.Gray.Println("Registering...")
			}
		}),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	color.Bold.Println("Register for " + cfg.GetString("app.name", "Chats"))
	if _, err := prompt.Run(ctx, prompt.NewSurveyDriver(), ctrl); err != nil {
		if errors.Is(err, prompt.ErrAborted) || errors.Is(err, context.Canceled) {
			return
		}
		os.Exit(1)
	}
}

func openStore(cfg contracts.Config) (contracts.Store, func(), error) {
	switch cfg.GetString("storage.driver", "sqlite") {
	case "memory":
		return storage.NewMemoryStorage(), func() {}, nil
	default:
		db, err := storage.OpenSQLite(cfg.GetString("storage.dsn", "chatapp.db"))
		if err != nil {
			return nil, nil, err
		}
		return db, func() {
			if err := db.Close(); err != nil {
				log.Warn().Err(err).Msg("close storage")
			}
		}, nil
	}
}
