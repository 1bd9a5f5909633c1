package contracts

import (
	"context"
	"time"

	"github.com/oarkflow/chatapp/pkg/models"
)

// Registrar calls the remote registration endpoint.
type Registrar interface {
	Register(ctx context.Context, form models.RegistrationForm) (models.RegisterResponse, error)
}

// AuthSetter receives the payload of a successful registration.
type AuthSetter interface {
	SetAuthUser(payload models.RegisterResponse)
}

type Navigator interface {
	Navigate(path string)
}

// Notifier surfaces user-visible messages.
type Notifier interface {
	Success(message string)
	Error(message string)
}

type Config interface {
	Env(envName string, defaultValue ...any) any
	Add(name string, configuration any)
	Get(path string, defaultValue ...any) any
	GetString(path string, defaultValue ...any) string
	GetInt(path string, defaultValue ...any) int
	GetDuration(path string, defaultValue ...any) time.Duration
	GetBool(path string, defaultValue ...any) bool
}
