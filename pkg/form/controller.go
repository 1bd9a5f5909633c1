package form

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/oarkflow/chatapp/pkg/contracts"
	"github.com/oarkflow/chatapp/pkg/logger"
	"github.com/oarkflow/chatapp/pkg/models"
)

const (
	DefaultStorageKey = "chatapp"
	DefaultLoginPath  = "/login"
)

type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateNavigated
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateNavigated:
		return "navigated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Controller owns the registration form state and its submission flow.
// It is safe for concurrent use; at most one submission runs at a time.
type Controller struct {
	registrar  contracts.Registrar
	store      contracts.Store
	auth       contracts.AuthSetter
	navigator  contracts.Navigator
	notifier   contracts.Notifier
	storageKey string
	loginPath  string
	onLoading  func(bool)
	logger     zerolog.Logger

	mu    sync.Mutex
	form  models.RegistrationForm
	state State
}

type Option func(*Controller)

func WithStorageKey(key string) Option {
	return func(c *Controller) {
		if key != "" {
			c.storageKey = key
		}
	}
}

func WithLoginPath(path string) Option {
	return func(c *Controller) {
		if path != "" {
			c.loginPath = path
		}
	}
}

func WithNotifier(n contracts.Notifier) Option {
	return func(c *Controller) {
		if n != nil {
			c.notifier = n
		}
	}
}

// WithLoadingObserver registers fn to be called whenever the loading flag
// changes.
func WithLoadingObserver(fn func(loading bool)) Option {
	return func(c *Controller) {
		c.onLoading = fn
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// WithInitial seeds the form, e.g. with values posted back by a browser.
func WithInitial(f models.RegistrationForm) Option {
	return func(c *Controller) {
		c.form = f
	}
}

func New(registrar contracts.Registrar, store contracts.Store, auth contracts.AuthSetter, navigator contracts.Navigator, opts ...Option) *Controller {
	c := &Controller{
		registrar:  registrar,
		store:      store,
		auth:       auth,
		navigator:  navigator,
		notifier:   discardNotifier{},
		storageKey: DefaultStorageKey,
		loginPath:  DefaultLoginPath,
		logger:     logger.Component("register-form"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UpdateField replaces a single field of the form.
func (c *Controller) UpdateField(id models.FieldID, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch id {
	case models.FieldFullName:
		c.form.FullName = value
	case models.FieldUsername:
		c.form.Username = value
	case models.FieldEmail:
		c.form.Email = value
	case models.FieldPassword:
		c.form.Password = value
	case models.FieldConfirmPassword:
		c.form.ConfirmPassword = value
	case models.FieldGender:
		c.form.Gender = models.Gender(value)
	default:
		c.logger.Debug().Str("field", string(id)).Msg("ignoring unknown field")
	}
}

// ToggleGender selects g, or clears the selection when g is already
// selected.
func (c *Controller) ToggleGender(g models.Gender) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.form.Gender == g {
		c.form.Gender = models.GenderUnset
		return
	}
	c.form.Gender = g
}

func (c *Controller) Form() models.RegistrationForm {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Loading() bool {
	return c.State() == StateSubmitting
}

func (c *Controller) ButtonLabel() string {
	if c.Loading() {
		return "Registering..."
	}
	return "Register"
}

// Submit validates the form and sends it to the registration endpoint.
// The returned error is one of ErrPasswordMismatch, *ServerError or
// *TransportError, or a guard error when the controller cannot submit.
// Every error except the guards has already been shown via the notifier.
func (c *Controller) Submit(ctx context.Context) (models.RegisterResponse, error) {
	form, err := c.begin()
	if err != nil {
		return models.RegisterResponse{}, err
	}
	finished := false
	defer func() {
		if !finished {
			c.finish(false)
		}
	}()

	if !form.PasswordsMatch() {
		c.notifier.Error(MsgPasswordMismatch)
		return models.RegisterResponse{}, ErrPasswordMismatch
	}

	resp, err := c.registrar.Register(ctx, form)
	if err != nil {
		msg := UserMessage(err)
		c.logger.Warn().Err(err).Str("username", form.Username).Msg("registration request failed")
		c.notifier.Error(msg)
		return models.RegisterResponse{}, err
	}
	if !resp.Success {
		c.logger.Info().Str("username", form.Username).Str("reason", resp.Message).Msg("registration rejected")
		c.notifier.Error(resp.Message)
		return resp, &ServerError{Message: resp.Message}
	}

	c.notifier.Success(resp.Message)
	if err := c.persist(resp); err != nil {
		// the account exists at this point; a storage failure only costs
		// the cached session
		c.logger.Error().Err(err).Str("key", c.storageKey).Msg("persist registration payload")
	}
	c.auth.SetAuthUser(resp)
	finished = true
	c.finish(true)
	c.navigator.Navigate(c.loginPath)
	c.logger.Info().Str("username", form.Username).Msg("registered")
	return resp, nil
}

func (c *Controller) begin() (models.RegistrationForm, error) {
	c.mu.Lock()
	switch c.state {
	case StateSubmitting:
		c.mu.Unlock()
		return models.RegistrationForm{}, ErrSubmitInFlight
	case StateNavigated:
		c.mu.Unlock()
		return models.RegistrationForm{}, ErrNavigated
	}
	c.state = StateSubmitting
	form := c.form
	c.mu.Unlock()
	c.emitLoading(true)
	return form, nil
}

func (c *Controller) finish(navigated bool) {
	c.mu.Lock()
	if navigated {
		c.state = StateNavigated
	} else {
		c.state = StateIdle
	}
	c.mu.Unlock()
	c.emitLoading(false)
}

func (c *Controller) emitLoading(loading bool) {
	if c.onLoading != nil {
		c.onLoading(loading)
	}
}

func (c *Controller) persist(resp models.RegisterResponse) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	return c.store.Set(c.storageKey, data)
}

type discardNotifier struct{}

func (discardNotifier) Success(string) {}
func (discardNotifier) Error(string)   {}
