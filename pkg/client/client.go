package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/oarkflow/chatapp/pkg/contracts"
	"github.com/oarkflow/chatapp/pkg/form"
	"github.com/oarkflow/chatapp/pkg/logger"
	"github.com/oarkflow/chatapp/pkg/models"
	"github.com/oarkflow/chatapp/pkg/utils"
)

const DefaultRegisterPath = "/api/auth/register"

// Client talks to the chat backend's auth API.
type Client struct {
	baseURL      string
	registerPath string
	timeout      time.Duration
	logger       zerolog.Logger
}

type Option func(*Client)

func WithRegisterPath(path string) Option {
	return func(c *Client) {
		if path != "" {
			c.registerPath = path
		}
	}
}

// WithTimeout bounds each request. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		registerPath: DefaultRegisterPath,
		logger:       logger.Component("auth-client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FromConfig builds a client from the api.* settings.
func FromConfig(cfg contracts.Config) *Client {
	return New(cfg.GetString("api.base_url"),
		WithRegisterPath(cfg.GetString("api.register_path")),
		WithTimeout(cfg.GetDuration("api.timeout")),
	)
}

func (c *Client) RegisterURL() string {
	return c.baseURL + c.registerPath
}

type result struct {
	status int
	body   []byte
	errs   []error
}

// Register posts the form to the registration endpoint. A 2xx answer is
// decoded and returned as is, whatever its success flag. Anything else is
// a *form.TransportError whose message is the server's message when the
// error body carries one.
func (c *Client) Register(ctx context.Context, f models.RegistrationForm) (models.RegisterResponse, error) {
	if err := ctx.Err(); err != nil {
		return models.RegisterResponse{}, &form.TransportError{Message: form.MsgRegistrationFailed, Err: err}
	}
	requestID := utils.NewRequestID()
	agent := fiber.Post(c.RegisterURL()).
		JSON(f).
		Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON).
		Set(utils.RequestIDHeader, requestID)
	if c.timeout > 0 {
		agent = agent.Timeout(c.timeout)
	}

	done := make(chan result, 1)
	go func() {
		status, body, errs := agent.Bytes()
		done <- result{status: status, body: body, errs: errs}
	}()

	var res result
	select {
	case <-ctx.Done():
		c.logger.Warn().Str("request_id", requestID).Err(ctx.Err()).Msg("registration request abandoned")
		return models.RegisterResponse{}, &form.TransportError{Message: form.MsgRegistrationFailed, Err: ctx.Err()}
	case res = <-done:
	}

	c.logger.Debug().Str("request_id", requestID).Int("status", res.status).Msg("registration request completed")
	if len(res.errs) > 0 {
		return models.RegisterResponse{}, &form.TransportError{
			Message: form.MsgRegistrationFailed,
			Err:     errors.Join(res.errs...),
		}
	}
	return decode(res.status, res.body)
}

func decode(status int, body []byte) (models.RegisterResponse, error) {
	var resp models.RegisterResponse
	decodeErr := json.Unmarshal(body, &resp)

	if status < fiber.StatusOK || status >= fiber.StatusMultipleChoices {
		msg := form.MsgRegistrationFailed
		if decodeErr == nil && resp.Message != "" {
			msg = resp.Message
		}
		return models.RegisterResponse{}, &form.TransportError{
			Status:  status,
			Message: msg,
			Err:     fmt.Errorf("unexpected status %d", status),
		}
	}
	if decodeErr != nil {
		return models.RegisterResponse{}, &form.TransportError{
			Status:  status,
			Message: form.MsgRegistrationFailed,
			Err:     fmt.Errorf("decode response: %w", decodeErr),
		}
	}
	return resp, nil
}
