package form

import (
	"errors"
)

const (
	MsgPasswordMismatch   = "Passwords don't match"
	MsgRegistrationFailed = "Registration failed"
)

var (
	ErrPasswordMismatch = errors.New(MsgPasswordMismatch)
	ErrSubmitInFlight   = errors.New("registration already in progress")
	ErrNavigated        = errors.New("form already submitted")
)

// ServerError is a response the endpoint answered with success=false.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	return "registration rejected: " + e.Message
}

// TransportError covers failures to obtain a usable response: network
// errors, error status codes and undecodable bodies. Message is what the
// user sees.
type TransportError struct {
	Status  int
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UserMessage returns the text shown to the user for err.
func UserMessage(err error) string {
	var serverErr *ServerError
	var transportErr *TransportError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrPasswordMismatch):
		return MsgPasswordMismatch
	case errors.As(err, &serverErr):
		return serverErr.Message
	case errors.As(err, &transportErr):
		if transportErr.Message != "" {
			return transportErr.Message
		}
		return MsgRegistrationFailed
	default:
		return MsgRegistrationFailed
	}
}
