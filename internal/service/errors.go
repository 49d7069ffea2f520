package service

import (
	"errors"
	"fmt"
)

var (
	ErrValidation      = errors.New("validation failed")
	ErrUpstreamAuth    = errors.New("upstream rejected credentials")
	ErrUpstreamRequest = errors.New("upstream request failed")
	ErrMemberExists    = fmt.Errorf("%w: member already exists", ErrUpstreamRequest)
	ErrInvalidState    = errors.New("invalid payment state")
	ErrAccessDenied    = errors.New("access denied")
	ErrAssetIO         = errors.New("asset transfer failed")
)

// Error pairs a taxonomy sentinel with a message that is safe to show clients.
// The underlying cause stays server-side.
type Error struct {
	Kind error
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// Message returns the client-safe message of err, or "" if err is not an *Error.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return ""
}
