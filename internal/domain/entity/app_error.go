package entity

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an AppError for the transport layer.
type ErrorKind int

const (
	KindUpstream ErrorKind = iota
	KindBadRequest
	KindNotFound
	KindNotConfigured
)

// AppError represents an error that should reach the client with a specific status.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// BadRequest builds a KindBadRequest error.
func BadRequest(msg string) *AppError {
	return &AppError{Kind: KindBadRequest, Message: msg}
}

// NotFound builds a KindNotFound error.
func NotFound(msg string) *AppError {
	return &AppError{Kind: KindNotFound, Message: msg}
}

// NotConfigured builds a KindNotConfigured error.
func NotConfigured(msg string) *AppError {
	return &AppError{Kind: KindNotConfigured, Message: msg}
}

// UpstreamFailure wraps a failed upstream call.
func UpstreamFailure(msg string, err error) *AppError {
	return &AppError{Kind: KindUpstream, Message: msg, Err: err}
}

// KindOf returns the kind of err, KindUpstream for foreign errors.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUpstream
}
