package util

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindUnauthenticated
	KindInvalidArgument
	KindResourceExhausted
	KindNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindInvalidArgument:
		return "invalid-argument"
	case KindResourceExhausted:
		return "resource-exhausted"
	case KindNotFound:
		return "not-found"
	default:
		return "internal"
	}
}

// HTTPStatus maps the kind onto the status the API answers with.
func (k ErrorKind) HTTPStatus() int {
	switch k {
	case KindUnauthenticated:
		return fiber.StatusUnauthorized
	case KindInvalidArgument:
		return fiber.StatusBadRequest
	case KindResourceExhausted:
		return fiber.StatusTooManyRequests
	case KindNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// AppError is the caller-facing failure. Message is safe to show; Err keeps
// the cause for logs and non-production responses.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Unauthenticated(message string) *AppError {
	return &AppError{Kind: KindUnauthenticated, Message: message}
}

func InvalidArgument(message string) *AppError {
	return &AppError{Kind: KindInvalidArgument, Message: message}
}

func ResourceExhausted(message string, err error) *AppError {
	return &AppError{Kind: KindResourceExhausted, Message: message, Err: err}
}

func NotFound(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func Internal(message string, err error) *AppError {
	return &AppError{Kind: KindInternal, Message: message, Err: err}
}

// KindOf returns KindInternal for anything that is not an *AppError.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
