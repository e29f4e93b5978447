// Package apperror carries the typed failure kinds shared by the notes store and its clients.
package apperror

import (
	"errors"
	"fmt"
)

// Kind identifies a failure class. Kinds are strings so they serialize as-is in API errors.
type Kind string

const (
	KindNotFound   Kind = "NOT_FOUND"
	KindValidation Kind = "VALIDATION_ERROR"
	KindConflict   Kind = "CONFLICT"
	KindTransport  Kind = "TRANSPORT_ERROR"
	KindInternal   Kind = "INTERNAL_ERROR"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NotFound(message string) *Error {
	return New(KindNotFound, message, nil)
}

func Validation(message string) *Error {
	return New(KindValidation, message, nil)
}

func Conflict(message string) *Error {
	return New(KindConflict, message, nil)
}

func Transport(message string, err error) *Error {
	return New(KindTransport, message, err)
}

func Internal(message string, err error) *Error {
	return New(KindInternal, message, err)
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// MessageOf returns the operator-facing message of err.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

func IsNotFound(err error) bool {
	return err != nil && KindOf(err) == KindNotFound
}

func IsValidation(err error) bool {
	return err != nil && KindOf(err) == KindValidation
}

func IsTransport(err error) bool {
	return err != nil && KindOf(err) == KindTransport
}
