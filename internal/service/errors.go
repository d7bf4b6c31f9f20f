package service

import (
	"errors"
	"fmt"
)

// ErrorKind classifies domain errors so the transport can pick a status
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindNotFound
	KindPermission
	KindConflict
	KindUnauthorized
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindPermission:
		return "permission"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

// Error is a domain error carrying a human-readable message
type Error struct {
	Kind    ErrorKind
	Message string
	Field   string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func ValidationError(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

func NotFoundError(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func PermissionError(message string) *Error {
	return &Error{Kind: KindPermission, Message: message}
}

func ConflictError(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func UnauthorizedError(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// KindOf returns the kind of a domain error, or 0 for anything else
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
