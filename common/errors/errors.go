package errors

import (
	"encoding/json"
	"fmt"
)

// Error represents an application error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// JSON returns the error as a JSON string
func (e *Error) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Wrap returns a copy of base carrying err as its cause.
func Wrap(base *Error, err error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Err:     err,
	}
}

// Storage error types
var (
	ErrStorageUnavailable = New(503, "Storage unavailable", nil)
	ErrKeyNotFound        = New(404, "Key not found", nil)
	ErrMalformedState     = New(500, "Malformed persisted state", nil)
)

// Catalog error types
var (
	ErrCatalogUnavailable = New(502, "Catalog unavailable", nil)
	ErrCatalogResponse    = New(502, "Catalog response error", nil)
)

// Authentication error types
var (
	ErrInvalidCredentials = New(401, "Invalid credentials", nil)
	ErrNotRegistered      = New(401, "No account registered", nil)
	ErrValidation         = New(400, "Validation error", nil)
)
