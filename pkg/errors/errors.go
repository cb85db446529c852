package errors

import (
	"errors"
	"fmt"
)

var (
	ErrTransport  = NewError("TRANSPORT_ERROR", "transport invocation failed")
	ErrStorage    = NewError("STORAGE_ERROR", "persistence read/write failed")
	ErrSession    = NewError("SESSION_ERROR", "session context unavailable")
	ErrValidation = NewError("VALIDATION_ERROR", "validation failed")
	ErrConfig     = NewError("CONFIG_ERROR", "invalid configuration")
)

// Error carries a stable code alongside the underlying cause so callers can
// tell transport, storage and session failures apart without string matching.
type Error struct {
	Code    string
	Message string
	Details map[string]interface{}
	Cause   error
}

func NewError(code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

func (e *Error) Error() string {
	msg := e.Message

	if len(e.Details) > 0 {
		if detailMsg, ok := e.Details["message"].(string); ok && detailMsg != "" {
			msg = detailMsg
		}
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) WithCause(cause error) *Error {
	err := *e
	err.Cause = cause
	return &err
}

// WithDetail returns a copy with the detail attached. The details map is
// copied so sentinel errors are never mutated.
func (e *Error) WithDetail(key string, value interface{}) *Error {
	err := *e
	err.Details = make(map[string]interface{}, len(e.Details)+1)
	for k, v := range e.Details {
		err.Details[k] = v
	}
	err.Details[key] = value
	return &err
}

func Wrap(err error, appErr *Error) *Error {
	if err == nil {
		return nil
	}
	return appErr.WithCause(err)
}

func hasCode(err error, code string) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

func IsTransport(err error) bool {
	return hasCode(err, ErrTransport.Code)
}

func IsStorage(err error) bool {
	return hasCode(err, ErrStorage.Code)
}

func IsSession(err error) bool {
	return hasCode(err, ErrSession.Code)
}

func IsValidation(err error) bool {
	return hasCode(err, ErrValidation.Code)
}
