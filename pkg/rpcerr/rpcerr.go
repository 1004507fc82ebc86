package rpcerr

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

// Error is the structured error returned to callers over the bus.
type Error struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%d %s: %v", e.Status, e.Message, e.cause)
	}
	return fmt.Sprintf("%d %s", e.Status, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func NotFound(format string, args ...interface{}) *Error {
	return New(http.StatusNotFound, fmt.Sprintf(format, args...))
}

func BadRequest(format string, args ...interface{}) *Error {
	return New(http.StatusBadRequest, fmt.Sprintf(format, args...))
}

// Internal hides the cause from the caller; it stays reachable through Unwrap for logging.
func Internal(cause error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: "Internal server error", cause: cause}
}

// From classifies any error into an *Error.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var rpcErr *Error
	if errors.As(err, &rpcErr) {
		return rpcErr
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &Error{Status: http.StatusNotFound, Message: "Record not found", cause: err}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &Error{Status: http.StatusBadRequest, Message: "Record already exists", cause: err}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return &Error{Status: http.StatusBadRequest, Message: "Referenced record does not exist", cause: err}
	}
	return Internal(err)
}
