package types

import (
	"errors"
	"fmt"
)

// Sentinel errors raised by the service layer. The handler layer is the only
// place these are translated into HTTP status codes.
var (
	// ErrNotFound means the requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden means the entity exists but is owned by another user.
	ErrForbidden = errors.New("forbidden")
	// ErrStorage wraps persistence failures after the transaction rolled back.
	ErrStorage = errors.New("storage error")
	// ErrUpstream wraps object-storage and generation-API failures.
	ErrUpstream = errors.New("upstream error")
)

type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}
