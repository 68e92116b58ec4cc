package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every *Error unwraps to exactly one of these, so callers
// match with errors.Is.
var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidRange       = errors.New("invalid price range")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)

var kindNames = map[error]string{
	ErrInvalidAmount:      "InvalidAmount",
	ErrInvalidRange:       "InvalidRange",
	ErrCategoryNotFound:   "CategoryNotFound",
	ErrProductNotFound:    "ProductNotFound",
	ErrCatalogUnavailable: "CatalogUnavailable",
}

// Error is a request-level failure with a user-facing message.
type Error struct {
	Kind    error
	Message string
	// Cause is kept for logging only; it is never shown to users.
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// KindName returns the wire name of err's kind, or "Internal" for errors
// outside the taxonomy.
func KindName(err error) string {
	var de *Error
	if errors.As(err, &de) {
		if name, ok := kindNames[de.Kind]; ok {
			return name
		}
	}
	for kind, name := range kindNames {
		if errors.Is(err, kind) {
			return name
		}
	}
	return "Internal"
}

// Message returns the user-facing message carried by err, or fallback when
// err is not a *Error.
func Message(err error, fallback string) string {
	var de *Error
	if errors.As(err, &de) && de.Message != "" {
		return de.Message
	}
	return fallback
}

func InvalidAmount(field, value string) *Error {
	return &Error{
		Kind:    ErrInvalidAmount,
		Message: fmt.Sprintf("%s must be a non-negative number, got %q", field, value),
	}
}

func InvalidRange() *Error {
	return &Error{
		Kind:    ErrInvalidRange,
		Message: "the minimum price cannot be greater than the maximum price",
	}
}

func CategoryNotFound(slug string) *Error {
	return &Error{
		Kind:    ErrCategoryNotFound,
		Message: fmt.Sprintf("category %q does not exist", slug),
	}
}

func ProductNotFound(id string) *Error {
	return &Error{
		Kind:    ErrProductNotFound,
		Message: fmt.Sprintf("product with id %s does not exist", id),
	}
}

func CatalogUnavailable(cause error) *Error {
	return &Error{
		Kind:    ErrCatalogUnavailable,
		Message: "the catalog is temporarily unavailable",
		Cause:   cause,
	}
}
