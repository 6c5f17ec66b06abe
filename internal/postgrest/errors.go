package postgrest

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	apperrors "github.com/mikii-john/e-commerce-backend/pkg/errors"
)

// Error codes returned by a PostgREST-compatible store. PGRST-prefixed codes
// come from the REST layer; numeric codes are PostgreSQL SQLSTATE values.
const (
	CodeNoRows            = "PGRST116" // zero or many rows where exactly one was required
	CodeUniqueViolation   = "23505"
	CodeForeignKeyMissing = "23503"
	CodeUndefinedTable    = "42P01"
	CodeRaiseException    = "P0001" // raised by stored procedures, e.g. stock underflow
)

// Error is the structured error body returned by the store API.
type Error struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	Hint       string `json:"hint,omitempty"`
	HTTPStatus int    `json:"-"`
}

func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("store error %s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("store error %s: %s", e.Code, e.Message)
}

// nonRetryable holds codes that describe a property of the request or data,
// not a transient store condition. Repeating the call cannot change the outcome.
var nonRetryable = map[string]struct{}{
	CodeNoRows:            {},
	CodeUniqueViolation:   {},
	CodeForeignKeyMissing: {},
	CodeRaiseException:    {},
}

// IsRetryable reports whether a failed store call is worth repeating.
// Deterministic store errors and context cancellation are not; everything
// else (network failures, 5xx bodies, unknown codes) is.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var storeErr *Error
	if errors.As(err, &storeErr) {
		_, fixed := nonRetryable[storeErr.Code]
		return !fixed
	}
	return true
}

// Classify maps a store error to an application error with a stable,
// user-presentable message. Unrecognized codes pass through as internal
// errors carrying the store's own message.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var storeErr *Error
	if !errors.As(err, &storeErr) {
		return &apperrors.AppError{
			Code:    "SERVICE_UNAVAILABLE",
			Message: "store unreachable",
			Status:  http.StatusServiceUnavailable,
			Err:     err,
		}
	}

	switch storeErr.Code {
	case CodeNoRows:
		return apperrors.NotFound("Record not found.")
	case CodeUniqueViolation:
		return apperrors.Conflict("Duplicate entry found.")
	case CodeForeignKeyMissing:
		return apperrors.Reference("Reference error (foreign key constraint violation).")
	case CodeUndefinedTable:
		return apperrors.Schema("Database table not found.")
	case CodeRaiseException:
		return &apperrors.AppError{
			Code:    "INSUFFICIENT_STOCK",
			Message: storeErr.Message,
			Status:  http.StatusConflict,
			Err:     apperrors.ErrInsufficientStock,
		}
	default:
		return &apperrors.AppError{
			Code:    "INTERNAL_ERROR",
			Message: fmt.Sprintf("Database error: %s", storeErr.Message),
			Status:  http.StatusInternalServerError,
			Err:     storeErr,
		}
	}
}
