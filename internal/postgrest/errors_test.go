package postgrest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/mikii-john/e-commerce-backend/pkg/errors"
)

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"network error", errors.New("connection refused"), true},
		{"no rows", &Error{Code: CodeNoRows}, false},
		{"unique violation", &Error{Code: CodeUniqueViolation}, false},
		{"foreign key", &Error{Code: CodeForeignKeyMissing}, false},
		{"raise exception", &Error{Code: CodeRaiseException}, false},
		{"undefined table", &Error{Code: CodeUndefinedTable}, true},
		{"unknown code", &Error{Code: "XX000"}, true},
		{"http 500 body", &Error{Code: "HTTP500"}, true},
		{"context canceled", context.Canceled, false},
		{"deadline exceeded", context.DeadlineExceeded, false},
		{"wrapped store error", fmt.Errorf("query products: %w", &Error{Code: CodeNoRows}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "no rows",
			err:         &Error{Code: CodeNoRows, Message: "JSON object requested, multiple (or no) rows returned"},
			wantStatus:  http.StatusNotFound,
			wantCode:    "NOT_FOUND",
			wantMessage: "Record not found.",
		},
		{
			name:        "unique violation",
			err:         &Error{Code: CodeUniqueViolation, Message: "duplicate key value violates unique constraint"},
			wantStatus:  http.StatusConflict,
			wantCode:    "DUPLICATE",
			wantMessage: "Duplicate entry found.",
		},
		{
			name:        "foreign key",
			err:         &Error{Code: CodeForeignKeyMissing, Message: "violates foreign key constraint"},
			wantStatus:  http.StatusConflict,
			wantCode:    "REFERENCE_ERROR",
			wantMessage: "Reference error (foreign key constraint violation).",
		},
		{
			name:        "undefined table",
			err:         &Error{Code: CodeUndefinedTable, Message: `relation "public.products" does not exist`},
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "SCHEMA_ERROR",
			wantMessage: "Database table not found.",
		},
		{
			name:        "raise exception",
			err:         &Error{Code: CodeRaiseException, Message: "insufficient stock or product not found: 7"},
			wantStatus:  http.StatusConflict,
			wantCode:    "INSUFFICIENT_STOCK",
			wantMessage: "insufficient stock or product not found: 7",
		},
		{
			name:        "unknown code passes message through",
			err:         &Error{Code: "XX000", Message: "internal error"},
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "INTERNAL_ERROR",
			wantMessage: "Database error: internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classified := Classify(tt.err)

			var appErr *apperrors.AppError
			assert.True(t, errors.As(classified, &appErr))
			assert.Equal(t, tt.wantStatus, appErr.Status)
			assert.Equal(t, tt.wantCode, appErr.Code)
			assert.Equal(t, tt.wantMessage, appErr.Message)
		})
	}
}

func TestClassify_NetworkError(t *testing.T) {
	classified := Classify(errors.New("dial tcp: connection refused"))

	var appErr *apperrors.AppError
	assert.True(t, errors.As(classified, &appErr))
	assert.Equal(t, http.StatusServiceUnavailable, appErr.Status)
	assert.Equal(t, "SERVICE_UNAVAILABLE", appErr.Code)
}

func TestClassify_Nil(t *testing.T) {
	assert.NoError(t, Classify(nil))
}

func TestClassify_InsufficientStockSentinel(t *testing.T) {
	classified := Classify(&Error{Code: CodeRaiseException, Message: "insufficient stock or product not found: 3"})
	assert.True(t, errors.Is(classified, apperrors.ErrInsufficientStock))
}
