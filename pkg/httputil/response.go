package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/mikii-john/e-commerce-backend/pkg/errors"
	"github.com/mikii-john/e-commerce-backend/pkg/logger"
	"github.com/mikii-john/e-commerce-backend/pkg/validator"
)

// Response is the standard JSON response envelope used by every endpoint.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK builds a successful envelope around the given payload.
func OK(data any) Response {
	return Response{Success: true, Data: data}
}

// WriteJSON writes a JSON response with the given status code.
// If encoding fails, headers are already sent so nothing can be done.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes a standardized failure envelope based on the error type.
// AppErrors carry their own status, user-facing message, and machine code;
// everything else is surfaced as a 500 with a generic message. It prefers the
// request-scoped logger from context (set by the RequestLogger middleware)
// over the fallback logger.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback *slog.Logger) {
	l := logger.FromContext(r.Context())
	if l == slog.Default() {
		l = fallback
	}

	status := apperrors.HTTPStatus(err)
	message := "an internal error occurred"
	code := "INTERNAL_ERROR"

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
		code = appErr.Code
	}

	if status == http.StatusInternalServerError {
		l.ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
	}

	WriteJSON(w, status, Response{Success: false, Message: message, Error: code})
}

// WriteValidationError writes a 400 failure envelope for request validation
// failures, using the field-level messages from the validator package.
func WriteValidationError(w http.ResponseWriter, err error) {
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		WriteJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Message: "Invalid order data.",
			Error:   valErr.Error(),
		})
		return
	}

	WriteJSON(w, http.StatusBadRequest, Response{
		Success: false,
		Message: "Invalid order data.",
		Error:   err.Error(),
	})
}
