// AngelaMos | 2026
// response.go

package core

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/go-playground/validator/v10"
)

// includeStacks toggles stack traces in error envelopes. Set once at
// startup from the deployment environment, read-only afterwards.
var includeStacks bool

func SetIncludeStacks(enabled bool) {
	includeStacks = enabled
}

type Meta struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

type Envelope struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
	Meta       *Meta  `json:"meta,omitempty"`
}

type ErrorEnvelope struct {
	Success       bool         `json:"success"`
	StatusCode    int          `json:"statusCode"`
	Message       string       `json:"message"`
	ErrorMessages []FieldError `json:"errorMessages"`
	Stack         string       `json:"stack,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("write response", "error", err)
	}
}

func JSON(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, Envelope{
		Success:    true,
		StatusCode: status,
		Message:    message,
		Data:       data,
	})
}

func OK(w http.ResponseWriter, message string, data any) {
	JSON(w, http.StatusOK, message, data)
}

func Created(w http.ResponseWriter, message string, data any) {
	JSON(w, http.StatusCreated, message, data)
}

func Paginated(
	w http.ResponseWriter,
	message string,
	data any,
	total int64,
	page, limit int,
) {
	writeJSON(w, http.StatusOK, Envelope{
		Success:    true,
		StatusCode: http.StatusOK,
		Message:    message,
		Data:       data,
		Meta:       &Meta{Total: total, Page: page, Limit: limit},
	})
}

// JSONError is the single place an error becomes a wire response.
func JSONError(w http.ResponseWriter, err error) {
	appErr := Normalize(err)

	if appErr.Status >= http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
	}

	details := appErr.Details
	if len(details) == 0 {
		details = []FieldError{{Path: "", Message: appErr.Message}}
	}

	body := ErrorEnvelope{
		Success:       false,
		StatusCode:    appErr.Status,
		Message:       appErr.Message,
		ErrorMessages: details,
	}

	if includeStacks {
		body.Stack = string(debug.Stack())
	}

	writeJSON(w, appErr.Status, body)
}

func BadRequest(w http.ResponseWriter, message string) {
	JSONError(w, BadRequestError(message))
}

func NotFound(w http.ResponseWriter, resource string) {
	JSONError(w, NotFoundError(resource))
}

func Unauthorized(w http.ResponseWriter, message string) {
	JSONError(w, UnauthorizedError(message))
}

func Forbidden(w http.ResponseWriter, message string) {
	JSONError(w, ForbiddenError(message))
}

func Conflict(w http.ResponseWriter, message string, fields ...string) {
	JSONError(w, ConflictError(message, fields...))
}

func InternalServerError(w http.ResponseWriter, err error) {
	JSONError(w, NewAppError(
		err,
		"An unexpected error occurred",
		http.StatusInternalServerError,
		"INTERNAL",
	))
}

// FormatValidationError flattens validator.v10 output into one
// {path, message} record per violated field.
func FormatValidationError(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Path: "", Message: err.Error()}}
	}

	details := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, FieldError{
			Path:    fe.Field(),
			Message: validationMessage(fe),
		})
	}
	return details
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "Invalid email address"
	case "min":
		return fe.Field() + " must be at least " + fe.Param() + " characters long"
	case "max":
		return fe.Field() + " must be less than " + fe.Param() + " characters"
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	case "gte":
		return fe.Field() + " must be at least " + fe.Param()
	case "lte":
		return fe.Field() + " must be at most " + fe.Param()
	case "bd_phone":
		return "Invalid Bangladeshi phone number."
	case "email_or_phone":
		return "Either email or phone must be provided"
	default:
		return fe.Field() + " is invalid"
	}
}
