// Package respond provides utilities for sending HTTP responses in JSON format.
// It maps domain failures to status codes and sanitizes internal errors so
// that nothing sensitive leaks to clients.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"guidepedia/internal/domain/entity"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
	Field string `json:"field,omitempty"`
}

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Headers are already sent.
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// StatusFor maps a domain failure to its HTTP status. Anything unrecognised
// is an internal error.
func StatusFor(err error) (int, string) {
	var verr *entity.ValidationError
	switch {
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, entity.ErrInvalidTransition):
		return http.StatusConflict, "invalid_transition"
	case errors.Is(err, entity.ErrSelfReference):
		return http.StatusUnprocessableEntity, "self_reference"
	case errors.Is(err, entity.ErrConcurrentModification):
		return http.StatusConflict, "concurrent_modification"
	case errors.As(err, &verr), errors.Is(err, entity.ErrInvalidInput):
		return http.StatusBadRequest, "invalid_input"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// DomainError writes the response for a failure returned by a use case.
// Client errors carry the domain message; internal errors are logged and
// replaced with a generic message.
func DomainError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}
	code, kind := StatusFor(err)
	if code >= http.StatusInternalServerError {
		SafeError(w, r, code, err)
		return
	}

	body := ErrorBody{Error: clientMessage(err), Code: kind}
	var verr *entity.ValidationError
	if errors.As(err, &verr) {
		body.Field = verr.Field
	}
	JSON(w, code, body)
}

// clientMessage prefers the typed error's own message over the wrapped chain,
// which may mention internal operation names.
func clientMessage(err error) string {
	var (
		nf   *entity.NotFoundError
		tr   *entity.TransitionError
		verr *entity.ValidationError
	)
	switch {
	case errors.As(err, &nf):
		return nf.Error()
	case errors.As(err, &tr):
		return tr.Error()
	case errors.As(err, &verr):
		return verr.Error()
	case errors.Is(err, entity.ErrSelfReference):
		return entity.ErrSelfReference.Error()
	case errors.Is(err, entity.ErrConcurrentModification):
		return entity.ErrConcurrentModification.Error()
	default:
		return err.Error()
	}
}

// SafeError logs err with secrets masked and answers with a generic message.
func SafeError(w http.ResponseWriter, r *http.Request, code int, err error) {
	logger := slog.Default()
	if r != nil {
		logger = loggerFrom(r)
	}
	logger.Error("internal server error",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.String("error", SanitizeError(err)))
	JSON(w, code, ErrorBody{Error: "internal server error", Code: "internal"})
}

// InvalidField answers 400 for a malformed path or query parameter.
func InvalidField(w http.ResponseWriter, field string, err error) {
	JSON(w, http.StatusBadRequest, ErrorBody{Error: err.Error(), Code: "invalid_input", Field: field})
}
