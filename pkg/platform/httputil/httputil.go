// Package httputil centralizes JSON response writing so every handler renders
// the same error envelope.
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "provision/pkg/domain-errors"
)

// ToHTTPStatus maps a domain error code to its HTTP status line.
func ToHTTPStatus(code dErrors.Code) int {
	switch code {
	case dErrors.CodeBadRequest:
		return http.StatusBadRequest
	case dErrors.CodeValidation:
		return http.StatusUnprocessableEntity
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeConflict:
		return http.StatusConflict
	case dErrors.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// errorEnvelope is the wire shape for every failure response.
type errorEnvelope struct {
	Error            string               `json:"error"`
	ErrorDescription string               `json:"error_description,omitempty"`
	Details          []dErrors.FieldError `json:"details,omitempty"`
}

// WriteJSON encodes v with the given status. Encoding failures are swallowed;
// the status line has already been committed.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func envelopeFor(err error) errorEnvelope {
	code := dErrors.CodeOf(err)
	env := errorEnvelope{Error: string(code)}
	if code != dErrors.CodeInternal {
		env.ErrorDescription = dErrors.MessageOf(err)
	}
	env.Details = dErrors.FieldsOf(err)
	return env
}

// WriteError translates a domain error into the JSON error envelope.
// Internal errors omit the description so infrastructure detail never leaks
// to clients.
func WriteError(w http.ResponseWriter, err error) {
	WriteJSON(w, ToHTTPStatus(dErrors.CodeOf(err)), envelopeFor(err))
}

// ErrorBody renders err's envelope as a standalone JSON string for writers
// that cannot go through WriteError, such as http.TimeoutHandler.
func ErrorBody(err error) string {
	raw, _ := json.Marshal(envelopeFor(err))
	return string(raw)
}
