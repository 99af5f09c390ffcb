package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"gracehub-backend/internal/apperr"
	"gracehub-backend/internal/logger"
)

type errorBody struct {
	Code    apperr.Code `json:"code"`
	Message string      `json:"message"`
	Details string      `json:"details,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// writeError maps the error taxonomy onto HTTP statuses. Anything that is
// not an *apperr.Error is an unexpected failure: it is logged with its cause
// and surfaced as a generic internal error without leaking store internals.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		logger.Error("request failed", "path", r.URL.Path, "method", r.Method, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorEnvelope{Error: errorBody{
			Code:    apperr.CodeInternal,
			Message: "internal error",
		}})
		return
	}

	writeJSON(w, statusFor(ae.Code), errorEnvelope{Error: errorBody{
		Code:    ae.Code,
		Message: ae.Message,
		Details: ae.Details,
	}})
}

func statusFor(code apperr.Code) int {
	switch code {
	case apperr.CodeUnauthenticated:
		return http.StatusUnauthorized
	case apperr.CodeForbidden:
		return http.StatusForbidden
	case apperr.CodeInvalidArgument:
		return http.StatusBadRequest
	case apperr.CodeNotFound:
		return http.StatusNotFound
	case apperr.CodeConflict:
		return http.StatusConflict
	case apperr.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Wrap(apperr.CodeInvalidArgument, "malformed JSON body", err)
	}
	return nil
}
