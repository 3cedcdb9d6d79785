package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"taskboard/internal/errors"
)

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	var maxBytes *http.MaxBytesError
	switch {
	case stderrors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.IsValidation(err):
		return http.StatusBadRequest
	case errors.IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeError writes err as a JSON error body. Server-side failures are
// logged at error level with their cause; client errors at debug.
func (h *taskHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)

	body := errorResponse{
		Error:   errors.GetErrorCode(err),
		Message: errors.GetUserMessage(err),
	}
	if status == http.StatusRequestEntityTooLarge {
		body = errorResponse{Error: "PAYLOAD_TOO_LARGE", Message: "request body too large"}
	}
	if status == http.StatusInternalServerError {
		if _, ok := errors.AsAppError(err); !ok {
			body = errorResponse{Error: "INTERNAL_ERROR", Message: "An unexpected error occurred. Please try again."}
		}
	}

	if errors.ShouldLogError(err) && status >= 500 {
		h.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	} else {
		h.logger.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "err", err)
	}

	writeJSON(w, status, body)
}

// decodeError wraps a JSON decoding failure as invalid input, keeping a
// body-size failure recognisable.
func decodeError(err error) error {
	var maxBytes *http.MaxBytesError
	if stderrors.As(err, &maxBytes) {
		return err
	}
	return errors.NewInvalidInputError("body", nil, "malformed JSON: "+err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
