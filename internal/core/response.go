// FareLens | 2026
// response.go

package core

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// Success responses carry the documented payload shape directly; errors use
// a {"success":false,"error":{...}} envelope so clients can distinguish the
// two without inspecting status codes.

func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // best-effort response write
	_ = json.NewEncoder(w).Encode(data)
}

func OK(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, data)
}

func Created(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, data)
}

func Accepted(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusAccepted, data)
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

type errorEnvelope struct {
	Success bool      `json:"success"`
	Error   *AppError `json:"error"`
}

func JSONError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = &AppError{
			Code:    "INTERNAL_ERROR",
			Message: "an internal error occurred",
			Status:  http.StatusInternalServerError,
		}
	}

	WriteJSON(w, appErr.Status, errorEnvelope{Success: false, Error: appErr})
}

func BadRequest(w http.ResponseWriter, message string) {
	JSONError(w, &AppError{
		Code:    "BAD_REQUEST",
		Message: message,
		Status:  http.StatusBadRequest,
	})
}

func UnprocessableEntity(w http.ResponseWriter, message string) {
	JSONError(w, ValidationError(message))
}

func NotFound(w http.ResponseWriter, resource string) {
	JSONError(w, NotFoundError(resource))
}

// InternalServerError logs the underlying error and answers with a generic
// envelope. Storage unavailability maps to 503 so load balancers and
// clients can tell a backend outage from a bug.
func InternalServerError(w http.ResponseWriter, err error) {
	slog.Error("internal server error", "error", err)

	if errors.Is(err, ErrUnavailable) {
		JSONError(w, &AppError{
			Code:    "SERVICE_UNAVAILABLE",
			Message: "storage backend unavailable",
			Status:  http.StatusServiceUnavailable,
		})
		return
	}

	JSONError(w, &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
		Status:  http.StatusInternalServerError,
	})
}
