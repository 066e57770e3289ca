package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"duit/internal/core"
	applog "duit/internal/log"
	"duit/internal/store"
)

// envelope is the uniform response shape. A failed request carries the
// propagated error message unchanged in Message.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func respondData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: status < 400, Message: message})
}

// respondError maps domain errors onto status codes: missing ids are 404,
// validation failures 422, everything else is a store failure at 500.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case isValidationError(err):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path)
	}

	writeJSON(w, status, envelope{Success: false, Message: err.Error()})
}

func isValidationError(err error) bool {
	return errors.Is(err, core.ErrInvalidAmount) ||
		errors.Is(err, core.ErrEmptyName) ||
		errors.Is(err, core.ErrEmptyCategory) ||
		errors.Is(err, core.ErrZeroDate) ||
		errors.Is(err, core.ErrUnknownKind) ||
		errors.Is(err, core.ErrUnknownPeriod)
}

// decodeBody parses a JSON request body, rejecting unknown fields so typos
// surface as 400s instead of silent no-ops.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, envelope{Success: false, Message: "invalid request body: " + err.Error()})
		return false
	}
	return true
}
