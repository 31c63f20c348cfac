package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/msituguard/msituguard/internal/store"
)

// ErrNotAuthorized is returned when a verification is attempted by an actor
// without the admin role.
var ErrNotAuthorized = errors.New("actor not authorized to verify")

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Success: false, Error: err.Error()})
}

// writeDomainError maps store and authorization errors onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrCountyNotFound),
		errors.Is(err, store.ErrSpeciesNotFound),
		errors.Is(err, store.ErrEnvironmentNotFound),
		errors.Is(err, store.ErrNotRecommended),
		errors.Is(err, store.ErrPlantingNotFound),
		errors.Is(err, store.ErrReportNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, store.ErrInvalidTransition),
		errors.Is(err, store.ErrInsufficientBalance):
		writeError(w, http.StatusConflict, err)
	case errors.Is(err, store.ErrInvalidTransaction):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, ErrNotAuthorized):
		writeError(w, http.StatusForbidden, err)
	default:
		log.Printf("internal error: %v", err)
		writeError(w, http.StatusInternalServerError, err)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return false
	}
	return true
}
