package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jfuentes/bookshelf-be/internal/apperror"
)

// respondJSON writes payload as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondMessage writes a {"message": ...} body with the given status.
func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// respondError maps a service error onto an HTTP status and a
// {"message": ...} body. Anything outside the apperror taxonomy is an
// internal error; its detail stays in the logs, never in the response.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperror.ErrValidation):
		respondMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperror.ErrInvalidCredentials):
		respondMessage(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, apperror.ErrForbidden):
		respondMessage(w, http.StatusForbidden, err.Error())
	case errors.Is(err, apperror.ErrNotFound):
		respondMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, apperror.ErrConflict):
		respondMessage(w, http.StatusConflict, err.Error())
	default:
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}
