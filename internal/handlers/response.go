package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Error messages shared by several handlers
const (
	msgRouteNotFound   = "route not found"
	msgProductNotFound = "product not found"
	msgInternalError   = "internal server error"
	msgInvalidBody     = "invalid request body"
)

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, status int, data interface{}, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes an error response in JSON format
func WriteError(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	WriteJSON(w, status, map[string]string{"error": message}, logger)
}

// NotFound answers unmatched routes and methods
func NotFound(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusNotFound, msgRouteNotFound, logger)
	}
}
