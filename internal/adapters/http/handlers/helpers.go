package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/longregen/pipegen/internal/adapters/http/dto"
)

// respondJSON writes a JSON response with the given status code
func respondJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, errorType string, message string, status int) {
	respondJSON(w, dto.NewErrorResponse(errorType, message, status), status)
}

// respondErrorWithSuggestion writes an error JSON response carrying a
// remediation hint for the caller.
func respondErrorWithSuggestion(w http.ResponseWriter, errorType, message, suggestion string, status int) {
	resp := dto.NewErrorResponse(errorType, message, status)
	resp.Suggestion = suggestion
	respondJSON(w, resp, status)
}

// decodeJSON decodes JSON request body with error handling
func decodeJSON[T any](r *http.Request, w http.ResponseWriter) (*T, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, 1024*1024) // 1MB limit

	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid_request", "Invalid request body", http.StatusBadRequest)
		return nil, false
	}
	return &req, true
}
