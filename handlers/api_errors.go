package handlers

import (
	"encoding/json"
	"log"
	"net/http"
)

// errorResponse is the standardized failure body: a human-readable message
// plus the underlying error detail where one is available.
type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("Error encoding JSON response: %v", err)
		}
	}
}

// writeError writes the standardized error body with the given HTTP status.
// detail may be empty when there is no underlying error to surface.
func writeError(w http.ResponseWriter, status int, message, detail string) {
	writeJSON(w, status, errorResponse{Message: message, Error: detail})
}
