package http

import (
	"encoding/json"
	"log"
	"net/http"
)

// Response is the envelope every endpoint answers with. The admin UI shows
// Error verbatim as a notification, so messages are written for people.
type Response struct {
	Success       bool     `json:"success"`
	Data          any      `json:"data,omitempty"`
	Message       string   `json:"message,omitempty"`
	Error         string   `json:"error,omitempty"`
	Details       string   `json:"details,omitempty"`
	ValidStatuses []string `json:"validStatuses,omitempty"`
	DeletedData   any      `json:"deletedData,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondData(w http.ResponseWriter, status int, data any) {
	respondJSON(w, status, Response{Success: true, Data: data})
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, Response{Success: false, Error: message})
}
