package httpapp

import (
	"encoding/json"
	"net/http"
)

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// conflictResponse carries the record the request collided with.
type conflictResponse struct {
	Error    string      `json:"error"`
	Existing interface{} `json:"existing"`
}

func respondConflict(w http.ResponseWriter, msg string, existing interface{}) {
	respondJSON(w, http.StatusConflict, conflictResponse{Error: msg, Existing: existing})
}
