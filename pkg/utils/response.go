package utils

import (
	"encoding/json"
	"net/http"
)

// JSON writes data as a JSON response with the given status
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// Message writes {"message": msg}
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"message": msg})
}

// Error writes {"message": msg, "error": err} with err omitted when nil
func Error(w http.ResponseWriter, status int, msg string, err error) {
	body := map[string]string{"message": msg}
	if err != nil {
		body["error"] = err.Error()
	}
	JSON(w, status, body)
}
