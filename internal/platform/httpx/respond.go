// Package httpx provides HTTP response utilities shared by the stub
// backend and the client-side payload decoding.
package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the normalized error envelope the CRM backend returns
// for every failed request.
type ErrorBody struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
	Status  int      `json:"status"`
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Fail sends the normalized error envelope.
func Fail(w http.ResponseWriter, status int, message string, details ...string) {
	JSON(w, status, ErrorBody{
		Error:   message,
		Details: details,
		Status:  status,
	})
}

// DecodeJSON decodes JSON request body into the target struct.
func DecodeJSON(r *http.Request, target any) error {
	return json.NewDecoder(r.Body).Decode(target)
}
