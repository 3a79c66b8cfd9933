// Package httpapi exposes the HTTP layer of the product and stock services.
package httpapi

import (
	"encoding/json"
	"net/http"
)

// jsonError is the payload for protocol-level rejections such as malformed
// JSON or a server that is shutting down.
type jsonError struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// WriteJSONError writes a JSON error payload with the given status code.
func WriteJSONError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(jsonError{Error: message, Details: details})
}
