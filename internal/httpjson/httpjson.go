// Package httpjson writes the JSON responses shared by the route packages.
package httpjson

import (
	"encoding/json"
	"net/http"
)

// Write encodes v as the response body with the given status. If v cannot be
// encoded the client receives a 500 error body instead of a truncated one.
func Write(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(`{"error":"encoding response failed"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

// Error writes {"error": msg} with the given status.
func Error(w http.ResponseWriter, status int, msg string) {
	Write(w, status, map[string]string{"error": msg})
}
