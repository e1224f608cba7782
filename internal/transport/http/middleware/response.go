package middleware

import (
	"encoding/json"
	"net/http"
)

// writeJSONError writes a {"detail": msg} error body with the given status.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": msg})
}
