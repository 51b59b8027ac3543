package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// respondError writes the same {"error": ...} body the API handlers use,
// with a matching Content-Type.
func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
