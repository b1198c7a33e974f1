package utils

import (
	"encoding/json"
	"net/http"
	"strings"
)

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes the failure envelope.
func Error(w http.ResponseWriter, code int, msg string) {
	JSON(w, code, map[string]any{"success": false, "message": msg})
}

// ValidationError writes the 400 envelope listing every violation.
func ValidationError(w http.ResponseWriter, msgs []string) {
	JSON(w, http.StatusBadRequest, map[string]any{
		"success": false,
		"message": "Validation failed: " + strings.Join(msgs, ", "),
		"errors":  msgs,
	})
}
