package handlers

import (
	"net/http"

	"bug-tracker/internal/service"
	"bug-tracker/internal/utils"
)

// Health reports 503 when the storage backend does not answer.
func Health(bugs *service.BugService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := bugs.Ping(r.Context()); err != nil {
			utils.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
