package middleware

import (
	"net/http"

	"github.com/rs/zerolog"

	"bug-tracker/internal/utils"
)

func Recoverer(l zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					l.Error().Interface("panic", rec).Str("request_id", utils.RequestID(r.Context())).Msg("panic")
					utils.Error(w, http.StatusInternalServerError, "Internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
