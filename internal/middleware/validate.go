package middleware

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bug-tracker/internal/utils"
	"bug-tracker/internal/validation"
)

// ValidateID rejects requests whose {param} is not a well-formed bug id
// before any handler runs.
func ValidateID(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var ve *validation.Error
			if err := validation.ValidateID(chi.URLParam(r, param)); errors.As(err, &ve) {
				utils.ValidationError(w, ve.Messages)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
