package middleware

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sndpbag/Library-Management-API/internal/apperrors"
	"github.com/sndpbag/Library-Management-API/internal/utils"
)

// EnsureStorage guards routes behind a lazy storage connect. Used in
// production mode where the server starts listening before the database
// has been reached.
func EnsureStorage(connect func() error) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := connect(); err != nil {
				utils.JSONError(w, apperrors.Storage(err))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
