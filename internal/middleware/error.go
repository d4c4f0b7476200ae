package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/zikashaLLP/Rotery-Club-sub000/internal/logger"
)

// ErrorHandlingMiddleware recovers from panics and converts them into a
// plain 500 response
func ErrorHandlingMiddleware(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.Error("panic recovered",
						"error", err,
						"path", r.URL.Path,
						"stack", string(debug.Stack()),
					)
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// IsHTMXRequest reports whether the request came from HTMX
func IsHTMXRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
