package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"barkbuddy/internal/platform/logger"
)

// Recover atrapa panics, los loguea con stack y responde 500 JSON.
func Recover(log logger.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Error("panic recovered", map[string]any{
					"request_id": GetRequestID(r.Context()),
					"method":     r.Method,
					"path":       r.URL.Path,
					"panic":      fmt.Sprint(rec),
					"stack":      string(debug.Stack()),
				})
				writeError(w, http.StatusInternalServerError, "internal error")
			}()
			next.ServeHTTP(w, r)
		})
	}
}
