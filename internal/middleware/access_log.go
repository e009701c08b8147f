package middleware

import (
	"net/http"
	"time"

	"barkbuddy/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// AccessLog loguea una línea por request.
func AccessLog(log logger.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			fields := map[string]any{
				"request_id":  GetRequestID(r.Context()),
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      status,
				"bytes":       ww.BytesWritten(),
				"duration_ms": time.Since(start).Milliseconds(),
				"remote":      r.RemoteAddr,
			}

			switch {
			case status >= 500:
				log.Error("request", fields)
			case status >= 400:
				log.Warn("request", fields)
			default:
				log.Info("request", fields)
			}
		})
	}
}
