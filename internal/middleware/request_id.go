package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/lucsky/cuid"
)

const RequestIDHeader = "X-Request-ID"

const requestIDKey ctxKey = "request_id"

// RequestID respeta X-Request-ID si viene; si no, genera un cuid.
// Lo deja en el contexto y lo devuelve en la respuesta.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" || len(id) > 128 {
			id = cuid.New()
		}
		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
