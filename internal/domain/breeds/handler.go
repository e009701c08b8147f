package breeds

import (
	"context"
	"encoding/json"
	"net/http"

	"barkbuddy/internal/middleware"
	"barkbuddy/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Source permite reemplazar el Loader en tests.
type Source interface {
	ListBreeds(ctx context.Context) ([]Row, error)
	Names(ctx context.Context) ([]string, error)
}

// RegisterRoutes monta /api/breeds. Rutas públicas: no exigen token.
func RegisterRoutes(r chi.Router, src Source, log logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}
	r.Get("/api/breeds", listBreedsHandler(src, log))
	r.Get("/api/breeds/names", listBreedNamesHandler(src, log))
}

// listBreedsHandler godoc
// @Summary Listar razas
// @Description Filas del CSV de razas (columna => valor). No requiere autenticación.
// @Tags breeds
// @Produce json
// @Success 200 {array} map[string]string
// @Failure 500 {object} map[string]string "Failed to load breeds"
// @Router /api/breeds [get]
func listBreedsHandler(src Source, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := src.ListBreeds(r.Context())
		if err != nil {
			log.Error("load breeds", map[string]any{
				"request_id": middleware.GetRequestID(r.Context()),
				"error":      err,
			})
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to load breeds"})
			return
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

// listBreedNamesHandler godoc
// @Summary Listar nombres de razas
// @Tags breeds
// @Produce json
// @Success 200 {array} string
// @Failure 500 {object} map[string]string "Failed to load breeds"
// @Router /api/breeds/names [get]
func listBreedNamesHandler(src Source, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		names, err := src.Names(r.Context())
		if err != nil {
			log.Error("load breed names", map[string]any{
				"request_id": middleware.GetRequestID(r.Context()),
				"error":      err,
			})
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to load breeds"})
			return
		}
		writeJSON(w, http.StatusOK, names)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
