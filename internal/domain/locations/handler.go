package locations

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"barkbuddy/internal/domain/dogs"
	"barkbuddy/internal/middleware"
	"barkbuddy/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, dogsSvc *dogs.Service, log logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}

	r.Route("/locations/{dogID}", func(lr chi.Router) {
		lr.Use(middleware.RequireUser)

		lr.Post("/", addLocationHandler(svc, dogsSvc, log))
		lr.Get("/", listLocationsHandler(svc, dogsSvc, log))
		lr.Get("/trail", trailHandler(svc, dogsSvc, log))
	})
}

type addLocationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type locationResponse struct {
	ID        string    `json:"id"`
	DogID     string    `json:"dog_id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type trailResponse struct {
	Polyline string            `json:"polyline"`
	Points   int               `json:"points"`
	First    *locationResponse `json:"first"`
	Last     *locationResponse `json:"last"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// addLocationHandler godoc
// @Summary Registrar avistamiento
// @Description Agrega un avistamiento (lat/lng) a un perro del usuario. Un perro ajeno responde 404.
// @Tags locations
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param dogID path string true "ID del perro"
// @Param payload body addLocationRequest true "latitude [-90,90], longitude [-180,180]"
// @Success 201 {object} locationResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /locations/{dogID} [post]
func addLocationHandler(svc *Service, dogsSvc *dogs.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dogID, ok := ownedDog(w, r, dogsSvc, log)
		if !ok {
			return
		}

		var req addLocationRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		l, err := svc.Add(r.Context(), dogID, AddInput{Latitude: req.Latitude, Longitude: req.Longitude})
		if err != nil {
			fail(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusCreated, toLocationResponse(l))
	}
}

// listLocationsHandler godoc
// @Summary Listar avistamientos
// @Description Avistamientos del perro en orden de creación (el primero es "first met").
// @Tags locations
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param dogID path string true "ID del perro"
// @Success 200 {array} locationResponse
// @Failure 401 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /locations/{dogID} [get]
func listLocationsHandler(svc *Service, dogsSvc *dogs.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dogID, ok := ownedDog(w, r, dogsSvc, log)
		if !ok {
			return
		}

		items, err := svc.ListForDog(r.Context(), dogID)
		if err != nil {
			fail(w, r, log, err)
			return
		}

		out := make([]locationResponse, 0, len(items))
		for _, l := range items {
			out = append(out, toLocationResponse(l))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// trailHandler godoc
// @Summary Recorrido del perro
// @Description Devuelve los avistamientos codificados como Google encoded polyline, más el primero y el último.
// @Tags locations
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param dogID path string true "ID del perro"
// @Success 200 {object} trailResponse
// @Failure 401 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /locations/{dogID}/trail [get]
func trailHandler(svc *Service, dogsSvc *dogs.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dogID, ok := ownedDog(w, r, dogsSvc, log)
		if !ok {
			return
		}

		t, err := svc.Trail(r.Context(), dogID)
		if err != nil {
			fail(w, r, log, err)
			return
		}

		resp := trailResponse{Polyline: t.Polyline, Points: t.Points}
		if t.First != nil {
			f := toLocationResponse(*t.First)
			resp.First = &f
		}
		if t.Last != nil {
			l := toLocationResponse(*t.Last)
			resp.Last = &l
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// ownedDog: el perro debe existir y ser del caller; si no, 404 (nunca 403).
func ownedDog(w http.ResponseWriter, r *http.Request, dogsSvc *dogs.Service, log logger.Logger) (string, bool) {
	claims, _ := middleware.GetClaims(r.Context())
	dogID := chi.URLParam(r, "dogID")

	if err := dogsSvc.CheckOwner(r.Context(), dogID, claims.UserID); err != nil {
		fail(w, r, log, err)
		return "", false
	}
	return dogID, true
}

func fail(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	var ie *InputError
	switch {
	case errors.As(err, &ie):
		writeError(w, http.StatusBadRequest, ie.Msg)
	case errors.Is(err, ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrDogNotFound), errors.Is(err, dogs.ErrNotFound):
		writeError(w, http.StatusNotFound, "dog not found")
	default:
		log.Error("locations request failed", map[string]any{
			"request_id": middleware.GetRequestID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"error":      err,
		})
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func toLocationResponse(l Location) locationResponse {
	return locationResponse{
		ID:        l.ID,
		DogID:     l.DogID,
		Latitude:  l.Latitude,
		Longitude: l.Longitude,
		Timestamp: l.Timestamp,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
