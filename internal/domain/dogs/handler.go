package dogs

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"barkbuddy/internal/middleware"
	"barkbuddy/internal/platform/logger"
	"barkbuddy/internal/ports/images"

	"github.com/go-chi/chi/v5"
)

const (
	DefaultMaxUploadBytes int64 = 10 << 20

	// margen para los campos de texto del multipart, además del archivo
	formOverheadBytes int64 = 1 << 20
)

type HandlerOptions struct {
	MaxUploadBytes int64
	Log            logger.Logger
}

func RegisterRoutes(r chi.Router, svc *Service, opts HandlerOptions) {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}
	h := &handler{svc: svc, maxUpload: opts.MaxUploadBytes, log: opts.Log}

	r.Route("/api/dogs", func(dr chi.Router) {
		dr.Use(middleware.RequireUser)

		dr.Get("/", h.list)
		dr.Post("/", h.create)

		// Rutas fijas antes de /{id}
		dr.Get("/my-dogs", h.listOwned)
		dr.Get("/count", h.count)

		dr.Get("/{id}", h.get)
		dr.Put("/{id}", h.update)
		dr.Delete("/{id}", h.delete)
		dr.Get("/{id}/image", h.image)
	})
}

type handler struct {
	svc       *Service
	maxUpload int64
	log       logger.Logger
}

// dogResponse es el perro tal como lo ve el cliente.
type dogResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Age          int       `json:"age"`
	Gender       string    `json:"gender"`
	Color        string    `json:"color"`
	Nickname     string    `json:"nickname"`
	Owner        string    `json:"owner"`
	Owner2       string    `json:"owner2"`
	Breed        string    `json:"breed"`
	Size         Size      `json:"size"`
	IsFriendly   bool      `json:"isFriendly"`
	IsFavorite   bool      `json:"isFavorite"`
	Neighborhood string    `json:"neighborhood"`
	IsOwner      bool      `json:"isOwner"`
	Notes        string    `json:"notes"`
	Image        *string   `json:"image"`
	UserID       string    `json:"user_id"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type countResponse struct {
	Count int `json:"count"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// dogForm documenta los campos aceptados por POST/PUT (multipart, urlencoded o JSON).
type dogForm struct {
	Name         string  `json:"name"`
	Age          string  `json:"age"`
	Gender       string  `json:"gender"`
	Color        string  `json:"color"`
	Nickname     string  `json:"nickname"`
	Owner        string  `json:"owner"`
	Owner2       string  `json:"owner2"`
	Breed        string  `json:"breed"`
	Size         Size    `json:"size" enums:"xsmall,small,medium,large,xlarge"`
	IsFriendly   string  `json:"isFriendly" enums:"true,false"`
	IsFavorite   string  `json:"isFavorite" enums:"true,false"`
	Neighborhood string  `json:"neighborhood"`
	IsOwner      string  `json:"isOwner" enums:"true,false"`
	Notes        string  `json:"notes"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
}

// list godoc
// @Summary Listar mis perros
// @Description Devuelve los perros catalogados por el usuario autenticado, del más antiguo al más nuevo. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags dogs
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} dogResponse
// @Failure 401 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/dogs [get]
func (h *handler) list(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetClaims(r.Context())
	items, err := h.svc.ListForOwner(r.Context(), claims.UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.toResponses(items))
}

// listOwned godoc
// @Summary Listar perros propios
// @Description Igual que GET /api/dogs pero solo los perros con isOwner=true.
// @Tags dogs
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} dogResponse
// @Failure 401 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/dogs/my-dogs [get]
func (h *handler) listOwned(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetClaims(r.Context())
	items, err := h.svc.ListOwned(r.Context(), claims.UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.toResponses(items))
}

// count godoc
// @Summary Contar mis perros
// @Tags dogs
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} countResponse
// @Failure 401 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/dogs/count [get]
func (h *handler) count(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetClaims(r.Context())
	n, err := h.svc.Count(r.Context(), claims.UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, countResponse{Count: n})
}

// get godoc
// @Summary Obtener un perro
// @Description Un perro de otro usuario responde 404, igual que uno inexistente.
// @Tags dogs
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param id path string true "ID del perro"
// @Success 200 {object} dogResponse
// @Failure 401 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /api/dogs/{id} [get]
func (h *handler) get(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetClaims(r.Context())
	d, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"), claims.UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.toResponse(d))
}

// create godoc
// @Summary Registrar un perro
// @Description Crea un perro del usuario autenticado. Acepta multipart/form-data (con archivo `image` opcional), x-www-form-urlencoded o JSON. Si vienen `latitude` y `longitude` se registra el primer avistamiento; si ese registro falla, el perro no se crea.
// @Tags dogs
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body dogForm true "Campos del perro; name es obligatorio"
// @Param image formData file false "Foto del perro (máx. 10 MiB)"
// @Success 201 {object} dogResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Failure 413 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/dogs [post]
func (h *handler) create(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetClaims(r.Context())

	form, err := h.readForm(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	patch, err := ParseFields(form.fields)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	first, err := ParseSighting(form.fields)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	d, err := h.svc.Create(r.Context(), claims.UserID, patch, form.upload, first)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.toResponse(d))
}

// update godoc
// @Summary Actualizar un perro
// @Description Actualización parcial: solo cambian los campos enviados. Una nueva `image` reemplaza la anterior.
// @Tags dogs
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param id path string true "ID del perro"
// @Param payload body dogForm false "Campos a modificar"
// @Param image formData file false "Nueva foto"
// @Success 200 {object} dogResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 413 {object} errorResponse
// @Router /api/dogs/{id} [put]
func (h *handler) update(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetClaims(r.Context())

	form, err := h.readForm(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	patch, err := ParseFields(form.fields)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	d, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), claims.UserID, patch, form.upload)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.toResponse(d))
}

// delete godoc
// @Summary Eliminar un perro
// @Description Borra el perro, sus avistamientos y su imagen.
// @Tags dogs
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param id path string true "ID del perro"
// @Success 204
// @Failure 401 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /api/dogs/{id} [delete]
func (h *handler) delete(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetClaims(r.Context())
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"), claims.UserID); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// image godoc
// @Summary Foto del perro
// @Description Con imágenes inline devuelve los bytes; con S3/Cloudinary redirige (302) a la URL del objeto.
// @Tags dogs
// @Produce image/jpeg
// @Produce image/png
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param id path string true "ID del perro"
// @Success 200 {file} binary
// @Success 302
// @Failure 401 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /api/dogs/{id}/image [get]
func (h *handler) image(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetClaims(r.Context())
	res, err := h.svc.Image(r.Context(), chi.URLParam(r, "id"), claims.UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if res.RedirectURL != "" {
		http.Redirect(w, r, res.RedirectURL, http.StatusFound)
		return
	}

	ct := res.ContentType
	if ct == "" {
		ct = http.DetectContentType(res.Data)
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Data)))
	w.Header().Set("Cache-Control", "private, max-age=300")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Data)
}

type parsedForm struct {
	fields map[string]string
	upload *images.Upload
}

// readForm acepta multipart/form-data, x-www-form-urlencoded o JSON.
// Todos terminan en map[string]string para que ParseFields sea el único punto de coerción.
func (h *handler) readForm(w http.ResponseWriter, r *http.Request) (parsedForm, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+formOverheadBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(h.maxUpload); err != nil {
			return parsedForm{}, bodyError(err)
		}
		out := parsedForm{fields: firstValues(r.MultipartForm.Value)}

		f, hdr, err := r.FormFile("image")
		switch {
		case errors.Is(err, http.ErrMissingFile):
		case err != nil:
			return parsedForm{}, bodyError(err)
		default:
			defer f.Close()
			if hdr.Size > h.maxUpload {
				return parsedForm{}, errPayloadTooLarge
			}
			data, err := io.ReadAll(f)
			if err != nil {
				return parsedForm{}, bodyError(err)
			}
			out.upload = &images.Upload{
				Filename:    hdr.Filename,
				ContentType: hdr.Header.Get("Content-Type"),
				Data:        data,
			}
		}
		return out, nil

	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return parsedForm{}, bodyError(err)
		}
		return parsedForm{fields: firstValues(r.PostForm)}, nil

	default:
		var raw map[string]any
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				return parsedForm{fields: map[string]string{}}, nil
			}
			return parsedForm{}, bodyError(err)
		}
		fields := make(map[string]string, len(raw))
		for k, v := range raw {
			switch t := v.(type) {
			case nil:
			case string:
				fields[k] = t
			case bool:
				fields[k] = strconv.FormatBool(t)
			case json.Number:
				fields[k] = t.String()
			default:
				return parsedForm{}, &ValidationError{Field: k, Msg: k + " has an unsupported type"}
			}
		}
		return parsedForm{fields: fields}, nil
	}
}

func firstValues(m map[string][]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, vs := range m {
		if len(vs) > 0 {
			out[k] = vs[0]
		}
	}
	return out
}

var errPayloadTooLarge = errors.New("payload too large")

func bodyError(err error) error {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) || strings.Contains(err.Error(), "request body too large") {
		return errPayloadTooLarge
	}
	return &ValidationError{Field: "body", Msg: "invalid request body"}
}

// fail traduce errores de dominio a status HTTP. Los 5xx se loguean y el mensaje es genérico.
func (h *handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Msg)
	case errors.Is(err, ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, errPayloadTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "image exceeds upload limit")
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "dog not found")
	case errors.Is(err, images.ErrNoImage):
		writeError(w, http.StatusNotFound, "dog has no image")
	default:
		h.log.Error("dogs request failed", map[string]any{
			"request_id": middleware.GetRequestID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"error":      err,
		})
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *handler) toResponses(items []Dog) []dogResponse {
	out := make([]dogResponse, 0, len(items))
	for _, d := range items {
		out = append(out, h.toResponse(d))
	}
	return out
}

func (h *handler) toResponse(d Dog) dogResponse {
	resp := dogResponse{
		ID:           d.ID,
		Name:         d.Name,
		Age:          d.Age,
		Gender:       d.Gender,
		Color:        d.Color,
		Nickname:     d.Nickname,
		Owner:        d.Owner,
		Owner2:       d.Owner2,
		Breed:        d.Breed,
		Size:         d.Size,
		IsFriendly:   d.IsFriendly,
		IsFavorite:   d.IsFavorite,
		Neighborhood: d.Neighborhood,
		IsOwner:      d.IsOwner,
		Notes:        d.Notes,
		UserID:       d.UserID,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
	switch {
	case d.Image.URL != "":
		u := d.Image.URL
		resp.Image = &u
	case len(d.Image.Data) > 0:
		u := "/api/dogs/" + d.ID + "/image"
		resp.Image = &u
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
