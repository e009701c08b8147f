package images

import (
	"context"
	"errors"
)

var (
	// ErrUpstream envuelve fallas del proveedor de imágenes (S3, Cloudinary).
	ErrUpstream = errors.New("image store upstream error")
	ErrNoImage  = errors.New("no image")
)

// Mode indica cómo se persiste la imagen de un perro.
type Mode string

const (
	ModeInline Mode = "inline" // bytes en la fila del perro
	ModeURL    Mode = "url"    // objeto externo, la fila guarda la URL
)

// Upload es el archivo recibido en el request.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Ref es lo que se guarda junto al perro. Solo uno de URL/Data viene seteado.
type Ref struct {
	URL         string
	Data        []byte
	ContentType string
}

func (r Ref) IsZero() bool {
	return r.URL == "" && len(r.Data) == 0
}

// Resolved es lo que el endpoint de imagen necesita para responder:
// bytes para servir directo o una URL para redirigir.
type Resolved struct {
	RedirectURL string
	Data        []byte
	ContentType string
}

// Store persiste imágenes. Una sola implementación por deployment (IMAGE_STORE).
type Store interface {
	Mode() Mode
	Store(ctx context.Context, up Upload) (Ref, error)
	Resolve(ctx context.Context, ref Ref) (Resolved, error)
	Delete(ctx context.Context, ref Ref) error
}
