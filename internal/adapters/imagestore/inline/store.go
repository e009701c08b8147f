package inline

import (
	"context"
	"net/http"
	"strings"

	"barkbuddy/internal/ports/images"
)

// Store guarda los bytes de la imagen en la misma fila del perro.
type Store struct{}

func New() *Store { return &Store{} }

func (s *Store) Mode() images.Mode { return images.ModeInline }

func (s *Store) Store(_ context.Context, up images.Upload) (images.Ref, error) {
	ct := strings.TrimSpace(up.ContentType)
	if ct == "" || ct == "application/octet-stream" {
		ct = http.DetectContentType(up.Data)
	}
	data := make([]byte, len(up.Data))
	copy(data, up.Data)
	return images.Ref{Data: data, ContentType: ct}, nil
}

func (s *Store) Resolve(_ context.Context, ref images.Ref) (images.Resolved, error) {
	if len(ref.Data) > 0 {
		return images.Resolved{Data: ref.Data, ContentType: ref.ContentType}, nil
	}
	if ref.URL != "" {
		return images.Resolved{RedirectURL: ref.URL}, nil
	}
	return images.Resolved{}, images.ErrNoImage
}

// Delete no hace nada: los bytes se van con la fila.
func (s *Store) Delete(context.Context, images.Ref) error { return nil }
