package dogs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"barkbuddy/internal/platform/logger"
	"barkbuddy/internal/platform/validate"
	"barkbuddy/internal/ports/images"

	"github.com/google/uuid"
)

// SightingRecorder registra un avistamiento (lo implementa locations.Service).
// Se define acá para evitar ciclos de imports dogs <-> locations.
type SightingRecorder interface {
	Record(ctx context.Context, dogID string, latitude, longitude float64) error
}

type Service struct {
	repo      Repository
	images    images.Store
	sightings SightingRecorder
	log       logger.Logger
	now       func() time.Time
}

func NewService(repo Repository, store images.Store, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:   repo,
		images: store,
		log:    log,
		now:    time.Now,
	}
}

// SetSightingRecorder se llama desde el router una vez creado locations.Service.
func (s *Service) SetSightingRecorder(rec SightingRecorder) {
	s.sightings = rec
}

func (s *Service) ImageMode() images.Mode {
	if s.images == nil {
		return images.ModeInline
	}
	return s.images.Mode()
}

func (s *Service) Create(ctx context.Context, ownerID string, p Patch, upload *images.Upload, first *Coords) (Dog, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return Dog{}, ErrInvalidInput
	}

	d := Dog{
		UserID:     ownerID,
		Gender:     Unknown,
		Color:      Unknown,
		Owner:      Unknown,
		Breed:      Unknown,
		IsFriendly: true,
	}
	p.applyTo(&d)

	if err := validate.Struct(d); err != nil {
		return Dog{}, fromValidator(err)
	}
	if first != nil {
		if err := validate.Struct(*first); err != nil {
			return Dog{}, fromValidator(err)
		}
	}

	if upload != nil {
		ref, err := s.storeImage(ctx, *upload)
		if err != nil {
			return Dog{}, err
		}
		d.Image = ref
	}

	now := s.now()
	d.ID = uuid.NewString()
	d.CreatedAt = now
	d.UpdatedAt = now

	if err := s.repo.Create(ctx, d); err != nil {
		s.discardImage(ctx, d.ID, d.Image)
		return Dog{}, fmt.Errorf("create dog: %w", err)
	}

	if first != nil && s.sightings != nil {
		if err := s.sightings.Record(ctx, d.ID, first.Latitude, first.Longitude); err != nil {
			// Sin avistamiento no hay perro: deshacer fila e imagen.
			if delErr := s.repo.Delete(ctx, d.ID, ownerID); delErr != nil {
				s.log.Error("rollback dog after sighting failure", map[string]any{
					"dog_id": d.ID,
					"error":  delErr,
				})
			}
			s.discardImage(ctx, d.ID, d.Image)
			return Dog{}, fmt.Errorf("record initial sighting: %w", err)
		}
	}

	return d, nil
}

func (s *Service) ListForOwner(ctx context.Context, ownerID string) ([]Dog, error) {
	return s.repo.ListByOwner(ctx, ownerID, ListFilter{})
}

// ListOwned devuelve solo los perros marcados isOwner (los "míos").
func (s *Service) ListOwned(ctx context.Context, ownerID string) ([]Dog, error) {
	return s.repo.ListByOwner(ctx, ownerID, ListFilter{OnlyOwned: true})
}

func (s *Service) Get(ctx context.Context, id, ownerID string) (Dog, error) {
	if strings.TrimSpace(id) == "" || strings.TrimSpace(ownerID) == "" {
		return Dog{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id, ownerID)
}

// CheckOwner devuelve ErrNotFound si el perro no existe o no es de ownerID.
func (s *Service) CheckOwner(ctx context.Context, id, ownerID string) error {
	_, err := s.Get(ctx, id, ownerID)
	return err
}

func (s *Service) Update(ctx context.Context, id, ownerID string, p Patch, upload *images.Upload) (Dog, error) {
	current, err := s.Get(ctx, id, ownerID)
	if err != nil {
		return Dog{}, err
	}

	updated := current
	p.applyTo(&updated)
	if err := validate.Struct(updated); err != nil {
		return Dog{}, fromValidator(err)
	}

	if upload != nil {
		ref, err := s.storeImage(ctx, *upload)
		if err != nil {
			return Dog{}, err
		}
		updated.Image = ref
	}
	updated.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, updated); err != nil {
		if upload != nil {
			s.discardImage(ctx, id, updated.Image)
		}
		return Dog{}, err
	}

	if upload != nil {
		s.discardImage(ctx, id, current.Image)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id, ownerID string) error {
	current, err := s.Get(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id, ownerID); err != nil {
		return err
	}
	s.discardImage(ctx, id, current.Image)
	return nil
}

func (s *Service) Count(ctx context.Context, ownerID string) (int, error) {
	return s.repo.CountByOwner(ctx, ownerID)
}

// Image resuelve la imagen guardada: bytes (inline) o URL para redirigir.
func (s *Service) Image(ctx context.Context, id, ownerID string) (images.Resolved, error) {
	d, err := s.Get(ctx, id, ownerID)
	if err != nil {
		return images.Resolved{}, err
	}
	if !d.HasImage() || s.images == nil {
		return images.Resolved{}, images.ErrNoImage
	}
	return s.images.Resolve(ctx, d.Image)
}

func (s *Service) storeImage(ctx context.Context, up images.Upload) (images.Ref, error) {
	if s.images == nil {
		return images.Ref{}, fmt.Errorf("%w: no image store configured", images.ErrUpstream)
	}
	if len(up.Data) == 0 {
		return images.Ref{}, &ValidationError{Field: "image", Msg: "image is empty"}
	}
	ref, err := s.images.Store(ctx, up)
	if err != nil {
		return images.Ref{}, fmt.Errorf("store image: %w", err)
	}
	return ref, nil
}

// discardImage es best-effort: un objeto huérfano se loguea, no falla el request.
func (s *Service) discardImage(ctx context.Context, dogID string, ref images.Ref) {
	if ref.IsZero() || s.images == nil {
		return
	}
	if err := s.images.Delete(ctx, ref); err != nil {
		s.log.Warn("image cleanup failed", map[string]any{
			"dog_id": dogID,
			"url":    ref.URL,
			"error":  err,
		})
	}
}
