package locations

import (
	"context"
	"errors"
	"strings"
	"time"

	"barkbuddy/internal/platform/validate"

	"github.com/google/uuid"
	"github.com/twpayne/go-polyline"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrDogNotFound  = errors.New("dog not found")
)

// InputError lleva el mensaje de validación; errors.Is(err, ErrInvalidInput) == true.
type InputError struct {
	Msg string
}

func (e *InputError) Error() string { return e.Msg }
func (e *InputError) Unwrap() error { return ErrInvalidInput }

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type AddInput struct {
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
}

func (s *Service) Add(ctx context.Context, dogID string, in AddInput) (Location, error) {
	dogID = strings.TrimSpace(dogID)
	if dogID == "" {
		return Location{}, ErrDogNotFound
	}
	if err := validate.Struct(in); err != nil {
		return Location{}, &InputError{Msg: validate.Message(err)}
	}

	// el timestamp es siempre el momento del alta
	now := s.now()

	l := Location{
		ID:        uuid.NewString(),
		DogID:     dogID,
		Latitude:  *in.Latitude,
		Longitude: *in.Longitude,
		Timestamp: now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, l); err != nil {
		return Location{}, err
	}
	return l, nil
}

// Record implementa dogs.SightingRecorder (avistamiento inicial al crear un perro).
func (s *Service) Record(ctx context.Context, dogID string, latitude, longitude float64) error {
	_, err := s.Add(ctx, dogID, AddInput{Latitude: &latitude, Longitude: &longitude})
	return err
}

func (s *Service) ListForDog(ctx context.Context, dogID string) ([]Location, error) {
	return s.repo.ListByDog(ctx, dogID)
}

func (s *Service) Trail(ctx context.Context, dogID string) (Trail, error) {
	items, err := s.repo.ListByDog(ctx, dogID)
	if err != nil {
		return Trail{}, err
	}
	if len(items) == 0 {
		return Trail{}, nil
	}

	coords := make([][]float64, 0, len(items))
	for _, l := range items {
		coords = append(coords, []float64{l.Latitude, l.Longitude})
	}

	first, last := items[0], items[len(items)-1]
	return Trail{
		Polyline: string(polyline.EncodeCoords(coords)),
		Points:   len(items),
		First:    &first,
		Last:     &last,
	}, nil
}
