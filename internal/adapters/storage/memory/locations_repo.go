package memory

import (
	"context"
	"errors"
	"strings"

	"barkbuddy/internal/domain/locations"
)

type locationRepo struct {
	db *DB
}

func NewLocationRepo(db *DB) locations.Repository {
	return &locationRepo{db: db}
}

func (r *locationRepo) Create(ctx context.Context, l locations.Location) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if strings.TrimSpace(l.ID) == "" {
		return errors.New("location id required")
	}
	if _, ok := r.db.dogs[l.DogID]; !ok {
		return locations.ErrDogNotFound
	}
	r.db.locations[l.DogID] = append(r.db.locations[l.DogID], l)
	return nil
}

func (r *locationRepo) ListByDog(ctx context.Context, dogID string) ([]locations.Location, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	src := r.db.locations[dogID]
	out := make([]locations.Location, len(src))
	copy(out, src) // append-only: el orden del slice es el de creación
	return out, nil
}
