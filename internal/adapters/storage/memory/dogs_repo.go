package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"barkbuddy/internal/domain/dogs"
)

type dogRepo struct {
	db *DB
}

func NewDogRepo(db *DB) dogs.Repository {
	return &dogRepo{db: db}
}

func (r *dogRepo) Create(ctx context.Context, d dogs.Dog) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if strings.TrimSpace(d.ID) == "" {
		return errors.New("dog id required")
	}
	if _, exists := r.db.dogs[d.ID]; exists {
		return errors.New("dog already exists")
	}
	r.db.dogs[d.ID] = d
	return nil
}

func (r *dogRepo) GetByID(ctx context.Context, id, ownerID string) (dogs.Dog, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	d, ok := r.db.dogs[id]
	if !ok || d.UserID != ownerID {
		return dogs.Dog{}, dogs.ErrNotFound
	}
	return d, nil
}

func (r *dogRepo) ListByOwner(ctx context.Context, ownerID string, filter dogs.ListFilter) ([]dogs.Dog, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]dogs.Dog, 0)
	for _, d := range r.db.dogs {
		if d.UserID != ownerID {
			continue
		}
		if filter.OnlyOwned && !d.IsOwner {
			continue
		}
		out = append(out, d)
	}

	// created_at asc, id como desempate (map no tiene orden)
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (r *dogRepo) Update(ctx context.Context, d dogs.Dog) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	cur, ok := r.db.dogs[d.ID]
	if !ok || cur.UserID != d.UserID {
		return dogs.ErrNotFound
	}
	// id, user_id y created_at son inmutables
	d.CreatedAt = cur.CreatedAt
	r.db.dogs[d.ID] = d
	return nil
}

func (r *dogRepo) Delete(ctx context.Context, id, ownerID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	d, ok := r.db.dogs[id]
	if !ok || d.UserID != ownerID {
		return dogs.ErrNotFound
	}
	delete(r.db.dogs, id)
	delete(r.db.locations, id) // cascade
	return nil
}

func (r *dogRepo) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	n := 0
	for _, d := range r.db.dogs {
		if d.UserID == ownerID {
			n++
		}
	}
	return n, nil
}
