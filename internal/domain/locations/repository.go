package locations

import "context"

type Repository interface {
	// Create devuelve ErrDogNotFound si el perro ya no existe.
	Create(ctx context.Context, l Location) error
	// ListByDog devuelve en orden de creación, el más antiguo primero.
	ListByDog(ctx context.Context, dogID string) ([]Location, error)
}
