package dogs

import "context"

// Repository: toda lectura/mutación filtra por id + ownerID.
// Un perro ajeno se comporta igual que uno inexistente (ErrNotFound).
type Repository interface {
	Create(ctx context.Context, d Dog) error
	GetByID(ctx context.Context, id, ownerID string) (Dog, error)
	ListByOwner(ctx context.Context, ownerID string, filter ListFilter) ([]Dog, error)
	Update(ctx context.Context, d Dog) error
	// Delete borra el perro y sus avistamientos.
	Delete(ctx context.Context, id, ownerID string) error
	CountByOwner(ctx context.Context, ownerID string) (int, error)
}

type ListFilter struct {
	OnlyOwned bool // isOwner = true
}
