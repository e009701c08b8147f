package memory

import (
	"sync"

	"barkbuddy/internal/domain/dogs"
	"barkbuddy/internal/domain/locations"
)

// DB es el estado compartido de los repos in-memory.
// Un solo mutex para que borrar un perro arrastre sus avistamientos (como el FK en Postgres).
type DB struct {
	mu        sync.RWMutex
	dogs      map[string]dogs.Dog
	locations map[string][]locations.Location // dogID => en orden de inserción
}

func NewDB() *DB {
	return &DB{
		dogs:      make(map[string]dogs.Dog),
		locations: make(map[string][]locations.Location),
	}
}
