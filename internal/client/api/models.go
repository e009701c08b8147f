package api

import "time"

// Dog es el perro tal como lo devuelve la API.
type Dog struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Age          int       `json:"age"`
	Gender       string    `json:"gender"`
	Color        string    `json:"color"`
	Nickname     string    `json:"nickname"`
	Owner        string    `json:"owner"`
	Owner2       string    `json:"owner2"`
	Breed        string    `json:"breed"`
	Size         string    `json:"size"`
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

// DogInput son los campos del formulario. nil = no enviar (en update no cambia).
// Se codifica con go-querystring: los bool viajan como "true"/"false", igual que FormData.
type DogInput struct {
	Name         *string  `url:"name,omitempty"`
	Age          *int     `url:"age,omitempty"`
	Gender       *string  `url:"gender,omitempty"`
	Color        *string  `url:"color,omitempty"`
	Nickname     *string  `url:"nickname,omitempty"`
	Owner        *string  `url:"owner,omitempty"`
	Owner2       *string  `url:"owner2,omitempty"`
	Breed        *string  `url:"breed,omitempty"`
	Size         *string  `url:"size,omitempty"`
	IsFriendly   *bool    `url:"isFriendly,omitempty"`
	IsFavorite   *bool    `url:"isFavorite,omitempty"`
	Neighborhood *string  `url:"neighborhood,omitempty"`
	IsOwner      *bool    `url:"isOwner,omitempty"`
	Notes        *string  `url:"notes,omitempty"`
	Latitude     *float64 `url:"latitude,omitempty"`
	Longitude    *float64 `url:"longitude,omitempty"`
}

// Image es una foto a subir junto al formulario.
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

type Location struct {
	ID        string    `json:"id"`
	DogID     string    `json:"dog_id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Trail struct {
	Polyline string    `json:"polyline"`
	Points   int       `json:"points"`
	First    *Location `json:"first"`
	Last     *Location `json:"last"`
}

// Breed es una fila del CSV de razas (columna => valor).
type Breed map[string]string
