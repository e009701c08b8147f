package dogs

import (
	"time"

	"barkbuddy/internal/ports/images"
)

// Size define el tamaño del perro.
// @Enum xsmall, small, medium, large, xlarge
type Size string

const (
	SizeXSmall Size = "xsmall"
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
	SizeXLarge Size = "xlarge"
)

// Unknown es el valor por defecto de gender/color/owner/breed cuando no vienen.
const Unknown = "Unknown"

// Dog es un perro catalogado por un usuario. Siempre pertenece a un solo UserID.
type Dog struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`

	Name     string `json:"name" validate:"required,max=120"`
	Age      int    `json:"age" validate:"min=0"`
	Gender   string `json:"gender" validate:"max=60"`
	Color    string `json:"color" validate:"max=60"`
	Nickname string `json:"nickname" validate:"max=120"`
	Owner    string `json:"owner" validate:"max=120"`
	Owner2   string `json:"owner2" validate:"max=120"`
	Breed    string `json:"breed" validate:"max=120"`
	Size     Size   `json:"size" validate:"omitempty,oneof=xsmall small medium large xlarge"`

	IsFriendly bool `json:"isFriendly"`
	IsFavorite bool `json:"isFavorite"`
	IsOwner    bool `json:"isOwner"`

	Neighborhood string `json:"neighborhood" validate:"max=120"`
	Notes        string `json:"notes" validate:"max=4000"`

	// Image: URL externa o bytes inline, según el images.Store del deployment.
	Image images.Ref `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (d Dog) HasImage() bool { return !d.Image.IsZero() }

// Coords de un avistamiento inicial.
type Coords struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}
