package locations

import "time"

// Location es un avistamiento de un perro. No se modifica nunca;
// se borra solo en cascada con el perro.
type Location struct {
	ID        string
	DogID     string
	Latitude  float64
	Longitude float64
	Timestamp time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Trail es el recorrido de avistamientos de un perro, en orden de creación.
type Trail struct {
	Polyline string    // Google encoded polyline (lat,lng)
	Points   int
	First    *Location // "first met"
	Last     *Location
}
