package dogs

import (
	"strconv"
	"strings"
)

// Patch son los campos presentes en un request. nil = no vino.
// Lo usan create (sobre los defaults) y update (sobre el perro actual).
type Patch struct {
	Name         *string
	Age          *int
	Gender       *string
	Color        *string
	Nickname     *string
	Owner        *string
	Owner2       *string
	Breed        *string
	Size         *Size
	IsFriendly   *bool
	IsFavorite   *bool
	IsOwner      *bool
	Neighborhood *string
	Notes        *string
}

// ParseFields convierte los campos crudos (form o JSON ya pasado a string) en un Patch.
// String vacío = no enviado. Keys desconocidas se ignoran.
func ParseFields(raw map[string]string) (Patch, error) {
	var p Patch

	str := func(key string) *string {
		v, ok := raw[key]
		if !ok {
			return nil
		}
		v = strings.TrimSpace(v)
		if v == "" {
			return nil
		}
		return &v
	}

	p.Name = str("name")
	p.Gender = str("gender")
	p.Color = str("color")
	p.Nickname = str("nickname")
	p.Owner = str("owner")
	p.Owner2 = str("owner2")
	p.Breed = str("breed")
	p.Neighborhood = str("neighborhood")
	p.Notes = str("notes")

	if v := str("age"); v != nil {
		n, err := strconv.Atoi(*v)
		if err != nil || n < 0 {
			return Patch{}, &ValidationError{Field: "age", Msg: "age must be a non-negative integer"}
		}
		p.Age = &n
	}

	if v := str("size"); v != nil {
		s := Size(strings.ToLower(*v))
		p.Size = &s
	}

	for _, f := range []struct {
		key string
		dst **bool
	}{
		{"isFriendly", &p.IsFriendly},
		{"isFavorite", &p.IsFavorite},
		{"isOwner", &p.IsOwner},
	} {
		key, dst := f.key, f.dst
		v := str(key)
		if v == nil {
			continue
		}
		b, ok := parseBool(*v)
		if !ok {
			return Patch{}, &ValidationError{Field: key, Msg: key + " must be a boolean"}
		}
		*dst = &b
	}

	return p, nil
}

// ParseSighting lee latitude/longitude del form. Solo si vienen ambos hay avistamiento inicial.
func ParseSighting(raw map[string]string) (*Coords, error) {
	lat := strings.TrimSpace(raw["latitude"])
	lon := strings.TrimSpace(raw["longitude"])
	if lat == "" || lon == "" {
		return nil, nil
	}
	la, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return nil, &ValidationError{Field: "latitude", Msg: "latitude must be a number"}
	}
	lo, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return nil, &ValidationError{Field: "longitude", Msg: "longitude must be a number"}
	}
	return &Coords{Latitude: la, Longitude: lo}, nil
}

func parseBool(v string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "on":
		return true, true
	case "false", "0", "off":
		return false, true
	default:
		return false, false
	}
}

func (p Patch) applyTo(d *Dog) {
	setStr := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	setBool := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}

	setStr(&d.Name, p.Name)
	setStr(&d.Gender, p.Gender)
	setStr(&d.Color, p.Color)
	setStr(&d.Nickname, p.Nickname)
	setStr(&d.Owner, p.Owner)
	setStr(&d.Owner2, p.Owner2)
	setStr(&d.Breed, p.Breed)
	setStr(&d.Neighborhood, p.Neighborhood)
	setStr(&d.Notes, p.Notes)
	if p.Age != nil {
		d.Age = *p.Age
	}
	if p.Size != nil {
		d.Size = *p.Size
	}
	setBool(&d.IsFriendly, p.IsFriendly)
	setBool(&d.IsFavorite, p.IsFavorite)
	setBool(&d.IsOwner, p.IsOwner)
}
