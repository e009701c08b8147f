package postgres

import (
	"context"
	"database/sql"
	"strings"

	"barkbuddy/internal/domain/dogs"
	"barkbuddy/internal/ports/images"

	"github.com/pkg/errors"
)

type DogsRepo struct {
	db *sql.DB
}

func NewDogsRepo(db *sql.DB) *DogsRepo {
	return &DogsRepo{db: db}
}

const dogColumns = `
	id, user_id,
	name, age, gender, color, nickname,
	owner, owner2, breed, size,
	is_friendly, is_favorite, neighborhood, is_owner, notes,
	image_url, image_data, image_content_type,
	created_at, updated_at
`

func (r *DogsRepo) Create(ctx context.Context, d dogs.Dog) error {
	url, data, ct := imageColumns(d.Image)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO dogs (`+dogColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
	`,
		d.ID, d.UserID,
		d.Name, d.Age, d.Gender, d.Color, d.Nickname,
		d.Owner, d.Owner2, d.Breed, string(d.Size),
		d.IsFriendly, d.IsFavorite, d.Neighborhood, d.IsOwner, d.Notes,
		url, data, ct,
		d.CreatedAt, d.UpdatedAt,
	)
	return errors.Wrap(err, "insert dog")
}

func (r *DogsRepo) GetByID(ctx context.Context, id, ownerID string) (dogs.Dog, error) {
	id = strings.TrimSpace(id)
	if id == "" || !looksLikeUUID(id) {
		return dogs.Dog{}, dogs.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+dogColumns+`
		FROM dogs
		WHERE id = $1 AND user_id = $2
	`, id, ownerID)

	d, err := scanDog(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dogs.Dog{}, dogs.ErrNotFound
		}
		return dogs.Dog{}, errors.Wrap(err, "get dog")
	}
	return d, nil
}

func (r *DogsRepo) ListByOwner(ctx context.Context, ownerID string, filter dogs.ListFilter) ([]dogs.Dog, error) {
	q := `
		SELECT ` + dogColumns + `
		FROM dogs
		WHERE user_id = $1
	`
	if filter.OnlyOwned {
		q += ` AND is_owner = TRUE`
	}
	q += ` ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "list dogs")
	}
	defer rows.Close()

	out := make([]dogs.Dog, 0)
	for rows.Next() {
		d, err := scanDog(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan dog")
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "list dogs")
	}
	return out, nil
}

func (r *DogsRepo) Update(ctx context.Context, d dogs.Dog) error {
	url, data, ct := imageColumns(d.Image)
	res, err := r.db.ExecContext(ctx, `
		UPDATE dogs SET
			name = $3, age = $4, gender = $5, color = $6, nickname = $7,
			owner = $8, owner2 = $9, breed = $10, size = $11,
			is_friendly = $12, is_favorite = $13, neighborhood = $14, is_owner = $15, notes = $16,
			image_url = $17, image_data = $18, image_content_type = $19,
			updated_at = $20
		WHERE id = $1 AND user_id = $2
	`,
		d.ID, d.UserID,
		d.Name, d.Age, d.Gender, d.Color, d.Nickname,
		d.Owner, d.Owner2, d.Breed, string(d.Size),
		d.IsFriendly, d.IsFavorite, d.Neighborhood, d.IsOwner, d.Notes,
		url, data, ct,
		d.UpdatedAt,
	)
	if err != nil {
		return errors.Wrap(err, "update dog")
	}
	return expectOneRow(res)
}

// Delete: locations se borran por ON DELETE CASCADE.
func (r *DogsRepo) Delete(ctx context.Context, id, ownerID string) error {
	if !looksLikeUUID(id) {
		return dogs.ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM dogs WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return errors.Wrap(err, "delete dog")
	}
	return expectOneRow(res)
}

func (r *DogsRepo) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM dogs WHERE user_id = $1`, ownerID).Scan(&n); err != nil {
		return 0, errors.Wrap(err, "count dogs")
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDog(s scanner) (dogs.Dog, error) {
	var (
		d    dogs.Dog
		size string
		url  sql.NullString
		data []byte
		ct   sql.NullString
	)
	if err := s.Scan(
		&d.ID, &d.UserID,
		&d.Name, &d.Age, &d.Gender, &d.Color, &d.Nickname,
		&d.Owner, &d.Owner2, &d.Breed, &size,
		&d.IsFriendly, &d.IsFavorite, &d.Neighborhood, &d.IsOwner, &d.Notes,
		&url, &data, &ct,
		&d.CreatedAt, &d.UpdatedAt,
	); err != nil {
		return dogs.Dog{}, err
	}
	d.Size = dogs.Size(size)
	d.Image = images.Ref{URL: url.String, Data: data, ContentType: ct.String}
	return d, nil
}

func imageColumns(ref images.Ref) (url sql.NullString, data []byte, ct sql.NullString) {
	if ref.URL != "" {
		url = sql.NullString{String: ref.URL, Valid: true}
	}
	if len(ref.Data) > 0 {
		data = ref.Data
	}
	if ref.ContentType != "" && !ref.IsZero() {
		ct = sql.NullString{String: ref.ContentType, Valid: true}
	}
	return url, data, ct
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if n == 0 {
		return dogs.ErrNotFound
	}
	return nil
}

// looksLikeUUID evita que un id mal formado llegue a Postgres como error de cast (=> 500).
func looksLikeUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	for i, c := range s {
		switch i {
		case 8, 13, 18, 23:
			if c != '-' {
				return false
			}
		default:
			if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F') {
				return false
			}
		}
	}
	return true
}
