package postgres

import (
	"context"
	"database/sql"

	"barkbuddy/internal/domain/locations"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
)

const pgForeignKeyViolation = "23503"

type LocationsRepo struct {
	db *sql.DB
}

func NewLocationsRepo(db *sql.DB) *LocationsRepo {
	return &LocationsRepo{db: db}
}

func (r *LocationsRepo) Create(ctx context.Context, l locations.Location) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO locations (id, dog_id, latitude, longitude, "timestamp", created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, l.ID, l.DogID, l.Latitude, l.Longitude, l.Timestamp, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return locations.ErrDogNotFound
		}
		return errors.Wrap(err, "insert location")
	}
	return nil
}

func (r *LocationsRepo) ListByDog(ctx context.Context, dogID string) ([]locations.Location, error) {
	if !looksLikeUUID(dogID) {
		return []locations.Location{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, dog_id, latitude, longitude, "timestamp", created_at, updated_at
		FROM locations
		WHERE dog_id = $1
		ORDER BY seq ASC
	`, dogID)
	if err != nil {
		return nil, errors.Wrap(err, "list locations")
	}
	defer rows.Close()

	out := make([]locations.Location, 0)
	for rows.Next() {
		var l locations.Location
		if err := rows.Scan(&l.ID, &l.DogID, &l.Latitude, &l.Longitude, &l.Timestamp, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, errors.Wrap(err, "scan location")
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "list locations")
	}
	return out, nil
}
