package postgres

import (
	"context"
	"database/sql"
	_ "embed"

	"github.com/pkg/errors"
)

//go:embed schema.sql
var schemaSQL string

// Migrate aplica el schema (idempotente: CREATE ... IF NOT EXISTS).
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return errors.Wrap(err, "apply schema")
	}
	return nil
}
