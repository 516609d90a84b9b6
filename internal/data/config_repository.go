package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SQLConfigRepository provides access to the single application config row.
type SQLConfigRepository struct {
	db *sqlx.DB
}

// NewSQLConfigRepository creates a new SQLConfigRepository.
func NewSQLConfigRepository(db *sqlx.DB) *SQLConfigRepository {
	return &SQLConfigRepository{db: db}
}

// GetAppName retrieves the configured application name.
func (r *SQLConfigRepository) GetAppName(ctx context.Context) (string, error) {
	var cfg AppConfig
	if err := r.db.GetContext(ctx, &cfg, `SELECT app_name FROM config WHERE id = 1`); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to get app config: %w", err)
	}
	return cfg.AppName, nil
}

// SetAppName updates the application name on the singleton config row.
func (r *SQLConfigRepository) SetAppName(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE config SET app_name = ? WHERE id = 1`, name)
	if err != nil {
		return fmt.Errorf("failed to update app config: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
