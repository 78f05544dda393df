package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/xdoubleu/essentia/v2/pkg/database/postgres"
)

// SettingsRepository is the installation-scoped key-value store backing the
// sync token, the initialized flag and the external identifiers.
type SettingsRepository struct {
	db DB
}

// Get returns nil without error when the key is absent.
func (repo *SettingsRepository) Get(
	ctx context.Context,
	key string,
) (*string, error) {
	query := `
		SELECT value
		FROM timemirror.settings
		WHERE key = $1
	`

	var value string
	err := repo.db.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, postgres.PgxErrorToHTTPError(err)
	}

	return &value, nil
}

func (repo *SettingsRepository) Set(
	ctx context.Context,
	key string,
	value string,
) error {
	query := `
		INSERT INTO timemirror.settings (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key)
		DO UPDATE SET value = $2
	`

	_, err := repo.db.Exec(ctx, query, key, value)
	if err != nil {
		return postgres.PgxErrorToHTTPError(err)
	}

	return nil
}

func (repo *SettingsRepository) Delete(ctx context.Context, key string) error {
	query := `
		DELETE FROM timemirror.settings
		WHERE key = $1
	`

	_, err := repo.db.Exec(ctx, query, key)
	if err != nil {
		return postgres.PgxErrorToHTTPError(err)
	}

	return nil
}
