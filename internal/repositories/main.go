package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the slice of the connection pool the repositories use. Satisfied by
// essentia's postgres.DB; tests substitute a scripted double.
type DB interface {
	Exec(
		ctx context.Context,
		sql string,
		args ...any,
	) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repositories struct {
	Warehouse *WarehouseRepository
	Settings  *SettingsRepository
}

func New(db DB) *Repositories {
	warehouse := &WarehouseRepository{db: db}
	settings := &SettingsRepository{db: db}

	return &Repositories{
		Warehouse: warehouse,
		Settings:  settings,
	}
}
