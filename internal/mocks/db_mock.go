//nolint:exhaustruct,revive //ignore
package mocks

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// MockDB scripts the statement-level behavior of the connection pool. Each
// Exec is recorded with its arguments; ExecErrs fails the call at the given
// zero-based call index, leaving earlier and later calls untouched.
type MockDB struct {
	ExecCalls [][]any
	ExecErrs  map[int]error

	RowValue *string
	RowErr   error
}

func NewMockDB() *MockDB {
	return &MockDB{
		ExecCalls: [][]any{},
		ExecErrs:  map[int]error{},
	}
}

func (db *MockDB) Exec(
	_ context.Context,
	_ string,
	args ...any,
) (pgconn.CommandTag, error) {
	call := len(db.ExecCalls)
	db.ExecCalls = append(db.ExecCalls, args)

	if err, ok := db.ExecErrs[call]; ok {
		return pgconn.CommandTag{}, err
	}

	return pgconn.CommandTag{}, nil
}

func (db *MockDB) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row {
	return mockRow{value: db.RowValue, err: db.RowErr}
}

type mockRow struct {
	value *string
	err   error
}

func (row mockRow) Scan(dest ...any) error {
	if row.err != nil {
		return row.err
	}

	if row.value == nil {
		return pgx.ErrNoRows
	}

	if ptr, ok := dest[0].(*string); ok {
		*ptr = *row.value
	}

	return nil
}
