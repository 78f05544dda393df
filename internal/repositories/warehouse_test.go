package repositories_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"timemirror.dev/internal/mocks"
	"timemirror.dev/internal/models"
	"timemirror.dev/internal/repositories"
)

//nolint:exhaustruct //other fields are optional
func eventRecord(id string) models.EventRecord {
	return models.EventRecord{
		LoadedAt:   time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
		EventID:    id,
		Categories: []string{},
	}
}

func TestInsertEventsRejectedRowKeepsSiblings(t *testing.T) {
	db := mocks.NewMockDB()
	db.ExecErrs[2] = errors.New("value too long")

	repos := repositories.New(db)

	records := []models.EventRecord{
		eventRecord("evt-1"),
		eventRecord("evt-2"),
		eventRecord("evt-3"),
		eventRecord("evt-4"),
		eventRecord("evt-5"),
	}

	result, err := repos.Warehouse.InsertEvents(context.Background(), records)

	require.NoError(t, err)
	assert.Equal(t, 4, result.Inserted)
	require.Len(t, result.RowErrors, 1)
	assert.Equal(t, 2, result.RowErrors[0].Index)

	// every row went out as its own statement, so the rejected row could
	// not drag its siblings down with it
	require.Len(t, db.ExecCalls, 5)
	assert.Equal(t, "evt-4", db.ExecCalls[3][1])
	assert.Equal(t, "evt-5", db.ExecCalls[4][1])
}

func TestInsertEventsInvalidRowNeverReachesDB(t *testing.T) {
	db := mocks.NewMockDB()
	repos := repositories.New(db)

	records := []models.EventRecord{
		eventRecord("evt-1"),
		eventRecord(""),
		eventRecord("evt-3"),
	}

	result, err := repos.Warehouse.InsertEvents(context.Background(), records)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Inserted)
	require.Len(t, result.RowErrors, 1)
	assert.Equal(t, 1, result.RowErrors[0].Index)
	assert.Equal(t, "eventId", result.RowErrors[0].Field)

	require.Len(t, db.ExecCalls, 2)
	assert.Equal(t, "evt-1", db.ExecCalls[0][1])
	assert.Equal(t, "evt-3", db.ExecCalls[1][1])
}

//nolint:exhaustruct //other fields are optional
func snapshotRow(code string) models.CatalogSnapshotRow {
	validFrom := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	validUntil := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	return models.CatalogSnapshotRow{
		RecordedAt: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		ModifiedAt: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		Code:       code,
		Client:     "Acme",
		Project:    "Website",
		Task:       "Development",
		ValidFrom:  &validFrom,
		ValidUntil: &validUntil,
		Categories: []string{},
	}
}

func TestInsertCatalogRowsRejectedRowKeepsSiblings(t *testing.T) {
	db := mocks.NewMockDB()
	db.ExecErrs[0] = errors.New("value too long")

	repos := repositories.New(db)

	rows := []models.CatalogSnapshotRow{
		snapshotRow("ACME-DEV"),
		snapshotRow("ACME-OPS"),
	}

	result, err := repos.Warehouse.InsertCatalogRows(context.Background(), rows)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Inserted)
	require.Len(t, result.RowErrors, 1)
	assert.Equal(t, 0, result.RowErrors[0].Index)

	require.Len(t, db.ExecCalls, 2)
	assert.Equal(t, "ACME-OPS", db.ExecCalls[1][2])
}
