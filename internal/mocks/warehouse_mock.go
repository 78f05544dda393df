//nolint:revive //ignore
package mocks

import (
	"context"

	"timemirror.dev/internal/models"
)

// MockWarehouseSink records appended rows in memory. It applies the same
// mandatory-field validation as the real sink so partial-failure behavior
// can be exercised without a database.
type MockWarehouseSink struct {
	Events      []models.EventRecord
	CatalogRows []models.CatalogSnapshotRow
	Err         error
}

func NewMockWarehouseSink() *MockWarehouseSink {
	return &MockWarehouseSink{
		Events:      []models.EventRecord{},
		CatalogRows: []models.CatalogSnapshotRow{},
		Err:         nil,
	}
}

func (sink *MockWarehouseSink) InsertEvents(
	_ context.Context,
	records []models.EventRecord,
) (*models.InsertResult, error) {
	if sink.Err != nil {
		return nil, sink.Err
	}

	result := models.InsertResult{
		Inserted:  0,
		RowErrors: []models.RowError{},
	}

	for i, record := range records {
		if errs := record.Validate(i); len(errs) > 0 {
			result.RowErrors = append(result.RowErrors, errs...)
			continue
		}

		sink.Events = append(sink.Events, record)
		result.Inserted++
	}

	return &result, nil
}

func (sink *MockWarehouseSink) InsertCatalogRows(
	_ context.Context,
	rows []models.CatalogSnapshotRow,
) (*models.InsertResult, error) {
	if sink.Err != nil {
		return nil, sink.Err
	}

	result := models.InsertResult{
		Inserted:  0,
		RowErrors: []models.RowError{},
	}

	for i, row := range rows {
		if errs := row.Validate(i); len(errs) > 0 {
			result.RowErrors = append(result.RowErrors, errs...)
			continue
		}

		sink.CatalogRows = append(sink.CatalogRows, row)
		result.Inserted++
	}

	return &result, nil
}
