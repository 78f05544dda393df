package models_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"timemirror.dev/internal/models"
)

func TestConfigError(t *testing.T) {
	err := models.ConfigError{Key: "calendar_id"}

	assert.True(t, errors.Is(err, models.ErrMissingConfig))
	assert.Contains(t, err.Error(), "calendar_id")
}

func TestFetchErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := models.FetchError{Source: "ledger", Err: cause}

	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "ledger")
}

func TestRowErrorMessages(t *testing.T) {
	withField := models.RowError{Index: 2, Field: "eventId", Reason: "must be provided"}
	assert.Equal(t, `row 2: field "eventId" must be provided`, withField.Error())

	withoutField := models.RowError{Index: 2, Field: "", Reason: "duplicate key"}
	assert.Equal(t, "row 2: duplicate key", withoutField.Error())
}

func TestInsertResultOk(t *testing.T) {
	clean := models.InsertResult{Inserted: 3, RowErrors: []models.RowError{}}
	assert.True(t, clean.Ok())

	dirty := models.InsertResult{
		Inserted:  2,
		RowErrors: []models.RowError{{Index: 0, Field: "", Reason: "rejected"}},
	}
	assert.False(t, dirty.Ok())
}
