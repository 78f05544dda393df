package dtos_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"timemirror.dev/internal/dtos"
)

func TestCatalogQueryDtoValidate(t *testing.T) {
	valid := []dtos.CatalogQueryDto{
		{AsOf: "", Scope: ""},
		{AsOf: "2026-03-10", Scope: "active"},
		{AsOf: "2026-03-10", Scope: "all"},
	}

	for _, dto := range valid {
		ok, errs := dto.Validate()
		assert.True(t, ok)
		assert.Empty(t, errs)
	}

	badDate := dtos.CatalogQueryDto{AsOf: "10/03/2026", Scope: ""}
	ok, errs := badDate.Validate()
	assert.False(t, ok)
	assert.Contains(t, errs, "asOf")

	badScope := dtos.CatalogQueryDto{AsOf: "", Scope: "everything"}
	ok, errs = badScope.Validate()
	assert.False(t, ok)
	assert.Contains(t, errs, "scope")
}

func TestCatalogQueryDtoAsOfTime(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	empty := dtos.CatalogQueryDto{AsOf: "", Scope: ""}
	assert.Equal(t, now, empty.AsOfTime(now))

	dated := dtos.CatalogQueryDto{AsOf: "2026-01-15", Scope: ""}
	assert.Equal(
		t,
		time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		dated.AsOfTime(now),
	)
}

func TestCatalogQueryDtoAll(t *testing.T) {
	all := dtos.CatalogQueryDto{AsOf: "", Scope: "all"}
	assert.True(t, all.All())

	active := dtos.CatalogQueryDto{AsOf: "", Scope: "active"}
	assert.False(t, active.All())
}
