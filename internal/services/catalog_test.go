package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"timemirror.dev/internal/models"
	"timemirror.dev/internal/services"
)

func date(value string) *time.Time {
	parsed, _ := time.Parse(models.LedgerDateFormat, value)
	return &parsed
}

//nolint:exhaustruct //other fields are optional
func testRows() []models.CatalogRow {
	return []models.CatalogRow{
		{
			Code:       "ACME-DEV",
			Client:     "Acme",
			Project:    "Website",
			Task:       "Development",
			ValidFrom:  date("2026-01-01"),
			ValidUntil: date("2026-12-31"),
		},
		{
			Code:       "ACME-REV",
			Client:     "Acme",
			Project:    "Website",
			Task:       "Review",
			ValidFrom:  date("2026-01-01"),
			ValidUntil: date("2026-03-31"),
		},
		{
			Code:       "ACME-OPS",
			Client:     "Acme",
			Project:    "Hosting",
			Task:       "Operations",
			ValidFrom:  date("2026-01-01"),
			ValidUntil: date("2026-12-31"),
		},
		{
			Code:       "GLOBEX-CON",
			Client:     "Globex",
			Project:    "Migration",
			Task:       "Consulting",
			ValidFrom:  date("2025-01-01"),
			ValidUntil: date("2025-12-31"),
		},
	}
}

func TestBuildTree(t *testing.T) {
	tree := services.BuildTree(testRows())

	require.Len(t, tree.Clients, 2)
	assert.Equal(t, "Acme", tree.Clients[0].Name)
	assert.Equal(t, "Globex", tree.Clients[1].Name)

	require.Len(t, tree.Clients[0].Projects, 2)
	assert.Equal(t, "Website", tree.Clients[0].Projects[0].Name)
	assert.Equal(t, "Hosting", tree.Clients[0].Projects[1].Name)

	website := tree.Clients[0].Projects[0]
	require.Len(t, website.Tasks, 2)
	assert.Equal(t, "Development", website.Tasks[0].Task)
	assert.Equal(t, "Review", website.Tasks[1].Task)
}

func TestBuildTreeEmpty(t *testing.T) {
	tree := services.BuildTree([]models.CatalogRow{})
	assert.Empty(t, tree.Clients)
}

func TestActiveTree(t *testing.T) {
	tree := services.ActiveTree(testRows(), *date("2026-06-15"))

	require.Len(t, tree.Clients, 1)
	assert.Equal(t, "Acme", tree.Clients[0].Name)

	website := tree.Clients[0].Projects[0]
	require.Len(t, website.Tasks, 1)
	assert.Equal(t, "Development", website.Tasks[0].Task)
}

func TestClientsAndProjects(t *testing.T) {
	// no validity filter: expired rows still contribute their names
	assert.Equal(
		t,
		[]string{"Acme", "Globex"},
		services.Clients(testRows()),
	)
	assert.Equal(
		t,
		[]string{"Website", "Hosting", "Migration"},
		services.Projects(testRows()),
	)
}

func TestActiveClients(t *testing.T) {
	assert.Equal(
		t,
		[]string{"Acme"},
		services.ActiveClients(testRows(), *date("2026-06-15")),
	)
	assert.Equal(
		t,
		[]string{"Globex"},
		services.ActiveClients(testRows(), *date("2025-06-15")),
	)
	assert.Empty(t, services.ActiveClients(testRows(), *date("2024-06-15")))
}

func TestActiveProjects(t *testing.T) {
	assert.Equal(
		t,
		[]string{"Website", "Hosting"},
		services.ActiveProjects(testRows(), *date("2026-02-15")),
	)
}

func TestSnapshotRows(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	rows := testRows()
	rows[0].Categories = "backend, api"

	snapshot, rowErrors := services.SnapshotRows(rows, now)

	require.Empty(t, rowErrors)
	require.Len(t, snapshot, 4)
	assert.Equal(t, now, snapshot[0].RecordedAt)
	assert.Equal(t, "ACME-DEV", snapshot[0].Code)
	assert.Equal(t, []string{"backend", "api"}, snapshot[0].Categories)
	assert.Equal(t, []string{}, snapshot[1].Categories)
}

func TestSnapshotRowsSkipsInvalid(t *testing.T) {
	rows := testRows()
	rows[1].Client = ""
	rows[2].ValidFrom = nil

	snapshot, rowErrors := services.SnapshotRows(rows, time.Now().UTC())

	assert.Len(t, snapshot, 2)
	require.Len(t, rowErrors, 2)
	assert.Equal(t, 1, rowErrors[0].Index)
	assert.Equal(t, "client", rowErrors[0].Field)
	assert.Equal(t, 2, rowErrors[1].Index)
	assert.Equal(t, "validFrom", rowErrors[1].Field)
}
