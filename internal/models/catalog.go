package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/sgreben/piecewiselinear"
)

const LedgerDateFormat = "2006-01-02"

const ledgerColumns = 13

// CatalogRow is one line of the authoritative ledger: a task definition
// with its client/project placement and validity window.
type CatalogRow struct {
	Code          string     `json:"code"`
	Client        string     `json:"client"`
	Project       string     `json:"project"`
	Task          string     `json:"task"`
	Default       bool       `json:"default"`
	ValidFrom     *time.Time `json:"validFrom"`
	ValidUntil    *time.Time `json:"validUntil"`
	Rate          *float64   `json:"rate"`
	Description   string     `json:"description"`
	Comments      string     `json:"comments"`
	BudgetedHours *float64   `json:"budgetedHours"`
	CompanySize   string     `json:"companySize"`
	Categories    string     `json:"categories"`
}

// CatalogRowFromCells decodes one ledger line. Column order is fixed:
// code, client, project, task, default, start, end, rate, description,
// comments, budgeted hours, company size, categories. Short rows are
// padded with empty cells.
func CatalogRowFromCells(cells []string) CatalogRow {
	if len(cells) < ledgerColumns {
		padded := make([]string, ledgerColumns)
		copy(padded, cells)
		cells = padded
	}

	return CatalogRow{
		Code:          strings.TrimSpace(cells[0]),
		Client:        strings.TrimSpace(cells[1]),
		Project:       strings.TrimSpace(cells[2]),
		Task:          strings.TrimSpace(cells[3]),
		Default:       parseLedgerBool(cells[4]),
		ValidFrom:     parseLedgerDate(cells[5]),
		ValidUntil:    parseLedgerDate(cells[6]),
		Rate:          parseRate(strings.TrimSpace(cells[7])),
		Description:   strings.TrimSpace(cells[8]),
		Comments:      strings.TrimSpace(cells[9]),
		BudgetedHours: parseRate(strings.TrimSpace(cells[10])),
		CompanySize:   strings.TrimSpace(cells[11]),
		Categories:    strings.TrimSpace(cells[12]),
	}
}

func parseLedgerBool(raw string) bool {
	value, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(raw)))
	if err != nil {
		return false
	}

	return value
}

func parseLedgerDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	date, err := time.Parse(LedgerDateFormat, raw)
	if err != nil {
		return nil
	}

	return &date
}

// ActiveAt reports whether the row's validity window contains asOf. The
// bounds carry date precision, so asOf is truncated to its UTC date first
// and a row stays active through the whole of its ValidUntil day. An
// absent bound collapses to asOf itself, so an unbounded side means
// "active only today" rather than "always active".
func (row CatalogRow) ActiveAt(asOf time.Time) bool {
	asOf = truncateToDate(asOf)

	from := asOf
	if row.ValidFrom != nil {
		from = *row.ValidFrom
	}

	until := asOf
	if row.ValidUntil != nil {
		until = *row.ValidUntil
	}

	return !asOf.Before(from) && !asOf.After(until)
}

func truncateToDate(value time.Time) time.Time {
	value = value.UTC()
	return time.Date(
		value.Year(), value.Month(), value.Day(),
		0, 0, 0, 0,
		time.UTC,
	)
}

// CategoryList splits the ledger's comma-separated categories cell into a
// trimmed list, dropping empty entries.
func (row CatalogRow) CategoryList() []string {
	categories := []string{}
	for _, category := range strings.Split(row.Categories, ",") {
		category = strings.TrimSpace(category)
		if category == "" {
			continue
		}

		categories = append(categories, category)
	}

	return categories
}

type CatalogTree struct {
	Clients []CatalogClient `json:"clients"`
}

type CatalogClient struct {
	Name     string           `json:"name"`
	Projects []CatalogProject `json:"projects"`
}

type CatalogProject struct {
	Name  string        `json:"name"`
	Tasks []CatalogTask `json:"tasks"`
}

type CatalogTask struct {
	Code          string     `json:"code"`
	Task          string     `json:"task"`
	Rate          *float64   `json:"rate"`
	Description   string     `json:"description"`
	Comments      string     `json:"comments"`
	BudgetedHours *float64   `json:"budgetedHours"`
	ValidFrom     *time.Time `json:"validFrom"`
	ValidUntil    *time.Time `json:"validUntil"`
}

// ExpectedBurn interpolates how many of the task's budgeted hours should be
// spent by asOf, assuming an even burn across the validity window. Nil when
// the task has no budget or no usable window.
func (task CatalogTask) ExpectedBurn(asOf time.Time) *float64 {
	secondsInADay := 86400

	if task.BudgetedHours == nil ||
		task.ValidFrom == nil ||
		task.ValidUntil == nil ||
		!task.ValidFrom.Before(*task.ValidUntil) {
		return nil
	}

	f := piecewiselinear.Function{
		X: []float64{
			float64(task.ValidFrom.Unix() / int64(secondsInADay)),
			float64(task.ValidUntil.Unix() / int64(secondsInADay)),
		},
		Y: []float64{0, *task.BudgetedHours},
	}

	burn := f.At(float64(asOf.Unix() / int64(secondsInADay)))
	return &burn
}

// CatalogSnapshotRow is the warehouse-shaped flattening of one ledger row,
// stamped with the snapshot's capture time.
type CatalogSnapshotRow struct {
	RecordedAt    time.Time  `json:"recordedAt"`
	ModifiedAt    time.Time  `json:"modifiedAt"`
	Code          string     `json:"code"`
	Client        string     `json:"client"`
	Project       string     `json:"project"`
	Task          string     `json:"task"`
	Default       bool       `json:"default"`
	ValidFrom     *time.Time `json:"validFrom"`
	ValidUntil    *time.Time `json:"validUntil"`
	Rate          *float64   `json:"rate"`
	Description   string     `json:"description"`
	Comments      string     `json:"comments"`
	BudgetedHours *float64   `json:"budgetedHours"`
	CompanySize   string     `json:"companySize"`
	Categories    []string   `json:"categories"`
}

// Validate reports the mandatory-field violations for one snapshot row.
func (row CatalogSnapshotRow) Validate(index int) []RowError {
	errs := []RowError{}

	mandatory := []struct {
		field string
		ok    bool
	}{
		{"code", row.Code != ""},
		{"client", row.Client != ""},
		{"project", row.Project != ""},
		{"task", row.Task != ""},
		{"validFrom", row.ValidFrom != nil},
		{"validUntil", row.ValidUntil != nil},
	}

	for _, m := range mandatory {
		if m.ok {
			continue
		}

		errs = append(errs, RowError{
			Index:  index,
			Field:  m.field,
			Reason: "must be provided",
		})
	}

	return errs
}
