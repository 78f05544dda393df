package models

import (
	"time"

	"github.com/google/uuid"
)

type SyncKind string

const (
	EventSync   SyncKind = "events"
	CatalogSync SyncKind = "catalog"
)

// SyncReport summarizes one run for the caller: what was fetched, what
// landed in the warehouse, and which rows were rejected. A report with row
// errors is "completed with errors", not a failure.
type SyncReport struct {
	RunID        string        `json:"runId"`
	Kind         SyncKind      `json:"kind"`
	StartedAt    time.Time     `json:"startedAt"`
	Duration     time.Duration `json:"duration"`
	FullSync     bool          `json:"fullSync"`
	Fetched      int           `json:"fetched"`
	Inserted     int           `json:"inserted"`
	RowErrors    []RowError    `json:"rowErrors,omitempty"`
	TokenRotated bool          `json:"tokenRotated"`
}

func NewSyncReport(kind SyncKind, startedAt time.Time) *SyncReport {
	return &SyncReport{
		RunID:        uuid.NewString(),
		Kind:         kind,
		StartedAt:    startedAt,
		Duration:     0,
		FullSync:     false,
		Fetched:      0,
		Inserted:     0,
		RowErrors:    nil,
		TokenRotated: false,
	}
}

func (report *SyncReport) Finish(now time.Time) *SyncReport {
	report.Duration = now.Sub(report.StartedAt)
	return report
}
