package models

import (
	"errors"
	"fmt"
)

// ErrMissingConfig wraps a ConfigError so callers can test for the class
// with errors.Is without caring which identifier is absent.
var ErrMissingConfig = errors.New("missing configuration")

type ConfigError struct {
	Key string
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("missing required setting %q", e.Key)
}

func (e ConfigError) Unwrap() error {
	return ErrMissingConfig
}

// FetchError marks a failed change-feed or ledger read. The run aborts and
// persisted state (sync token, cache) is left untouched so a retry resumes
// from the same point.
type FetchError struct {
	Source string
	Err    error
}

func (e FetchError) Error() string {
	return fmt.Sprintf("fetching from %s: %v", e.Source, e.Err)
}

func (e FetchError) Unwrap() error {
	return e.Err
}

// RowError describes a single rejected row. Row errors never abort a run;
// they are collected and reported alongside the inserted count.
type RowError struct {
	Index  int    `json:"index"`
	Field  string `json:"field,omitempty"`
	Reason string `json:"reason"`
}

func (e RowError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("row %d: %s", e.Index, e.Reason)
	}

	return fmt.Sprintf("row %d: field %q %s", e.Index, e.Field, e.Reason)
}

// InsertResult reports the outcome of one batch append. A result with row
// errors means "completed with errors": already-inserted rows are never
// rolled back.
type InsertResult struct {
	Inserted  int        `json:"inserted"`
	RowErrors []RowError `json:"rowErrors,omitempty"`
}

func (r *InsertResult) Ok() bool {
	return len(r.RowErrors) == 0
}
