package models

import (
	"encoding/json"
	"strconv"
	"time"

	"timemirror.dev/pkg/calfeed"
)

// EventRecord is one immutable warehouse row. The same event id appears
// once per observed mutation, not once per event; downstream consumers
// reduce by (EventID, LoadedAt) when they need last-write-wins.
type EventRecord struct {
	LoadedAt      time.Time  `json:"loadedAt"`
	EventID       string     `json:"eventId"`
	Summary       string     `json:"summary"`
	Description   string     `json:"description"`
	StartsAt      *time.Time `json:"startsAt"`
	EndsAt        *time.Time `json:"endsAt"`
	Client        string     `json:"client"`
	Project       string     `json:"project"`
	Task          string     `json:"task"`
	Rate          *float64   `json:"rate"`
	Comments      string     `json:"comments"`
	CompanySize   string     `json:"companySize"`
	Categories    []string   `json:"categories"`
	OriginalTitle string     `json:"originalTitle"`
	Deleted       bool       `json:"deleted"`
	ICalUID       string     `json:"iCalUid"`
	CreatorEmail  string     `json:"creatorEmail"`
	CreatedAt     *time.Time `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt"`
}

// NewEventRecord flattens one feed mutation into a warehouse row. Cancelled
// events become tombstones with Deleted set; they are appended like any
// other row. Malformed metadata never fails the record.
func NewEventRecord(event calfeed.Event, loadedAt time.Time) EventRecord {
	meta := event.ExtendedProperties.Private

	record := EventRecord{
		LoadedAt:      loadedAt,
		EventID:       event.ID,
		Summary:       event.Summary,
		Description:   event.Description,
		StartsAt:      event.Start.Time(),
		EndsAt:        event.End.Time(),
		Client:        meta.Client,
		Project:       meta.Project,
		Task:          meta.Task,
		Rate:          parseRate(meta.Rate),
		Comments:      meta.Comments,
		CompanySize:   meta.CompanySize,
		Categories:    parseCategories(meta.Categories),
		OriginalTitle: meta.OriginalTitle,
		Deleted:       event.Status == calfeed.StatusCancelled,
		ICalUID:       event.ICalUID,
		CreatorEmail:  "",
		CreatedAt:     nil,
		UpdatedAt:     nil,
	}

	if event.Creator != nil {
		record.CreatorEmail = event.Creator.Email
	}

	if event.Created != nil {
		record.CreatedAt = &event.Created.Time
	}

	if event.Updated != nil {
		record.UpdatedAt = &event.Updated.Time
	}

	return record
}

// parseCategories decodes the metadata bag's JSON array string. A decode
// failure yields an empty list so one malformed event can't block its batch.
func parseCategories(raw string) []string {
	if raw == "" {
		return []string{}
	}

	var categories []string
	if err := json.Unmarshal([]byte(raw), &categories); err != nil {
		return []string{}
	}

	return categories
}

func parseRate(raw string) *float64 {
	if raw == "" {
		return nil
	}

	rate, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}

	return &rate
}

// Validate reports the mandatory-field violations that keep a row out of
// the warehouse. Index is the row's position in its batch.
func (record EventRecord) Validate(index int) []RowError {
	errs := []RowError{}

	if record.EventID == "" {
		errs = append(errs, RowError{
			Index:  index,
			Field:  "eventId",
			Reason: "must be provided",
		})
	}

	if record.LoadedAt.IsZero() {
		errs = append(errs, RowError{
			Index:  index,
			Field:  "loadedAt",
			Reason: "must be provided",
		})
	}

	return errs
}
