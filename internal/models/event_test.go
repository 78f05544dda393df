package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"timemirror.dev/internal/models"
	"timemirror.dev/pkg/calfeed"
)

//nolint:exhaustruct //other fields are optional
func confirmedEvent() calfeed.Event {
	start := calfeed.DateTime{
		Time: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
	}
	end := calfeed.DateTime{
		Time: time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC),
	}

	return calfeed.Event{
		ID:      "evt-1",
		Status:  calfeed.StatusConfirmed,
		Summary: "Acme / Website / Development",
		Start:   &calfeed.EventTime{DateTime: &start},
		End:     &calfeed.EventTime{DateTime: &end},
		Creator: &calfeed.Creator{Email: "dev@example.com"},
		ICalUID: "evt-1@calendar",
		ExtendedProperties: calfeed.ExtendedProperties{
			Private: calfeed.Metadata{
				Client:        "Acme",
				Project:       "Website",
				Task:          "Development",
				Rate:          "95.5",
				Comments:      "sprint 4",
				CompanySize:   "11-50",
				Categories:    `["backend","api"]`,
				OriginalTitle: "Dev work",
			},
		},
	}
}

func TestNewEventRecord(t *testing.T) {
	loadedAt := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	record := models.NewEventRecord(confirmedEvent(), loadedAt)

	assert.Equal(t, loadedAt, record.LoadedAt)
	assert.Equal(t, "evt-1", record.EventID)
	assert.Equal(t, "Acme", record.Client)
	assert.Equal(t, "Website", record.Project)
	assert.Equal(t, "Development", record.Task)
	assert.Equal(t, 95.5, *record.Rate)
	assert.Equal(t, []string{"backend", "api"}, record.Categories)
	assert.Equal(t, "Dev work", record.OriginalTitle)
	assert.Equal(t, "dev@example.com", record.CreatorEmail)
	assert.False(t, record.Deleted)
	assert.Equal(
		t,
		time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		*record.StartsAt,
	)
}

func TestNewEventRecordTombstone(t *testing.T) {
	event := confirmedEvent()
	event.Status = calfeed.StatusCancelled

	record := models.NewEventRecord(event, time.Now().UTC())

	assert.True(t, record.Deleted)
	assert.Equal(t, "evt-1", record.EventID)
}

func TestNewEventRecordMalformedMetadata(t *testing.T) {
	event := confirmedEvent()
	event.ExtendedProperties.Private.Categories = "not json"
	event.ExtendedProperties.Private.Rate = "a lot"

	record := models.NewEventRecord(event, time.Now().UTC())

	assert.Equal(t, []string{}, record.Categories)
	assert.Nil(t, record.Rate)
}

func TestNewEventRecordBareEvent(t *testing.T) {
	//nolint:exhaustruct //other fields are optional
	event := calfeed.Event{
		ID:     "evt-2",
		Status: calfeed.StatusConfirmed,
	}

	record := models.NewEventRecord(event, time.Now().UTC())

	assert.Nil(t, record.StartsAt)
	assert.Nil(t, record.EndsAt)
	assert.Nil(t, record.CreatedAt)
	assert.Nil(t, record.UpdatedAt)
	assert.Empty(t, record.CreatorEmail)
	assert.Equal(t, []string{}, record.Categories)
}

func TestEventRecordValidate(t *testing.T) {
	record := models.NewEventRecord(confirmedEvent(), time.Now().UTC())
	assert.Empty(t, record.Validate(0))

	record.EventID = ""
	record.LoadedAt = time.Time{}

	errs := record.Validate(3)
	assert.Len(t, errs, 2)
	assert.Equal(t, 3, errs[0].Index)
	assert.Equal(t, "eventId", errs[0].Field)
	assert.Equal(t, "loadedAt", errs[1].Field)
}
