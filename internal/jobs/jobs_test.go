package jobs_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"timemirror.dev/internal/jobs"
)

func TestJobIdentities(t *testing.T) {
	eventJob := jobs.NewEventSyncJob(nil, 15*time.Minute)
	assert.Equal(t, "events", eventJob.ID())
	assert.Equal(t, 15*time.Minute, eventJob.RunEvery())

	catalogJob := jobs.NewCatalogSyncJob(nil, 24*time.Hour)
	assert.Equal(t, "catalog", catalogJob.ID())
	assert.Equal(t, 24*time.Hour, catalogJob.RunEvery())
}
