package jobs

import (
	"context"
	"log/slog"
	"time"

	"timemirror.dev/internal/services"
)

type EventSyncJob struct {
	syncService *services.SyncService
	every       time.Duration
}

func NewEventSyncJob(
	syncService *services.SyncService,
	every time.Duration,
) EventSyncJob {
	return EventSyncJob{
		syncService: syncService,
		every:       every,
	}
}

func (j EventSyncJob) ID() string {
	return "events"
}

func (j EventSyncJob) RunEvery() time.Duration {
	return j.every
}

func (j EventSyncJob) Run(ctx context.Context, logger *slog.Logger) error {
	logger.Debug("mirroring calendar changes")

	_, err := j.syncService.RunEventSync(ctx)
	if err != nil {
		return err
	}

	return nil
}
