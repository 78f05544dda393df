package jobs

import (
	"context"
	"log/slog"
	"time"

	"timemirror.dev/internal/services"
)

type CatalogSyncJob struct {
	syncService *services.SyncService
	every       time.Duration
}

func NewCatalogSyncJob(
	syncService *services.SyncService,
	every time.Duration,
) CatalogSyncJob {
	return CatalogSyncJob{
		syncService: syncService,
		every:       every,
	}
}

func (j CatalogSyncJob) ID() string {
	return "catalog"
}

func (j CatalogSyncJob) RunEvery() time.Duration {
	return j.every
}

func (j CatalogSyncJob) Run(ctx context.Context, logger *slog.Logger) error {
	logger.Debug("snapshotting catalog ledger")

	_, err := j.syncService.RunCatalogSync(ctx)
	if err != nil {
		return err
	}

	return nil
}
