package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/xdoubleu/essentia/v2/pkg/logging"
	"timemirror.dev/internal/models"
	"timemirror.dev/pkg/calfeed"
)

// WarehouseSink is the append-only analytical store. Satisfied by
// repositories.WarehouseRepository.
type WarehouseSink interface {
	InsertEvents(
		ctx context.Context,
		records []models.EventRecord,
	) (*models.InsertResult, error)
	InsertCatalogRows(
		ctx context.Context,
		rows []models.CatalogSnapshotRow,
	) (*models.InsertResult, error)
}

type syncMode int

const (
	fullSync syncMode = iota
	incrementalSync
)

// syncRequest makes the full-vs-incremental branch explicit instead of
// threading a nullable token through the run.
type syncRequest struct {
	mode  syncMode
	token string
}

func newSyncRequest(token *string) syncRequest {
	if token == nil {
		return syncRequest{mode: fullSync, token: ""}
	}

	return syncRequest{mode: incrementalSync, token: *token}
}

func (req syncRequest) syncToken() *string {
	switch req.mode {
	case incrementalSync:
		return &req.token
	case fullSync:
		return nil
	default:
		return nil
	}
}

// SyncService composes the feed client, the token store, the catalog
// service and the warehouse sink into the two mirror runs. Runs are
// run-to-completion; callers serialize concurrent invocations.
type SyncService struct {
	logger   *slog.Logger
	feed     calfeed.Client
	tokens   *TokenService
	settings *SettingsService
	catalog  *CatalogService
	sink     WarehouseSink
}

// RunEventSync performs one incremental (or, without a stored token, full)
// mirror of the calendar feed into the warehouse. A token rejected by the
// provider triggers a single full-sync fallback. A fetch failure leaves the
// stored token untouched so the next run retries from the same point.
func (service *SyncService) RunEventSync(
	ctx context.Context,
) (*models.SyncReport, error) {
	report := models.NewSyncReport(models.EventSync, time.Now().UTC())

	calendarID, err := service.settings.CalendarID(ctx)
	if err != nil {
		return nil, err
	}

	token, err := service.tokens.Get(ctx)
	if err != nil {
		return nil, err
	}

	req := newSyncRequest(token)

	page, err := service.feed.ListChanges(ctx, calendarID, req.syncToken())
	if errors.Is(err, calfeed.ErrStaleToken) && req.mode == incrementalSync {
		service.logger.Warn("sync token rejected by provider, running full sync")

		req = newSyncRequest(nil)
		page, err = service.feed.ListChanges(ctx, calendarID, nil)
	}
	if err != nil {
		return nil, models.FetchError{Source: "calendar feed", Err: err}
	}

	report.FullSync = req.mode == fullSync
	report.Fetched = len(page.Events)

	if len(page.Events) > 0 {
		loadedAt := time.Now().UTC()

		records := make([]models.EventRecord, 0, len(page.Events))
		for _, event := range page.Events {
			records = append(records, models.NewEventRecord(event, loadedAt))
		}

		var result *models.InsertResult
		result, err = service.sink.InsertEvents(ctx, records)
		if err != nil {
			return nil, err
		}

		report.Inserted = result.Inserted
		report.RowErrors = result.RowErrors
	}

	// persist even on an empty page, or incremental progress stalls
	if page.NextSyncToken != nil {
		if err = service.tokens.Set(ctx, *page.NextSyncToken); err != nil {
			return nil, err
		}

		report.TokenRotated = true
	}

	service.logReport(report)

	return report.Finish(time.Now().UTC()), nil
}

// ResetEventSync drops the stored token; the next run mirrors the complete
// current event set.
func (service *SyncService) ResetEventSync(ctx context.Context) error {
	return service.tokens.Clear(ctx)
}

// RunCatalogSync snapshots the full ledger into the warehouse. The cache is
// bypassed on read and invalidated afterwards so selection flows rebuild
// from the now-current ledger.
func (service *SyncService) RunCatalogSync(
	ctx context.Context,
) (*models.SyncReport, error) {
	report := models.NewSyncReport(models.CatalogSync, time.Now().UTC())
	report.FullSync = true

	service.catalog.Invalidate()

	rows, err := service.catalog.Reload(ctx)
	if err != nil {
		return nil, err
	}

	report.Fetched = len(rows)

	snapshot, rowErrors := SnapshotRows(rows, time.Now().UTC())
	report.RowErrors = rowErrors

	result, err := service.sink.InsertCatalogRows(ctx, snapshot)
	if err != nil {
		return nil, err
	}

	report.Inserted = result.Inserted
	report.RowErrors = append(report.RowErrors, result.RowErrors...)

	service.catalog.Invalidate()

	service.logReport(report)

	return report.Finish(time.Now().UTC()), nil
}

func (service *SyncService) logReport(report *models.SyncReport) {
	service.logger.Info("sync run finished",
		slog.String("runId", report.RunID),
		slog.String("kind", string(report.Kind)),
		slog.Bool("fullSync", report.FullSync),
		slog.Int("fetched", report.Fetched),
		slog.Int("inserted", report.Inserted),
		slog.Int("rowErrors", len(report.RowErrors)),
	)

	for _, rowErr := range report.RowErrors {
		service.logger.Warn("row rejected", logging.ErrAttr(rowErr))
	}
}
