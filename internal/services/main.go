package services

import (
	"log/slog"
	"time"

	"github.com/xdoubleu/essentia/v2/pkg/threading"
	"timemirror.dev/internal/auth"
	"timemirror.dev/internal/config"
	"timemirror.dev/internal/repositories"
	"timemirror.dev/pkg/calfeed"
	"timemirror.dev/pkg/sheetfeed"
)

type Services struct {
	Auth      auth.Service
	Settings  *SettingsService
	Tokens    *TokenService
	Catalog   *CatalogService
	Sync      *SyncService
	WebSocket *WebSocketService
}

func New(
	logger *slog.Logger,
	cfg config.Config,
	jobQueue *threading.JobQueue,
	repositories *repositories.Repositories,
	feedClient calfeed.Client,
	ledgerClient sheetfeed.Client,
	authService auth.Service,
	catalogCacheTTL time.Duration,
) *Services {
	settings := &SettingsService{
		store: repositories.Settings,
	}
	tokens := &TokenService{
		store: repositories.Settings,
	}
	//nolint:exhaustruct //cache fields start empty
	catalog := &CatalogService{
		ledger:   ledgerClient,
		settings: settings,
		ttl:      catalogCacheTTL,
	}
	sync := &SyncService{
		logger:   logger,
		feed:     feedClient,
		tokens:   tokens,
		settings: settings,
		catalog:  catalog,
		sink:     repositories.Warehouse,
	}

	return &Services{
		Auth:      authService,
		Settings:  settings,
		Tokens:    tokens,
		Catalog:   catalog,
		Sync:      sync,
		WebSocket: NewWebSocketService(logger, []string{cfg.WebURL}, jobQueue),
	}
}
