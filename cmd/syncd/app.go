//nolint:revive //it is what it is
package main

import (
	"context"
	"embed"
	"log/slog"
	"time"
	_ "time/tzdata"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/supabase-community/gotrue-go"
	configtools "github.com/xdoubleu/essentia/v2/pkg/config"
	"github.com/xdoubleu/essentia/v2/pkg/database/postgres"
	"github.com/xdoubleu/essentia/v2/pkg/threading"
	"github.com/xhit/go-str2duration/v2"
	"timemirror.dev/internal/auth"
	"timemirror.dev/internal/config"
	"timemirror.dev/internal/jobs"
	"timemirror.dev/internal/repositories"
	"timemirror.dev/internal/services"
	"timemirror.dev/pkg/calfeed"
	"timemirror.dev/pkg/sheetfeed"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

type Application struct {
	logger       *slog.Logger
	config       config.Config
	db           postgres.DB
	Services     *services.Services
	Repositories *repositories.Repositories
	jobQueue     *threading.JobQueue
}

func NewApplication(
	logger *slog.Logger,
	cfg config.Config,
	db postgres.DB,
) *Application {
	supabase := gotrue.New(
		cfg.SupabaseProjRef,
		cfg.SupabaseAPIKey,
	)

	feedClient := calfeed.New(cfg.FeedURL, cfg.FeedAPIToken)
	ledgerClient := sheetfeed.New(logger, cfg.LedgerURL)

	return NewApplicationInner(logger, cfg, db, supabase, feedClient, ledgerClient)
}

func NewApplicationInner(
	logger *slog.Logger,
	cfg config.Config,
	db postgres.DB,
	supabaseClient gotrue.Client,
	feedClient calfeed.Client,
	ledgerClient sheetfeed.Client,
) *Application {
	//nolint:mnd //no magic number
	jobQueue := threading.NewJobQueue(logger, 1, 100)

	authService := auth.New(
		supabaseClient,
		cfg.Env == configtools.ProdEnv,
		cfg.AccessExpiry,
		cfg.RefreshExpiry,
	)

	spandb := postgres.NewSpanDB(db)

	//nolint:exhaustruct //other fields are set below
	app := &Application{
		logger:   logger,
		config:   cfg,
		db:       spandb,
		jobQueue: jobQueue,
	}

	app.Repositories = repositories.New(app.db)
	app.Services = services.New(
		logger,
		cfg,
		jobQueue,
		app.Repositories,
		feedClient,
		ledgerClient,
		authService,
		mustParseDuration(cfg.CatalogCacheTTL),
	)

	app.setJobs()

	return app
}

func (app *Application) setJobs() {
	err := app.jobQueue.AddJob(
		jobs.NewEventSyncJob(
			app.Services.Sync,
			mustParseDuration(app.config.EventSyncEvery),
		),
		app.Services.WebSocket.UpdateState,
	)
	if err != nil {
		panic(err)
	}

	err = app.jobQueue.AddJob(
		jobs.NewCatalogSyncJob(
			app.Services.Sync,
			mustParseDuration(app.config.CatalogSyncEvery),
		),
		app.Services.WebSocket.UpdateState,
	)
	if err != nil {
		panic(err)
	}

	app.Services.WebSocket.RegisterTopics(app.jobQueue.FetchJobIDs())
}

func (app *Application) ApplyMigrations(db *pgxpool.Pool) error {
	migrationsDB := stdlib.OpenDBFromPool(db)

	goose.SetLogger(slog.NewLogLogger(app.logger.Handler(), slog.LevelInfo))

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(string(goose.DialectPostgres)); err != nil {
		return err
	}

	if err := goose.Up(migrationsDB, "migrations"); err != nil {
		return err
	}

	return nil
}

// Initialize seeds the installation settings on first boot.
func (app *Application) Initialize(ctx context.Context) error {
	return app.Services.Settings.EnsureInitialized(ctx, app.config)
}

func mustParseDuration(value string) time.Duration {
	duration, err := str2duration.ParseDuration(value)
	if err != nil {
		panic(err)
	}

	return duration
}
