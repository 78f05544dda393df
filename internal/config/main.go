//nolint:mnd //no magic number
package config

import (
	"log/slog"

	"github.com/xdoubleu/essentia/v2/pkg/config"
)

type Config struct {
	Env              string
	Port             int
	Throttle         bool
	WebURL           string
	SentryDsn        string
	SampleRate       float64
	Release          string
	DBDsn            string
	AccessExpiry     string
	RefreshExpiry    string
	SupabaseUserID   string
	SupabaseProjRef  string
	SupabaseAPIKey   string
	FeedURL          string
	FeedAPIToken     string
	CalendarID       string
	LedgerURL        string
	LedgerSheet      string
	CatalogCacheTTL  string
	EventSyncEvery   string
	CatalogSyncEvery string
}

func New(logger *slog.Logger) Config {
	var cfg Config

	parser := config.New(logger)

	cfg.Env = parser.EnvStr("ENV", config.ProdEnv)
	cfg.Port = parser.EnvInt("PORT", 8000)
	cfg.Throttle = parser.EnvBool("THROTTLE", true)
	cfg.WebURL = parser.EnvStr("WEB_URL", "http://localhost:8000")
	cfg.SentryDsn = parser.EnvStr("SENTRY_DSN", "")
	cfg.SampleRate = parser.EnvFloat("SAMPLE_RATE", 1.0)
	cfg.Release = parser.EnvStr("RELEASE", config.DevEnv)
	cfg.DBDsn = parser.EnvStr("DB_DSN", "postgres://postgres@localhost/postgres")
	cfg.AccessExpiry = parser.EnvStr("ACCESS_EXPIRY", "1h")
	cfg.RefreshExpiry = parser.EnvStr("REFRESH_EXPIRY", "7d")

	cfg.SupabaseUserID = parser.EnvStr("SUPABASE_USER_ID", "")
	cfg.SupabaseProjRef = parser.EnvStr("SUPABASE_PROJ_REF", "")
	cfg.SupabaseAPIKey = parser.EnvStr("SUPABASE_API_KEY", "")

	cfg.FeedURL = parser.EnvStr("FEED_URL", "")
	cfg.FeedAPIToken = parser.EnvStr("FEED_API_TOKEN", "")
	cfg.CalendarID = parser.EnvStr("CALENDAR_ID", "")
	cfg.LedgerURL = parser.EnvStr("LEDGER_URL", "")
	cfg.LedgerSheet = parser.EnvStr("LEDGER_SHEET", "catalog")

	cfg.CatalogCacheTTL = parser.EnvStr("CATALOG_CACHE_TTL", "1h")
	cfg.EventSyncEvery = parser.EnvStr("EVENT_SYNC_EVERY", "15m")
	cfg.CatalogSyncEvery = parser.EnvStr("CATALOG_SYNC_EVERY", "24h")

	return cfg
}
