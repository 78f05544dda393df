package services

import (
	"context"

	"timemirror.dev/internal/config"
	"timemirror.dev/internal/models"
)

const (
	initializedKey  = "initialized"
	syncTokenKey    = "calendar_sync_token"
	calendarIDKey   = "calendar_id"
	ledgerSheetKey  = "ledger_sheet"
	settingsTrueVal = "true"
)

// SettingsStore is the installation-scoped key-value persistence consumed
// by the token and settings services. Satisfied by
// repositories.SettingsRepository; tests substitute an in-memory store.
type SettingsStore interface {
	Get(ctx context.Context, key string) (*string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}

// TokenService persists the feed's opaque resumption token. Absence of the
// token forces the next event sync to be full.
type TokenService struct {
	store SettingsStore
}

func (service *TokenService) Get(ctx context.Context) (*string, error) {
	return service.store.Get(ctx, syncTokenKey)
}

func (service *TokenService) Set(ctx context.Context, token string) error {
	return service.store.Set(ctx, syncTokenKey, token)
}

func (service *TokenService) Clear(ctx context.Context) error {
	return service.store.Delete(ctx, syncTokenKey)
}

type SettingsService struct {
	store SettingsStore
}

// EnsureInitialized seeds the run-scoped identifiers from the environment
// on first boot. Later boots leave stored values alone so an installation
// can be repointed without redeploying. Only identifiers the sync runs read
// back are seeded; the client base URLs stay env-only because the clients
// are constructed at boot.
func (service *SettingsService) EnsureInitialized(
	ctx context.Context,
	cfg config.Config,
) error {
	initialized, err := service.store.Get(ctx, initializedKey)
	if err != nil {
		return err
	}

	if initialized != nil {
		return nil
	}

	seed := map[string]string{
		calendarIDKey:  cfg.CalendarID,
		ledgerSheetKey: cfg.LedgerSheet,
	}

	for key, value := range seed {
		if value == "" {
			continue
		}

		if err = service.store.Set(ctx, key, value); err != nil {
			return err
		}
	}

	return service.store.Set(ctx, initializedKey, settingsTrueVal)
}

func (service *SettingsService) CalendarID(ctx context.Context) (string, error) {
	return service.required(ctx, calendarIDKey)
}

func (service *SettingsService) LedgerSheet(ctx context.Context) (string, error) {
	return service.required(ctx, ledgerSheetKey)
}

func (service *SettingsService) required(
	ctx context.Context,
	key string,
) (string, error) {
	value, err := service.store.Get(ctx, key)
	if err != nil {
		return "", err
	}

	if value == nil || *value == "" {
		return "", models.ConfigError{Key: key}
	}

	return *value, nil
}
