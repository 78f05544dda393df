//nolint:revive //ignore
package mocks

import (
	"context"
	"sync"
)

// MockSettingsStore is an in-memory key-value store standing in for the
// persisted installation settings.
type MockSettingsStore struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMockSettingsStore(values map[string]string) *MockSettingsStore {
	if values == nil {
		values = map[string]string{}
	}

	return &MockSettingsStore{
		values: values,
	}
}

func (store *MockSettingsStore) Get(
	_ context.Context,
	key string,
) (*string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	value, ok := store.values[key]
	if !ok {
		return nil, nil
	}

	return &value, nil
}

func (store *MockSettingsStore) Set(
	_ context.Context,
	key string,
	value string,
) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.values[key] = value
	return nil
}

func (store *MockSettingsStore) Delete(_ context.Context, key string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	delete(store.values, key)
	return nil
}
