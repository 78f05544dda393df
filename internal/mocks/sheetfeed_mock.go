//nolint:revive //ignore
package mocks

import (
	"timemirror.dev/pkg/sheetfeed"
)

// MockLedgerClient serves fixed cell rows and counts reads so cache tests
// can tell a hit from a reload.
type MockLedgerClient struct {
	Rows  [][]string
	Err   error
	Reads int
}

func NewMockLedgerClient(rows [][]string) *MockLedgerClient {
	return &MockLedgerClient{
		Rows: rows,
	}
}

var _ sheetfeed.Client = (*MockLedgerClient)(nil)

func (client *MockLedgerClient) ReadAllRows(_ string) ([][]string, error) {
	client.Reads++

	if client.Err != nil {
		return nil, client.Err
	}

	return client.Rows, nil
}
