//nolint:exhaustruct,revive //ignore
package mocks

import (
	"context"

	"timemirror.dev/pkg/calfeed"
)

// MockCalendarClient replays scripted pages. Each ListChanges call consumes
// the next page; calls beyond the script return an empty page. When
// StaleTokens is set, incremental calls fail with ErrStaleToken until a
// full listing is requested.
type MockCalendarClient struct {
	Pages       []calfeed.ChangePage
	StaleTokens bool

	Calls      int
	SeenTokens []*string
}

func NewMockCalendarClient(pages ...calfeed.ChangePage) *MockCalendarClient {
	return &MockCalendarClient{
		Pages: pages,
	}
}

func (client *MockCalendarClient) ListChanges(
	_ context.Context,
	_ string,
	syncToken *string,
) (*calfeed.ChangePage, error) {
	client.Calls++
	client.SeenTokens = append(client.SeenTokens, syncToken)

	if client.StaleTokens && syncToken != nil {
		return nil, calfeed.ErrStaleToken
	}

	if len(client.Pages) == 0 {
		return &calfeed.ChangePage{Events: []calfeed.Event{}}, nil
	}

	page := client.Pages[0]
	client.Pages = client.Pages[1:]

	return &page, nil
}

func (client *MockCalendarClient) GetEvent(
	_ context.Context,
	_ string,
	_ string,
) (*calfeed.Event, error) {
	return &calfeed.Event{}, nil
}

func (client *MockCalendarClient) PatchEvent(
	_ context.Context,
	_ string,
	_ string,
	_ calfeed.EventPatch,
) (*calfeed.Event, error) {
	return &calfeed.Event{}, nil
}
