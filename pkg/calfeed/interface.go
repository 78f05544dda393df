package calfeed

import (
	"context"
)

type Client interface {
	ListChanges(
		ctx context.Context,
		calendarID string,
		syncToken *string,
	) (*ChangePage, error)
	GetEvent(ctx context.Context, calendarID string, eventID string) (*Event, error)
	PatchEvent(
		ctx context.Context,
		calendarID string,
		eventID string,
		patch EventPatch,
	) (*Event, error)
}
