package calfeed

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Event is the provider's view of one calendar event at a point in time.
// Cancelled events stay in the feed as entries with StatusCancelled; they
// are never silently omitted from incremental listings.
type Event struct {
	ID                 string             `json:"id"`
	Status             string             `json:"status"`
	Summary            string             `json:"summary"`
	Description        string             `json:"description"`
	Start              *EventTime         `json:"start"`
	End                *EventTime         `json:"end"`
	Created            *DateTime          `json:"created"`
	Updated            *DateTime          `json:"updated"`
	Creator            *Creator           `json:"creator"`
	ICalUID            string             `json:"iCalUID"`
	ExtendedProperties ExtendedProperties `json:"extendedProperties"`
}

type EventTime struct {
	DateTime *DateTime `json:"dateTime"`
	Date     *Date     `json:"date"`
}

// Time collapses the two provider encodings (timed and all-day) into one
// timestamp, nil when neither is present.
func (t *EventTime) Time() *time.Time {
	if t == nil {
		return nil
	}

	if t.DateTime != nil {
		return &t.DateTime.Time
	}

	if t.Date != nil {
		return &t.Date.Time
	}

	return nil
}

type Creator struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

type ExtendedProperties struct {
	Private Metadata `json:"private"`
}

// Metadata is the event's private property bag, decoded into a fixed shape
// at the client boundary. Unknown keys are dropped, missing keys decode to
// empty strings. Categories stays a raw JSON array string here; decoding it
// is the mapper's concern.
type Metadata struct {
	Client        string `json:"client"`
	Project       string `json:"project"`
	Task          string `json:"task"`
	Rate          string `json:"rate"`
	Comments      string `json:"comments"`
	CompanySize   string `json:"companySize"`
	Categories    string `json:"categories"`
	OriginalTitle string `json:"originalTitle"`
}

type Date struct {
	time.Time
}

type DateTime struct {
	time.Time
}

func (d *Date) UnmarshalJSON(bytes []byte) error {
	date, err := time.Parse(`"2006-01-02"`, string(bytes))
	if err != nil {
		return err
	}
	d.Time = date
	return nil
}

func (d *DateTime) UnmarshalJSON(bytes []byte) error {
	date, err := time.Parse(`"`+time.RFC3339+`"`, string(bytes))
	if err != nil {
		return err
	}
	d.Time = date
	return nil
}

// ChangePage is the outcome of one ListChanges call: the union of all
// provider pages plus the token to resume from. NextSyncToken can be set
// even when Events is empty and must be persisted regardless, or
// incremental progress stalls.
type ChangePage struct {
	Events        []Event
	NextSyncToken *string
}

type EventPatch struct {
	Summary     *string   `json:"summary,omitempty"`
	Description *string   `json:"description,omitempty"`
	Metadata    *Metadata `json:"metadata,omitempty"`
}

type listResponse struct {
	Items         []Event `json:"items"`
	NextPageToken string  `json:"nextPageToken"`
	NextSyncToken string  `json:"nextSyncToken"`
}

// ListChanges fetches mutations for a calendar. With a nil syncToken the
// provider returns the complete current event set; with a token only
// mutations after it. Paging is followed until exhaustion either way. A
// rejected token surfaces as ErrStaleToken.
func (client client) ListChanges(
	ctx context.Context,
	calendarID string,
	syncToken *string,
) (*ChangePage, error) {
	endpoint := fmt.Sprintf("calendars/%s/events", url.PathEscape(calendarID))

	events := []Event{}
	pageToken := ""

	for {
		params := url.Values{}
		if syncToken != nil {
			params.Set("syncToken", *syncToken)
		}
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		var res listResponse
		err := client.sendRequest(
			ctx,
			http.MethodGet,
			endpoint,
			params.Encode(),
			nil,
			&res,
		)
		if err != nil {
			return nil, err
		}

		events = append(events, res.Items...)

		if res.NextPageToken == "" {
			page := ChangePage{
				Events:        events,
				NextSyncToken: nil,
			}
			if res.NextSyncToken != "" {
				page.NextSyncToken = &res.NextSyncToken
			}
			return &page, nil
		}

		pageToken = res.NextPageToken
	}
}

func (client client) GetEvent(
	ctx context.Context,
	calendarID string,
	eventID string,
) (*Event, error) {
	endpoint := fmt.Sprintf(
		"calendars/%s/events/%s",
		url.PathEscape(calendarID),
		url.PathEscape(eventID),
	)

	var event *Event
	err := client.sendRequest(ctx, http.MethodGet, endpoint, "", nil, &event)
	if err != nil {
		return nil, err
	}

	return event, nil
}

func (client client) PatchEvent(
	ctx context.Context,
	calendarID string,
	eventID string,
	patch EventPatch,
) (*Event, error) {
	endpoint := fmt.Sprintf(
		"calendars/%s/events/%s",
		url.PathEscape(calendarID),
		url.PathEscape(eventID),
	)

	var event *Event
	err := client.sendRequest(ctx, http.MethodPatch, endpoint, "", patch, &event)
	if err != nil {
		return nil, err
	}

	return event, nil
}
