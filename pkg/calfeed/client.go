package calfeed

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/xdoubleu/essentia/v2/pkg/communication/httptools"
)

// ErrStaleToken is returned when the provider rejects a sync token as
// expired. Callers fall back to a full listing and persist the fresh token.
var ErrStaleToken = errors.New("calfeed: sync token is no longer valid")

type client struct {
	baseURL  string
	apiToken string
}

func New(baseURL string, apiToken string) Client {
	return client{
		baseURL:  baseURL,
		apiToken: apiToken,
	}
}

func (client client) sendRequest(
	ctx context.Context,
	method string,
	endpoint string,
	query string,
	body any,
	dst any,
) error {
	u, err := url.Parse(fmt.Sprintf("%s/%s", client.baseURL, endpoint))
	if err != nil {
		return err
	}

	u.RawQuery = query

	var req *http.Request
	if body != nil {
		var marshalled []byte
		marshalled, err = json.Marshal(body)
		if err != nil {
			return err
		}

		req, err = http.NewRequestWithContext(
			ctx,
			method,
			u.String(),
			bytes.NewBuffer(marshalled),
		)
		if err != nil {
			return err
		}

		req.Header.Add("Content-Type", "application/json")
	} else {
		req, err = http.NewRequestWithContext(ctx, method, u.String(), nil)
		if err != nil {
			return err
		}
	}

	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", client.apiToken))

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusGone {
		return ErrStaleToken
	}

	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf(
			"calfeed: %s %s returned %d",
			method,
			endpoint,
			res.StatusCode,
		)
	}

	err = httptools.ReadJSON(res.Body, dst)
	if err != nil && err.Error() != "body must not be empty" {
		return err
	}

	return nil
}
