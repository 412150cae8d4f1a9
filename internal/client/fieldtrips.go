package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pkordes/fieldtrip-widget/internal/domain"
)

// FetchFieldTrips issues a single GET for the list of field trips.
//
// A transport failure or non-2xx status returns an error wrapping
// domain.ErrFieldTripsUnavailable. A 2xx body is decoded as-is; a body that is
// not a JSON array of trips returns the decode error.
func (c *Client) FetchFieldTrips(ctx context.Context) ([]domain.FieldTrip, error) {
	const op = "client.Client.FetchFieldTrips"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoints.FieldTrips, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observeFetch("network_error")
		c.log.WarnContext(ctx, "field trip fetch failed", "op", op, "error", err)
		return nil, fmt.Errorf("%s: %w: %w", op, domain.ErrFieldTripsUnavailable, err)
	}
	defer drain(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.observeFetch("server_error")
		c.log.WarnContext(ctx, "field trip fetch rejected", "op", op, "status", resp.StatusCode)
		return nil, fmt.Errorf("%s: %w: status %d", op, domain.ErrFieldTripsUnavailable, resp.StatusCode)
	}

	var trips []domain.FieldTrip
	if err := json.NewDecoder(resp.Body).Decode(&trips); err != nil {
		c.observeFetch("decode_error")
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}

	c.observeFetch("succeeded")
	return trips, nil
}
