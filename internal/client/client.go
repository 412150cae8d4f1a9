// Package client talks to the field trip backend.
// It knows the two endpoints the widget uses and turns their responses into
// domain values; it never retries on its own.
package client

import (
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	fieldTripsPath = "/api/fieldtrip"
	paymentPath    = "/api/payment"
)

// Endpoints holds the resolved backend URLs.
type Endpoints struct {
	FieldTrips string
	Payment    string
}

// NewEndpoints joins base with the endpoint paths. An empty base yields the
// relative paths "/api/fieldtrip" and "/api/payment".
func NewEndpoints(base string) Endpoints {
	base = strings.TrimRight(base, "/")
	return Endpoints{
		FieldTrips: base + fieldTripsPath,
		Payment:    base + paymentPath,
	}
}

// Observer receives the outcome of every backend call.
// *metrics.Metrics implements it; a nil Observer is allowed.
type Observer interface {
	ObserveFetch(outcome string)
	ObservePayment(outcome string)
}

// Client calls the field trip backend.
type Client struct {
	endpoints  Endpoints
	httpClient *http.Client
	log        *slog.Logger
	observer   Observer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default *http.Client (10s timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the timeout of the default *http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithLogger sets the logger used for failed calls.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithObserver registers o to be told about each call's outcome.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// New constructs a Client for the backend at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		endpoints:  NewEndpoints(baseURL),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoints returns the URLs this client calls.
func (c *Client) Endpoints() Endpoints {
	return c.endpoints
}

func (c *Client) observeFetch(outcome string) {
	if c.observer != nil {
		c.observer.ObserveFetch(outcome)
	}
}

func (c *Client) observePayment(outcome string) {
	if c.observer != nil {
		c.observer.ObservePayment(outcome)
	}
}

// drain discards what is left of body so the connection can be reused.
func drain(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
