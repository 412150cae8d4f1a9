// Package page loads the field trip shown by the widget and tracks whether
// it is loading, loaded, or failed.
//
// Each fetch runs in its own goroutine and is tagged with the generation that
// started it. Retry and Close advance the generation, so a fetch that resolves
// late finds its tag stale and its result is dropped. In-flight requests are
// not aborted.
package page

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pkordes/fieldtrip-widget/internal/domain"
)

// Status is the page's load state.
type Status uint8

const (
	StatusLoading Status = iota
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Fetcher loads the field trips. *client.Client satisfies it.
type Fetcher interface {
	FetchFieldTrips(ctx context.Context) ([]domain.FieldTrip, error)
}

// State is a snapshot of the page.
//
// Trip is nil in StatusReady when the backend has no field trips.
// Message and Err are set only in StatusFailed.
type State struct {
	Status     Status
	Trip       *domain.FieldTrip
	Message    string
	Err        error
	Generation uint64
}

// Controller owns the page state. It is safe for concurrent use.
type Controller struct {
	ctx     context.Context
	fetcher Fetcher
	log     *slog.Logger

	mu         sync.Mutex
	state      State
	generation uint64
	started    bool
	closed     bool
	wg         sync.WaitGroup
}

// New returns a controller in StatusLoading. No fetch is issued until Load.
// ctx is passed to every fetch.
func New(ctx context.Context, fetcher Fetcher, log *slog.Logger) *Controller {
	return &Controller{
		ctx:     ctx,
		fetcher: fetcher,
		log:     log,
	}
}

// Load issues the initial fetch. Calling it again is a no-op.
func (c *Controller) Load() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started || c.closed {
		return
	}
	c.started = true
	c.launch()
}

// Retry re-issues the fetch after a failure.
// It returns domain.ErrInvalidTransition unless the page is in StatusFailed.
func (c *Controller) Retry() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.state.Status != StatusFailed {
		return fmt.Errorf("page.Controller.Retry: from %s: %w", c.state.Status, domain.ErrInvalidTransition)
	}
	c.generation++
	c.state = State{Status: StatusLoading, Generation: c.generation}
	c.launch()
	return nil
}

// Close tears the page down. Fetches still in flight finish in the background
// but their results are discarded.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.generation++
}

// Wait blocks until every launched fetch has resolved.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// launch must be called with c.mu held.
func (c *Controller) launch() {
	gen := c.generation
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		trips, err := c.fetcher.FetchFieldTrips(c.ctx)
		c.commit(gen, trips, err)
	}()
}

func (c *Controller) commit(gen uint64, trips []domain.FieldTrip, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || gen != c.generation {
		c.log.Debug("discarding stale field trip fetch", "generation", gen, "current", c.generation)
		return
	}

	if err != nil {
		c.log.Error("field trip fetch failed", "generation", gen, "error", err)
		c.state = State{
			Status:     StatusFailed,
			Message:    domain.FetchFailedMessage,
			Err:        err,
			Generation: gen,
		}
		return
	}

	next := State{Status: StatusReady, Generation: gen}
	if len(trips) > 0 {
		trip := trips[0]
		next.Trip = &trip
	}
	c.log.Info("field trip loaded", "generation", gen, "trips", len(trips))
	c.state = next
}
