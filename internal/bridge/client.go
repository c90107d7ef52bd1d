package bridge

import (
	"context"

	"github.com/rs/zerolog"

	"sodiumbridge/internal/domain"
	"sodiumbridge/internal/observability"
)

// Completion receives the outcome of a call. Exactly one of the result and the
// error is meaningful.
type Completion func(domain.Result, error)

// Client validates, encodes and dispatches operations to a backend.
type Client struct {
	ctx     context.Context
	backend domain.Backend
	logger  zerolog.Logger
	metrics *observability.Metrics
}

// New constructs a Client over backend. metrics may be nil.
func New(backend domain.Backend, logger zerolog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		ctx:     context.Background(),
		backend: backend,
		logger:  logger,
		metrics: metrics,
	}
}

// WithContext returns a shallow copy of c whose calls hand ctx to the backend.
// The bridge itself never cancels or times out a call; ctx is for the
// backend's own use, e.g. to abort a network round trip.
func (c *Client) WithContext(ctx context.Context) *Client {
	if ctx == nil {
		panic("nil context")
	}
	c2 := *c
	c2.ctx = ctx
	return &c2
}

// Await starts call and blocks until its completion fires or ctx is done.
// A call abandoned through ctx still runs to completion in the background.
func Await(ctx context.Context, call func(Completion)) (domain.Result, error) {
	type outcome struct {
		res domain.Result
		err error
	}
	ch := make(chan outcome, 1)
	call(func(res domain.Result, err error) {
		ch <- outcome{res, err}
	})
	select {
	case o := <-ch:
		return o.res, o.err
	case <-ctx.Done():
		return domain.Result{}, ctx.Err()
	}
}
