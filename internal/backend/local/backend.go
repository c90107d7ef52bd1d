package local

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"sodiumbridge/internal/domain"
	"sodiumbridge/internal/observability"
)

// ErrUnknownOperation is returned for operation names the backend does not serve.
var ErrUnknownOperation = errors.New("unknown operation")

// DefaultMaxScryptMemory caps the working memory of one password hash.
const DefaultMaxScryptMemory = 1 << 30

// Config tunes a Backend. Zero values select defaults.
type Config struct {
	// Workers bounds concurrent operations. Defaults to GOMAXPROCS.
	Workers int
	// MaxScryptMemory bounds the bytes a single scrypt call may use.
	MaxScryptMemory uint64
}

// Backend executes operations in process.
type Backend struct {
	sem       *semaphore.Weighted
	maxScrypt uint64
	logger    zerolog.Logger
	metrics   *observability.Metrics
	handlers  map[string]handler
}

var _ domain.Backend = (*Backend)(nil)

// New constructs a Backend. metrics may be nil.
func New(cfg Config, logger zerolog.Logger, metrics *observability.Metrics) *Backend {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	maxScrypt := cfg.MaxScryptMemory
	if maxScrypt == 0 {
		maxScrypt = DefaultMaxScryptMemory
	}
	b := &Backend{
		sem:       semaphore.NewWeighted(int64(workers)),
		maxScrypt: maxScrypt,
		logger:    logger,
		metrics:   metrics,
	}
	b.handlers = b.routes()
	return b
}

// Exec implements domain.Backend. It never blocks the caller.
func (b *Backend) Exec(ctx context.Context, req domain.Request, success func(domain.Reply), failure func(error)) {
	go func() {
		if err := b.sem.Acquire(ctx, 1); err != nil {
			failure(err)
			return
		}
		defer b.sem.Release(1)

		reply, err := b.run(req)
		b.metrics.BackendExecuted(req.Op, err)
		if err != nil {
			b.logger.Debug().Str("op", req.Op).Err(err).Msg("exec failed")
			failure(err)
			return
		}
		success(reply)
	}()
}

func (b *Backend) run(req domain.Request) (domain.Reply, error) {
	h, ok := b.handlers[req.Op]
	if !ok {
		return domain.Reply{}, fmt.Errorf("%w %s", ErrUnknownOperation, req.Op)
	}
	if len(req.Args) != h.arity {
		return domain.Reply{}, fmt.Errorf("%s expects %d arguments, got %d", req.Op, h.arity, len(req.Args))
	}
	return h.fn(args(req.Args))
}
