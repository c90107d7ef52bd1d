package transport

import (
	"context"
	"errors"
	"sync"

	"sodiumbridge/internal/domain"
)

// ErrClosed is returned for calls made on, or pending on, a closed connection.
var ErrClosed = errors.New("transport closed")

// RemoteError is a failure reported by the serving side. Message is the
// backend's error text, unchanged.
type RemoteError struct {
	Op      string
	Status  int
	Message string
}

func (e *RemoteError) Error() string { return e.Message }

// Do runs req on b and blocks until it replies or ctx is done.
func Do(ctx context.Context, b domain.Backend, req domain.Request) (domain.Reply, error) {
	type outcome struct {
		reply domain.Reply
		err   error
	}
	ch := make(chan outcome, 1)
	var once sync.Once
	b.Exec(ctx, req,
		func(r domain.Reply) { once.Do(func() { ch <- outcome{reply: r} }) },
		func(err error) { once.Do(func() { ch <- outcome{err: err} }) },
	)
	select {
	case o := <-ch:
		return o.reply, o.err
	case <-ctx.Done():
		return domain.Reply{}, ctx.Err()
	}
}
