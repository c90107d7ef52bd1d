package bridge

import (
	"context"
	"sync"
	"time"

	"sodiumbridge/internal/catalog"
	"sodiumbridge/internal/codec"
	"sodiumbridge/internal/domain"
	"sodiumbridge/internal/observability"
	"sodiumbridge/internal/validate"
)

// Invoke runs the named cataloged operation with positional args. It is the
// generic form behind every typed method on Client.
func (c *Client) Invoke(name string, args []any, done Completion) {
	if done == nil {
		panic(domain.ErrNilCompletion)
	}
	op, ok := catalog.Lookup(name)
	if !ok {
		c.reject(name, domain.NewError(domain.KindNotImplemented, "", "unknown operation %s", name), done)
		return
	}
	if !op.Implemented {
		c.reject(name, domain.NewError(domain.KindNotImplemented, "", "%s is not implemented", name), done)
		return
	}
	if err := op.Validate(args); err != nil {
		c.reject(name, err, done)
		return
	}
	encoded, err := encodeArgs(op, args)
	if err != nil {
		c.reject(name, err, done)
		return
	}
	c.invoke(c.ctx, op, encoded, done)
}

func (c *Client) reject(name string, err error, done Completion) {
	c.metrics.ValidationFailed(name, err)
	c.logger.Debug().Str("op", name).Err(err).Msg("rejected")
	done(domain.Result{}, err)
}

// encodeArgs turns validated arguments into wire values: buffers become hex
// text and integers become numbers.
func encodeArgs(op catalog.Op, args []any) ([]domain.Value, error) {
	out := make([]domain.Value, len(args))
	for i, p := range op.Params {
		if p.IsBuffer() {
			s, err := codec.EnsureHex(args[i])
			if err != nil {
				return nil, err
			}
			out[i] = domain.Text(s)
			continue
		}
		n, ok := validate.ToUint(args[i])
		if !ok {
			return nil, domain.NewError(domain.KindType, p.Name, "%s must be a non-negative integer", p.Name)
		}
		out[i] = domain.Number(n)
	}
	return out, nil
}

// invoke sends one request to the backend. done fires once even if the
// backend replies twice; later replies are dropped.
func (c *Client) invoke(ctx context.Context, op catalog.Op, args []domain.Value, done Completion) {
	start := time.Now()
	c.metrics.DispatchStarted()

	var once sync.Once
	finish := func(res domain.Result, err error, outcome string) {
		once.Do(func() {
			elapsed := time.Since(start)
			c.metrics.DispatchFinished(op.Name, outcome, elapsed)
			c.logger.Debug().
				Str("op", op.Name).
				Int("args", len(args)).
				Str("outcome", outcome).
				Dur("elapsed", elapsed).
				Msg("dispatch")
			done(res, err)
		})
	}

	c.backend.Exec(ctx, domain.Request{Op: op.Name, Args: args},
		func(reply domain.Reply) {
			res, err := Rehydrate(op.Result, reply)
			if err != nil {
				finish(domain.Result{}, err, observability.OutcomeMalformed)
				return
			}
			finish(res, nil, observability.OutcomeOK)
		},
		func(err error) {
			finish(domain.Result{}, err, observability.OutcomeError)
		},
	)
}
