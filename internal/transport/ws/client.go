package ws

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"sodiumbridge/internal/domain"
	"sodiumbridge/internal/transport"
)

type pendingCall struct {
	op      string
	success func(domain.Reply)
	failure func(error)
	done    chan struct{}
}

// Client is a domain.Backend over one WebSocket connection.
type Client struct {
	conn   *websocket.Conn
	logger zerolog.Logger

	writeMu sync.Mutex

	mu      sync.Mutex
	pending map[string]*pendingCall
	err     error
}

var _ domain.Backend = (*Client)(nil)

// Dial connects to a ws Server at url.
func Dial(ctx context.Context, url string, header http.Header, logger zerolog.Logger) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, header)
	if err != nil {
		return nil, fmt.Errorf("ws dial %s: %w", url, err)
	}
	c := &Client{
		conn:    conn,
		logger:  logger,
		pending: make(map[string]*pendingCall),
	}
	go c.readLoop()
	return c, nil
}

// Exec sends req and returns at once; the reply is delivered by the read loop.
// If ctx ends first the call fails with ctx.Err() and a late reply is dropped.
func (c *Client) Exec(ctx context.Context, req domain.Request, success func(domain.Reply), failure func(error)) {
	id := uuid.NewString()
	call := &pendingCall{op: req.Op, success: success, failure: failure, done: make(chan struct{})}

	c.mu.Lock()
	if c.err != nil {
		err := c.err
		c.mu.Unlock()
		failure(err)
		return
	}
	c.pending[id] = call
	c.mu.Unlock()

	args := req.Args
	if args == nil {
		args = []domain.Value{}
	}
	c.writeMu.Lock()
	err := c.conn.WriteJSON(requestFrame{ID: id, Op: req.Op, Args: args})
	c.writeMu.Unlock()
	if err != nil {
		if p := c.take(id); p != nil {
			p.failure(fmt.Errorf("%w: %v", transport.ErrClosed, err))
		}
		return
	}

	if ctx.Done() != nil {
		go func() {
			select {
			case <-ctx.Done():
				if p := c.take(id); p != nil {
					p.failure(ctx.Err())
				}
			case <-call.done:
			}
		}()
	}
}

// take removes and returns the pending call id, or nil if it already finished.
func (c *Client) take(id string) *pendingCall {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.pending[id]
	if !ok {
		return nil
	}
	delete(c.pending, id)
	close(p.done)
	return p
}

func (c *Client) readLoop() {
	for {
		var f responseFrame
		if err := c.conn.ReadJSON(&f); err != nil {
			c.fail(err)
			return
		}
		p := c.take(f.ID)
		if p == nil {
			c.logger.Debug().Str("id", f.ID).Msg("ws reply for unknown call")
			continue
		}
		switch {
		case f.Error != "":
			p.failure(&transport.RemoteError{Op: p.op, Message: f.Error})
		case f.Result == nil:
			p.failure(fmt.Errorf("ws reply for %s has no result", p.op))
		default:
			p.success(*f.Result)
		}
	}
}

// fail marks the client closed and fails every pending call once.
func (c *Client) fail(cause error) {
	c.mu.Lock()
	if c.err == nil {
		c.err = fmt.Errorf("%w: %v", transport.ErrClosed, cause)
	}
	err := c.err
	pending := c.pending
	c.pending = make(map[string]*pendingCall)
	c.mu.Unlock()

	for _, p := range pending {
		close(p.done)
		p.failure(err)
	}
}

// Close closes the connection. Pending calls fail with transport.ErrClosed.
func (c *Client) Close() error {
	c.writeMu.Lock()
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.writeMu.Unlock()
	return c.conn.Close()
}
