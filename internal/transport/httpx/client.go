package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"sodiumbridge/internal/domain"
	"sodiumbridge/internal/transport"
)

// Client is a domain.Backend that forwards every call to an httpx Server.
type Client struct {
	Base string
	HTTP *http.Client
}

var _ domain.Backend = (*Client)(nil)

// NewClient returns a Client for base. A nil hc selects http.DefaultClient.
func NewClient(base string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{Base: base, HTTP: hc}
}

// Exec posts req on its own goroutine and replies through success or failure.
func (c *Client) Exec(ctx context.Context, req domain.Request, success func(domain.Reply), failure func(error)) {
	go func() {
		reply, err := c.post(ctx, req)
		if err != nil {
			failure(err)
			return
		}
		success(reply)
	}()
}

func (c *Client) post(ctx context.Context, in domain.Request) (domain.Reply, error) {
	if in.Args == nil {
		in.Args = []domain.Value{}
	}
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return domain.Reply{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+ExecPath, buf)
	if err != nil {
		return domain.Reply{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return domain.Reply{}, err
	}
	defer resp.Body.Close()

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil && err != io.EOF {
		return domain.Reply{}, fmt.Errorf("httpx post %s: %s: %w", in.Op, resp.Status, err)
	}
	if resp.StatusCode/100 != 2 {
		msg := out.Error
		if msg == "" {
			msg = resp.Status
		}
		return domain.Reply{}, &transport.RemoteError{Op: in.Op, Status: resp.StatusCode, Message: msg}
	}
	if out.Result == nil {
		return domain.Reply{}, fmt.Errorf("httpx post %s: response has no result", in.Op)
	}
	return *out.Result, nil
}
