package ws_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sodiumbridge/internal/backend/local"
	"sodiumbridge/internal/bridge"
	"sodiumbridge/internal/catalog"
	"sodiumbridge/internal/domain"
	"sodiumbridge/internal/transport"
	"sodiumbridge/internal/transport/ws"
)

type backendFunc func(context.Context, domain.Request, func(domain.Reply), func(error))

func (f backendFunc) Exec(ctx context.Context, req domain.Request, success func(domain.Reply), failure func(error)) {
	f(ctx, req, success, failure)
}

func dial(t *testing.T, backend domain.Backend) *ws.Client {
	t.Helper()
	srv := httptest.NewServer(ws.NewServer(backend, zerolog.Nop(), 0))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, err := ws.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), nil, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func await(t *testing.T, start func(bridge.Completion)) (domain.Result, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return bridge.Await(ctx, start)
}

func TestWS_SecretboxRoundTrip(t *testing.T) {
	conn := dial(t, local.New(local.Config{}, zerolog.Nop(), nil))
	c := bridge.New(conn, zerolog.Nop(), nil)

	nonce := bytes.Repeat([]byte{6}, 24)
	key := bytes.Repeat([]byte{7}, 32)
	sealed, err := await(t, func(done bridge.Completion) { c.SecretboxEasy([]byte("over ws"), nonce, key, done) })
	require.NoError(t, err)

	opened, err := await(t, func(done bridge.Completion) { c.SecretboxOpenEasy(sealed.Buffer, nonce, key, done) })
	require.NoError(t, err)
	require.Equal(t, "over ws", string(opened.Buffer))

	_, err = await(t, func(done bridge.Completion) { c.SecretboxOpenEasy(sealed.Buffer[1:], nonce, key, done) })
	var remote *transport.RemoteError
	require.True(t, errors.As(err, &remote))
	require.Equal(t, "decryption failed", err.Error())
}

func TestWS_RepliesOutOfOrder(t *testing.T) {
	gate := make(chan struct{})
	backend := backendFunc(func(_ context.Context, req domain.Request, success func(domain.Reply), _ func(error)) {
		switch req.Op {
		case catalog.OpSignEd25519SkToSeed:
			go func() {
				<-gate
				success(domain.ScalarReply(domain.Text("aa")))
			}()
		default:
			success(domain.ScalarReply(domain.Text("bb")))
			close(gate)
		}
	})
	c := bridge.New(dial(t, backend), zerolog.Nop(), nil)

	var (
		mu    sync.Mutex
		order []string
		got   = map[string][]byte{}
		wg    sync.WaitGroup
	)
	record := func(name string) bridge.Completion {
		return func(res domain.Result, err error) {
			defer wg.Done()
			assert.NoError(t, err)
			mu.Lock()
			order = append(order, name)
			got[name] = res.Buffer
			mu.Unlock()
		}
	}

	wg.Add(2)
	sk := make([]byte, 64)
	c.SignEd25519SkToSeed(sk, record("seed"))
	c.SignEd25519SkToPk(sk, record("pk"))

	waitOrFail(t, &wg)
	require.Equal(t, []string{"pk", "seed"}, order)
	require.Equal(t, []byte{0xaa}, got["seed"])
	require.Equal(t, []byte{0xbb}, got["pk"])
}

func TestWS_CloseFailsPending(t *testing.T) {
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })
	backend := backendFunc(func(_ context.Context, _ domain.Request, success func(domain.Reply), _ func(error)) {
		go func() {
			<-release
			success(domain.ScalarReply(domain.Text("")))
		}()
	})
	conn := dial(t, backend)

	errc := make(chan error, 2)
	for i := 0; i < 2; i++ {
		conn.Exec(context.Background(), domain.Request{Op: catalog.OpSignKeypair},
			func(domain.Reply) { errc <- nil },
			func(err error) { errc <- err })
	}
	require.NoError(t, conn.Close())

	for i := 0; i < 2; i++ {
		select {
		case err := <-errc:
			require.ErrorIs(t, err, transport.ErrClosed)
		case <-time.After(5 * time.Second):
			t.Fatal("pending call not failed")
		}
	}

	// later calls fail straight away
	var err error
	conn.Exec(context.Background(), domain.Request{Op: catalog.OpSignKeypair},
		func(domain.Reply) {}, func(e error) { err = e })
	require.ErrorIs(t, err, transport.ErrClosed)
}

func TestWS_ContextEndsCall(t *testing.T) {
	backend := backendFunc(func(context.Context, domain.Request, func(domain.Reply), func(error)) {})
	conn := dial(t, backend)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	conn.Exec(ctx, domain.Request{Op: catalog.OpSignKeypair},
		func(domain.Reply) { errc <- nil },
		func(err error) { errc <- err })
	cancel()

	select {
	case err := <-errc:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("call not cancelled")
	}
}

func waitOrFail(t *testing.T, wg *sync.WaitGroup) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("completions did not arrive")
	}
}

func TestWS_OriginPolicy(t *testing.T) {
	backend := local.New(local.Config{}, zerolog.Nop(), nil)

	tests := []struct {
		name    string
		allowed []string
		origin  func(srvURL string) string
		ok      bool
	}{
		{"no origin header", nil, func(string) string { return "" }, true},
		{"same origin", nil, func(u string) string { return u }, true},
		{"foreign origin rejected by default", nil, func(string) string { return "http://evil.example" }, false},
		{"foreign origin listed", []string{"http://app.example/"}, func(string) string { return "http://app.example" }, true},
		{"other origin not listed", []string{"http://app.example"}, func(string) string { return "http://evil.example" }, false},
		{"wildcard", []string{"*"}, func(string) string { return "http://evil.example" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(ws.NewServer(backend, zerolog.Nop(), 0, tt.allowed...))
			defer srv.Close()

			header := http.Header{}
			if o := tt.origin(srv.URL); o != "" {
				header.Set("Origin", o)
			}
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			c, err := ws.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), header, zerolog.Nop())
			if !tt.ok {
				require.ErrorIs(t, err, websocket.ErrBadHandshake)
				return
			}
			require.NoError(t, err)
			require.NoError(t, c.Close())
		})
	}
}
