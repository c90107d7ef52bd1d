package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"sodiumbridge/internal/domain"
)

const (
	// Path is where the daemon mounts the WebSocket endpoint.
	Path = "/ws"

	writeTimeout = 5 * time.Second
)

// Server upgrades HTTP requests and serves a domain.Backend on each connection.
type Server struct {
	backend    domain.Backend
	logger     zerolog.Logger
	upgrader   websocket.Upgrader
	maxMessage int64
}

// NewServer returns a Server for backend. maxMessage <= 0 leaves frames unbounded.
//
// Browsers may only connect from the server's own origin unless origins lists
// others; "*" admits any origin. Clients that send no Origin header, such as
// Dial, are always accepted.
func NewServer(backend domain.Backend, logger zerolog.Logger, maxMessage int64, origins ...string) *Server {
	return &Server{
		backend: backend,
		logger:  logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: checkOrigin(origins),
		},
		maxMessage: maxMessage,
	}
}

// checkOrigin returns nil, gorilla's same-origin check, when no extra origins
// are allowed.
func checkOrigin(origins []string) func(*http.Request) bool {
	if len(origins) == 0 {
		return nil
	}
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		allowed[strings.ToLower(strings.TrimRight(o, "/"))] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if u, err := url.Parse(origin); err == nil && strings.EqualFold(u.Host, r.Host) {
			return true
		}
		_, ok := allowed[strings.ToLower(origin)]
		return ok
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("ws upgrade failed")
		return
	}
	s.serve(r.Context(), conn)
}

// serve reads frames until the connection ends. Calls run concurrently and
// answer in completion order.
func (s *Server) serve(ctx context.Context, conn *websocket.Conn) {
	connID := uuid.NewString()
	logger := s.logger.With().Str("conn", connID).Logger()
	logger.Debug().Str("remote", conn.RemoteAddr().String()).Msg("ws connected")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer conn.Close()
	if s.maxMessage > 0 {
		conn.SetReadLimit(s.maxMessage)
	}

	var writeMu sync.Mutex
	write := func(f responseFrame) {
		writeMu.Lock()
		defer writeMu.Unlock()
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(f); err != nil {
			logger.Debug().Err(err).Str("id", f.ID).Msg("ws write failed")
		}
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			logger.Debug().Err(err).Msg("ws disconnected")
			return
		}
		var req requestFrame
		if err := json.Unmarshal(data, &req); err != nil || req.Op == "" {
			msg := "malformed frame"
			if err != nil {
				msg += ": " + err.Error()
			}
			write(responseFrame{ID: req.ID, Error: msg})
			continue
		}

		id, op := req.ID, req.Op
		s.backend.Exec(ctx, domain.Request{Op: op, Args: req.Args},
			func(reply domain.Reply) {
				write(responseFrame{ID: id, Result: &reply})
			},
			func(err error) {
				logger.Debug().Str("op", op).Err(err).Msg("ws exec failed")
				write(responseFrame{ID: id, Error: err.Error()})
			},
		)
	}
}
