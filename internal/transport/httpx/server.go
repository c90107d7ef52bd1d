package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"sodiumbridge/internal/domain"
	"sodiumbridge/internal/transport"
)

const (
	// ExecPath is the single call endpoint.
	ExecPath = "/exec"
	// HealthPath answers 200 while the server is up.
	HealthPath = "/healthz"

	defaultMaxBody = 32 << 20
)

type response struct {
	Result *domain.Reply `json:"result,omitempty"`
	Error  string        `json:"error,omitempty"`
}

// Server exposes a domain.Backend over HTTP.
type Server struct {
	backend domain.Backend
	logger  zerolog.Logger
	maxBody int64
}

// NewServer returns a Server for backend. maxBody <= 0 selects 32 MiB.
func NewServer(backend domain.Backend, logger zerolog.Logger, maxBody int64) *Server {
	if maxBody <= 0 {
		maxBody = defaultMaxBody
	}
	return &Server{backend: backend, logger: logger, maxBody: maxBody}
}

// Routes registers the exec and health endpoints on mux.
func (s *Server) Routes(mux *http.ServeMux) {
	mux.HandleFunc("POST "+ExecPath, s.handleExec)
	mux.HandleFunc("GET "+HealthPath, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
}

// Handler returns a mux serving only this server's routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.Routes(mux)
	return mux
}

func (s *Server) handleExec(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer r.Body.Close()

	var req domain.Request
	body := http.MaxBytesReader(w, r.Body, s.maxBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		writeJSON(w, status, response{Error: "malformed request: " + err.Error()})
		return
	}
	if req.Op == "" {
		writeJSON(w, http.StatusBadRequest, response{Error: "malformed request: missing op"})
		return
	}

	reply, err := transport.Do(r.Context(), s.backend, req)
	event := s.logger.Debug().Str("op", req.Op).Dur("duration", time.Since(start))
	if err != nil {
		event.Err(err).Msg("http_exec")
		writeJSON(w, http.StatusUnprocessableEntity, response{Error: err.Error()})
		return
	}
	event.Msg("http_exec")
	writeJSON(w, http.StatusOK, response{Result: &reply})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
