package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

const defaultTimeout = 15 * time.Second

// Server is the booking API router. Handlers are attached with MountHandlers.
type Server struct{ mux *chi.Mux }

// Options tunes the middleware stack. Zero RPS turns rate limiting off.
type Options struct {
	RPS     float64
	Burst   int
	Timeout time.Duration
}

func New(o Options) *Server {
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	m := chi.NewRouter()

	// RealIP must precede Observe for the access log to carry the client address.
	m.Use(chimw.RealIP, chimw.RequestID, Observe(log.Logger), chimw.Recoverer)
	m.Use(RateLimit(o.RPS, o.Burst), Timeout(o.Timeout))

	return &Server{mux: m}
}

func (s *Server) Mux() http.Handler { return s.mux }

// Mount attaches an extra handler such as /metrics.
func (s *Server) Mount(path string, h http.Handler) {
	s.mux.Handle(path, h)
}
