// internal/httpserver/server.go
//
// HTTP server wiring for the guessing bot.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/stats", "/debug/words".
//   - Session endpoints: POST /sessions, then token-gated /sessions/current/*.
//
// Notes:
//   - Each session is one player's State; turns on it are serialized by the store.
//   - The session token is an HS256 JWT whose "sid" claim names the session. It is
//     accepted from the Authorization header or the session cookie.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/guessbot/internal/ledger"
	"github.com/robalobadob/guessbot/internal/session"
	"github.com/robalobadob/guessbot/internal/store"
	"github.com/robalobadob/guessbot/internal/words"
)

// Ledger is the read side of the round ledger.
type Ledger interface {
	Summary(ctx context.Context) ([]ledger.SummaryRow, error)
	History(ctx context.Context, sessionID string, limit int) ([]session.Record, error)
}

// Options configures a Server. Controller, Sessions and Words are required.
type Options struct {
	Controller *session.Controller
	Sessions   store.Store
	Ledger     Ledger
	Words      *words.Table

	JWTSecret      string
	SessionTTL     time.Duration
	ClientOrigin   string
	RequestTimeout time.Duration

	// NewID mints session IDs.
	NewID func() string
}

// Server bundles the router with the session controller and stores.
type Server struct {
	r      *chi.Mux
	ctrl   *session.Controller
	store  store.Store
	ledger Ledger
	words  *words.Table
	tokens tokens
	newID  func() string
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) *Server {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "http://localhost:5173"
	}
	s := &Server{
		r:      chi.NewRouter(),
		ctrl:   opts.Controller,
		store:  opts.Sessions,
		ledger: opts.Ledger,
		words:  opts.Words,
		tokens: newTokens(opts.JWTSecret, opts.SessionTTL),
		newID:  opts.NewID,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                    // add X-Request-ID
	s.r.Use(chimw.RealIP)                       // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                    // recover from panics
	s.r.Use(chimw.Timeout(opts.RequestTimeout)) // bound handler time
	s.r.Use(jsonContentType)                    // default JSON responses
	s.r.Use(cors(opts.ClientOrigin))            // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service": "guessbot",
			"endpoints": []string{
				"/health", "POST /sessions", "/sessions/current",
				"POST /sessions/current/turn", "/sessions/current/history", "/stats",
			},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.mountSessions()
	s.r.Get("/stats", s.handleStats)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	// Debug: table sizes
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		v, q := s.words.Stats()
		writeJSON(w, http.StatusOK, map[string]int{"vocabulary": v, "questions": q})
	})

	return s
}

// Start serves HTTP on addr until ctx is canceled, then drains in-flight requests.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// handleStats reports the ledger summary by mode and outcome.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	rows := []ledger.SummaryRow{}
	if s.ledger != nil {
		var err error
		if rows, err = s.ledger.Summary(r.Context()); err != nil {
			log.Error().Err(err).Msg("ledger summary")
			writeError(w, http.StatusInternalServerError, "db_error")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"rounds": rows})
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------- util --------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
