// internal/httpserver/routes_sessions.go
//
// HTTP routes for playing sessions.
//   - POST /sessions                 → create a session at the menu, issue its token
//   - GET  /sessions/current         → current prompt without consuming input
//   - POST /sessions/current/turn    → submit one answer
//   - GET  /sessions/current/history → completed rounds from the ledger
//
// Turn errors: malformed bodies are 400, answers that do not fit the current
// phase are 409, an expired session is 404.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/guessbot/internal/game"
	"github.com/robalobadob/guessbot/internal/session"
	"github.com/robalobadob/guessbot/internal/store"
)

var errBadTurn = errors.New("bad turn")

// mountSessions registers the /sessions routes.
func (s *Server) mountSessions() {
	s.r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleNewSession)
		r.Group(func(r chi.Router) {
			r.Use(s.requireSession)
			r.Get("/current", s.handleCurrent)
			r.Post("/current/turn", s.handleTurn)
			r.Get("/current/history", s.handleHistory)
		})
	})
}

type newSessionRes struct {
	SessionID string         `json:"sessionId"`
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expiresAt"`
	State     session.Output `json:"state"`
}

// handleNewSession creates a session sitting at the menu.
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	st := s.ctrl.NewState(s.newID())
	if err := s.store.Create(r.Context(), st); err != nil {
		log.Error().Err(err).Msg("create session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	tok, exp, err := s.tokens.sign(st.ID)
	if err != nil {
		log.Error().Err(err).Msg("sign session token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	setSessionCookie(w, r, tok, exp)
	log.Info().Str("session", st.ID).Msg("session created")
	writeJSON(w, http.StatusCreated, newSessionRes{
		SessionID: st.ID,
		Token:     tok,
		ExpiresAt: exp.UTC(),
		State:     s.ctrl.Current(st),
	})
}

// handleCurrent replays the last output of the session.
func (s *Server) handleCurrent(w http.ResponseWriter, r *http.Request) {
	var out session.Output
	err := s.store.View(r.Context(), sessionID(r.Context()), func(st *session.State) error {
		out = s.ctrl.Current(st)
		return nil
	})
	if err != nil {
		s.writeTurnError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// turnReq is the POST /sessions/current/turn payload. Only the field matching
// Type is read.
type turnReq struct {
	Type    string `json:"type"` // start|compare|attribute|confirm|secret|retry|abandon
	Mode    string `json:"mode"`
	Greater *bool  `json:"greater"`
	Answer  string `json:"answer"`
	Confirm *bool  `json:"confirm"`
	Secret  string `json:"secret"`
	Retry   *bool  `json:"retry"`
}

// input converts the payload into a controller Input.
func (req turnReq) input() (session.Input, error) {
	flag := func(name string, v *bool) (bool, error) {
		if v == nil {
			return false, fmt.Errorf("%w: %q is required", errBadTurn, name)
		}
		return *v, nil
	}
	switch session.InputKind(req.Type) {
	case session.InputStart:
		return session.Start(game.Mode(req.Mode)), nil
	case session.InputCompare:
		v, err := flag("greater", req.Greater)
		return session.Compare(v), err
	case session.InputAttribute:
		a, err := game.ParseAnswer(req.Answer)
		if err != nil {
			return session.Input{}, fmt.Errorf("%w: %w", errBadTurn, err)
		}
		return session.Attribute(a), nil
	case session.InputConfirm:
		v, err := flag("confirm", req.Confirm)
		return session.Confirm(v), err
	case session.InputSecret:
		return session.Secret(req.Secret), nil
	case session.InputRetry:
		v, err := flag("retry", req.Retry)
		return session.Retry(v), err
	case session.InputAbandon:
		return session.Abandon(), nil
	}
	return session.Input{}, fmt.Errorf("%w: unknown type %q", errBadTurn, req.Type)
}

// handleTurn applies one answer to the session under the store's write lock.
func (s *Server) handleTurn(w http.ResponseWriter, r *http.Request) {
	var req turnReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	in, err := req.input()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var out session.Output
	err = s.store.Update(r.Context(), sessionID(r.Context()), func(st *session.State) error {
		var err error
		out, err = s.ctrl.Turn(r.Context(), st, in)
		return err
	})
	if err != nil {
		s.writeTurnError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// handleHistory lists the session's completed rounds. ?limit= caps the list.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "bad_limit")
			return
		}
		limit = n
	}
	rows := []session.Record{}
	if s.ledger != nil {
		var err error
		if rows, err = s.ledger.History(r.Context(), sessionID(r.Context()), limit); err != nil {
			log.Error().Err(err).Msg("ledger history")
			writeError(w, http.StatusInternalServerError, "db_error")
			return
		}
	}
	writeJSON(w, http.StatusOK, rows)
}

// writeTurnError maps controller and store errors onto status codes.
func (s *Server) writeTurnError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "session_not_found")
	case errors.Is(err, session.ErrUnexpectedInput):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, session.ErrEmptySecret), errors.Is(err, game.ErrInvalidAnswer):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		writeError(w, http.StatusServiceUnavailable, "timeout")
	default:
		log.Error().Err(err).Msg("session turn")
		writeError(w, http.StatusInternalServerError, "turn_failed")
	}
}
