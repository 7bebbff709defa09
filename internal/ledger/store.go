// internal/ledger/store.go
//
// Round ledger queries.
// Responsibilities:
//   - RecordRound: one row per completed round (session.Recorder).
//   - Summary: round counts by mode and outcome for /stats.
//   - History: one session's rounds, oldest first.

package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/robalobadob/guessbot/internal/game"
	"github.com/robalobadob/guessbot/internal/session"
)

// Store records completed rounds. It implements session.Recorder.
type Store struct{ db *sql.DB }

var _ session.Recorder = (*Store)(nil)

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// RecordRound inserts one completed round.
func (s *Store) RecordRound(ctx context.Context, sessionID string, rec session.Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO rounds(session_id, mode, outcome, finished_at) VALUES(?,?,?,?)`,
		sessionID, string(rec.Mode), string(rec.Outcome), rec.At.UTC().Format(time.RFC3339Nano),
	)
	return err
}

// SummaryRow counts rounds for one mode/outcome pair.
type SummaryRow struct {
	Mode    game.Mode       `json:"mode"`
	Outcome session.Outcome `json:"outcome"`
	Rounds  int             `json:"rounds"`
}

// Summary aggregates every recorded round by mode and outcome.
func (s *Store) Summary(ctx context.Context) ([]SummaryRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT mode, outcome, COUNT(1)
		FROM rounds
		GROUP BY mode, outcome
		ORDER BY mode, outcome`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []SummaryRow{}
	for rows.Next() {
		var r SummaryRow
		if err := rows.Scan(&r.Mode, &r.Outcome, &r.Rounds); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// History returns a session's rounds, oldest first. Default limit is 50.
func (s *Store) History(ctx context.Context, sessionID string, limit int) ([]session.Record, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT mode, outcome, finished_at
		FROM rounds
		WHERE session_id=?
		ORDER BY id ASC
		LIMIT ?`, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []session.Record{}
	for rows.Next() {
		var (
			r  session.Record
			at string
		)
		if err := rows.Scan(&r.Mode, &r.Outcome, &at); err != nil {
			return nil, err
		}
		if r.At, err = time.Parse(time.RFC3339Nano, at); err != nil {
			return nil, fmt.Errorf("parse finished_at %q: %w", at, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
