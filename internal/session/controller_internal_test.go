package session

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/robalobadob/guessbot/internal/game"
)

type countingRecorder struct{ n int }

func (r *countingRecorder) RecordRound(context.Context, string, Record) error {
	r.n++
	return nil
}

// A converged range only reaches the comparing phase through a stale state,
// e.g. one restored after the round already finished.
func TestCompareTurn_InconsistentAnswersResetRound(t *testing.T) {
	t.Parallel()

	rec := &countingRecorder{}
	c, err := NewController(Options{
		Vocabulary: []string{"cat"},
		Questions:  []game.Question{{ID: "q", Text: "Q?", Predicate: func(string) (bool, error) { return true, nil }}},
		Recorder:   rec,
		Logger:     zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	st := c.NewState("s")
	if st.number, err = game.NewNarrower(5, 5); err != nil {
		t.Fatalf("narrower: %v", err)
	}
	st.Mode, st.Phase = game.ModeNumber, PhaseComparing

	out, err := c.Turn(context.Background(), st, Compare(true))
	if err != nil {
		t.Fatalf("turn: %v", err)
	}
	if !errors.Is(out.Err, game.ErrInconsistentAnswers) || out.Fault == "" {
		t.Fatalf("fault = %q (%v), want inconsistent answers", out.Fault, out.Err)
	}
	if out.Phase != PhaseMenu || out.Mode != game.ModeMenu || st.number != nil {
		t.Fatalf("round not reset: phase=%s mode=%s", out.Phase, out.Mode)
	}
	if out.Message != "Those answers contradict each other, so I reset the round." {
		t.Fatalf("message = %q", out.Message)
	}
	if out.Tally.NumberGames != 0 || len(out.Tally.History) != 0 || rec.n != 0 {
		t.Fatalf("reset round was counted: tally=%+v recorded=%d", out.Tally, rec.n)
	}

	// The fault is replayed until the next turn.
	if again := c.Current(st); !errors.Is(again.Err, game.ErrInconsistentAnswers) {
		t.Fatalf("current err = %v", again.Err)
	}
	if _, err := c.Turn(context.Background(), st, Start(game.ModeNumber)); err != nil {
		t.Fatalf("restart: %v", err)
	}
}
