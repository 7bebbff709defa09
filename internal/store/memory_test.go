package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/robalobadob/guessbot/internal/session"
)

func TestMemory_CreateViewUpdate(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore(0)
	ctx := context.Background()
	st := &session.State{ID: "a", Phase: session.PhaseMenu, CreatedAt: time.Now()}
	if err := s.Create(ctx, st); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.Create(ctx, &session.State{ID: "a"}); err == nil {
		t.Fatal("duplicate create should fail")
	}

	if err := s.Update(ctx, "a", func(st *session.State) error {
		st.Tally.NumberGames++
		return nil
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	var got int
	if err := s.View(ctx, "a", func(st *session.State) error {
		got = st.Tally.NumberGames
		return nil
	}); err != nil {
		t.Fatalf("view: %v", err)
	}
	if got != 1 {
		t.Fatalf("number games = %d, want 1", got)
	}

	if err := s.View(ctx, "missing", func(*session.State) error { return nil }); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Update(ctx, "missing", func(*session.State) error { return nil }); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemory_UpdatesAreSerialized(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore(0)
	ctx := context.Background()
	_ = s.Create(ctx, &session.State{ID: "a"})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Update(ctx, "a", func(st *session.State) error {
				st.Tally.WordGames++
				return nil
			})
		}()
	}
	wg.Wait()

	_ = s.View(ctx, "a", func(st *session.State) error {
		if st.Tally.WordGames != 50 {
			t.Errorf("word games = %d, want 50", st.Tally.WordGames)
		}
		return nil
	})
}

func TestMemory_SlowTurnDoesNotBlockOtherSessions(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore(0)
	ctx := context.Background()
	_ = s.Create(ctx, &session.State{ID: "a"})
	_ = s.Create(ctx, &session.State{ID: "b"})

	entered := make(chan struct{})
	release := make(chan struct{})
	slow := make(chan error, 1)
	go func() {
		slow <- s.Update(ctx, "a", func(*session.State) error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered

	done := make(chan error, 1)
	go func() {
		done <- s.Update(ctx, "b", func(st *session.State) error {
			st.Tally.NumberGames++
			return nil
		})
	}()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("update b: %v", err)
		}
	case <-time.After(2 * time.Second):
		close(release)
		t.Fatal("update on b waited for the turn on a")
	}
	if err := s.View(ctx, "b", func(*session.State) error { return nil }); err != nil {
		t.Fatalf("view b: %v", err)
	}
	if err := s.Create(ctx, &session.State{ID: "c"}); err != nil {
		t.Fatalf("create c: %v", err)
	}

	close(release)
	if err := <-slow; err != nil {
		t.Fatalf("update a: %v", err)
	}
}

func TestMemory_EvictsExpiredOnCreate(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	m := &memory{sessions: map[string]*entry{}, ttl: time.Hour, now: func() time.Time { return now }}
	ctx := context.Background()
	_ = m.Create(ctx, &session.State{ID: "old", CreatedAt: now.Add(-2 * time.Hour)})
	_ = m.Create(ctx, &session.State{ID: "new", CreatedAt: now})
	if m.Len() != 1 {
		t.Fatalf("len = %d, want 1", m.Len())
	}
	if err := m.View(ctx, "old", func(*session.State) error { return nil }); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected old session evicted, got %v", err)
	}
}

func TestMemory_CanceledContext(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Create(ctx, &session.State{ID: "a"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
