package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/robalobadob/guessbot/internal/session"
	"github.com/robalobadob/guessbot/internal/words"
)

func newModel(t *testing.T) Model {
	t.Helper()
	table, err := words.Default()
	if err != nil {
		t.Fatalf("words: %v", err)
	}
	ctrl, err := session.NewController(session.Options{
		Vocabulary: table.Vocabulary(),
		Questions:  table.Questions(),
		Logger:     zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("controller: %v", err)
	}
	return New(context.Background(), ctrl, ctrl.NewState("tui"))
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestInputFor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		phase session.Phase
		key   string
		want  session.InputKind
		ok    bool
	}{
		{session.PhaseMenu, "1", session.InputStart, true},
		{session.PhaseMenu, "2", session.InputStart, true},
		{session.PhaseMenu, "esc", "", false},
		{session.PhaseMenu, "y", "", false},
		{session.PhaseComparing, "y", session.InputCompare, true},
		{session.PhaseComparing, "m", "", false},
		{session.PhaseComparing, "esc", session.InputAbandon, true},
		{session.PhaseQuestioning, "M", session.InputAttribute, true},
		{session.PhaseQuestioning, "x", "", false},
		{session.PhaseUniqueGuessPending, "n", session.InputConfirm, true},
		{session.PhaseForcedGuessPending, "y", session.InputConfirm, true},
		{session.PhaseExhaustedPending, "n", session.InputRetry, true},
	}
	for _, tc := range cases {
		in, ok := inputFor(tc.phase, tc.key)
		if ok != tc.ok || in.Kind != tc.want {
			t.Fatalf("inputFor(%s, %q) = %v %v, want %v %v", tc.phase, tc.key, in.Kind, ok, tc.want, tc.ok)
		}
	}
}

func TestModel_NumberRound(t *testing.T) {
	t.Parallel()

	// Secret 37 in 1..50.
	m := press(t, newModel(t), "1", "y", "n", "y", "y", "n", "y")
	if m.out.Phase != session.PhaseMenu {
		t.Fatalf("phase = %s, want menu", m.out.Phase)
	}
	if m.st.Tally.NumberGames != 1 {
		t.Fatalf("number games = %d", m.st.Tally.NumberGames)
	}
	if !strings.Contains(m.View(), "Your number is 37! I guessed it!") {
		t.Fatalf("view missing result:\n%s", m.View())
	}
}

func TestModel_WordRoundWithSecret(t *testing.T) {
	t.Parallel()

	m := press(t, newModel(t), "2")
	if m.out.Phase != session.PhaseAwaitingSecret {
		t.Fatalf("phase = %s", m.out.Phase)
	}

	// Enter on an empty field is rejected and keeps the phase.
	m = press(t, m, "enter")
	if m.err == "" || m.out.Phase != session.PhaseAwaitingSecret {
		t.Fatalf("empty secret accepted: err=%q phase=%s", m.err, m.out.Phase)
	}

	m = press(t, m, "t", "i", "g", "e", "r", "enter")
	if m.out.Phase != session.PhaseQuestioning {
		t.Fatalf("phase = %s", m.out.Phase)
	}
	echo := m.transcript[len(m.transcript)-1]
	if !strings.HasSuffix(strings.TrimSpace(echo), "*****") {
		t.Fatalf("secret should be masked in the transcript, got %q", echo)
	}

	m = press(t, m, "esc")
	if m.out.Phase != session.PhaseMenu || m.st.Tally.WordGames != 0 {
		t.Fatalf("abandon: phase=%s word games=%d", m.out.Phase, m.st.Tally.WordGames)
	}
}

func TestModel_QuitFromMenuOnly(t *testing.T) {
	t.Parallel()

	m := press(t, newModel(t), "1", "q")
	if m.quitting {
		t.Fatal("q should not quit during a round")
	}
	m = press(t, m, "esc", "q")
	if !m.quitting {
		t.Fatal("q should quit from the menu")
	}
}
