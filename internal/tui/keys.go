// internal/tui/keys.go
//
// Key bindings per session phase and the hint line shown for each.

package tui

import (
	"github.com/robalobadob/guessbot/internal/game"
	"github.com/robalobadob/guessbot/internal/session"
)

// keyHints lists the keys each phase accepts.
var keyHints = map[session.Phase]string{
	session.PhaseMenu:               "1 number game • 2 word game • q quit",
	session.PhaseComparing:          "y yes • n no • esc abandon",
	session.PhaseAwaitingSecret:     "enter submit • esc abandon",
	session.PhaseQuestioning:        "y yes • n no • m maybe • esc abandon",
	session.PhaseUniqueGuessPending: "y correct • n wrong • esc abandon",
	session.PhaseForcedGuessPending: "y correct • n wrong • esc abandon",
	session.PhaseExhaustedPending:   "y retry • n give up • esc abandon",
}

// inputFor maps a single key press to a controller input for the given phase.
// The secret-word phase reads the text field instead and is not handled here.
func inputFor(phase session.Phase, key string) (session.Input, bool) {
	if key == "esc" && phase != session.PhaseMenu {
		return session.Abandon(), true
	}
	switch phase {
	case session.PhaseMenu:
		switch key {
		case "1":
			return session.Start(game.ModeNumber), true
		case "2":
			return session.Start(game.ModeWord), true
		}
	case session.PhaseComparing:
		if yes, ok := yesNo(key); ok {
			return session.Compare(yes), true
		}
	case session.PhaseQuestioning:
		if a, err := game.ParseAnswer(key); err == nil {
			return session.Attribute(a), true
		}
	case session.PhaseUniqueGuessPending, session.PhaseForcedGuessPending:
		if yes, ok := yesNo(key); ok {
			return session.Confirm(yes), true
		}
	case session.PhaseExhaustedPending:
		if yes, ok := yesNo(key); ok {
			return session.Retry(yes), true
		}
	}
	return session.Input{}, false
}

func yesNo(key string) (bool, bool) {
	switch key {
	case "y", "Y":
		return true, true
	case "n", "N":
		return false, true
	}
	return false, false
}
