// internal/session/state.go
//
// Session state owned by a single front end (terminal or HTTP session).
// Defines:
//   - Phase: the controller's fine-grained position inside a round.
//   - State: engine state, sealed secret word and tally for one player.
//   - Tally/Record: counters and history of completed rounds.
//   - Input: one externally supplied answer per turn.
//   - Output: prompt, directive and tally snapshot after a turn.

package session

import (
	"slices"
	"time"

	"github.com/robalobadob/guessbot/internal/game"
	"github.com/robalobadob/guessbot/internal/secret"
)

// Phase is where the controller sits inside the active round.
type Phase string

const (
	PhaseMenu               Phase = "menu"
	PhaseComparing          Phase = "comparing"
	PhaseAwaitingSecret     Phase = "awaiting_secret"
	PhaseQuestioning        Phase = "questioning"
	PhaseUniqueGuessPending Phase = "unique_guess_pending"
	PhaseForcedGuessPending Phase = "forced_guess_pending"
	PhaseExhaustedPending   Phase = "exhausted_pending"
)

// Outcome says how a completed round ended.
// Conceded rounds are ones the player gave up on after the candidates ran out;
// they still count towards the tally.
type Outcome string

const (
	OutcomeSolved   Outcome = "solved"
	OutcomeFailed   Outcome = "failed"
	OutcomeConceded Outcome = "conceded"
)

// Record is one completed round.
type Record struct {
	Mode    game.Mode `json:"mode"`
	Outcome Outcome   `json:"outcome"`
	At      time.Time `json:"at"`
}

// Tally counts completed rounds per mode. Append-only for the life of a session.
type Tally struct {
	NumberGames int      `json:"numberGames"`
	WordGames   int      `json:"wordGames"`
	History     []Record `json:"history"`
}

func (t *Tally) add(r Record) {
	switch r.Mode {
	case game.ModeNumber:
		t.NumberGames++
	case game.ModeWord:
		t.WordGames++
	}
	t.History = append(t.History, r)
}

// Snapshot returns a copy that shares no memory with t.
func (t Tally) Snapshot() Tally {
	t.History = slices.Clone(t.History)
	if t.History == nil {
		t.History = []Record{}
	}
	return t
}

// State holds everything one player's session needs between turns.
// It has exactly one writer: the Controller, called by the owning front end.
type State struct {
	ID        string
	CreatedAt time.Time
	Mode      game.Mode
	Phase     Phase
	Tally     Tally

	number *game.Narrower
	word   *game.Eliminator
	secret secret.Box
	guess  string
	last   result
}

// result is what a single turn produced, kept so Current can replay it.
type result struct {
	directive *game.Directive
	message   string
	fault     error
}

// InputKind names the answer a turn carries.
type InputKind string

const (
	InputStart     InputKind = "start"
	InputCompare   InputKind = "compare"
	InputAttribute InputKind = "attribute"
	InputConfirm   InputKind = "confirm"
	InputSecret    InputKind = "secret"
	InputRetry     InputKind = "retry"
	InputAbandon   InputKind = "abandon"
)

// Input is one externally supplied answer. Only the field matching Kind is read.
type Input struct {
	Kind    InputKind
	Mode    game.Mode
	Greater bool
	Answer  game.Answer
	Yes     bool
	Word    string
}

// Start selects a game from the menu.
func Start(mode game.Mode) Input { return Input{Kind: InputStart, Mode: mode} }

// Compare answers "is your number greater than the midpoint?".
func Compare(isGreater bool) Input { return Input{Kind: InputCompare, Greater: isGreater} }

// Attribute answers the current word question.
func Attribute(a game.Answer) Input { return Input{Kind: InputAttribute, Answer: a} }

// Confirm answers "is this guess correct?".
func Confirm(correct bool) Input { return Input{Kind: InputConfirm, Yes: correct} }

// Secret supplies the operator's private word at the start of a word round.
func Secret(word string) Input { return Input{Kind: InputSecret, Word: word} }

// Retry answers "would you like to retry?" after the candidates ran out.
func Retry(again bool) Input { return Input{Kind: InputRetry, Yes: again} }

// Abandon leaves the active round without counting it.
func Abandon() Input { return Input{Kind: InputAbandon} }

// QuestionView is the question currently shown in a word round.
type QuestionView struct {
	Number int    `json:"number"`
	ID     string `json:"id"`
	Text   string `json:"text"`
}

// Output is what a front end renders after a turn.
type Output struct {
	SessionID  string          `json:"sessionId"`
	Mode       game.Mode       `json:"mode"`
	Phase      Phase           `json:"phase"`
	Prompt     string          `json:"prompt"`
	Directive  *game.Directive `json:"directive,omitempty"`
	Range      *game.Range     `json:"range,omitempty"`
	Bounds     *game.Range     `json:"bounds,omitempty"`
	Question   *QuestionView   `json:"question,omitempty"`
	Candidates []string        `json:"candidates,omitempty"`
	Vocabulary []string        `json:"vocabulary,omitempty"`
	Message    string          `json:"message,omitempty"`
	Fault      string          `json:"fault,omitempty"`
	Tally      Tally           `json:"tally"`

	// Err is the round fault behind Fault, for errors.Is checks.
	Err error `json:"-"`
}
