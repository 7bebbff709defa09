// internal/game/types.go
//
// Core type definitions for the guessing engines.
// Defines:
//   - Mode: which engine a round belongs to.
//   - Answer: a yes/no/maybe reply to an attribute question.
//   - Directive: what an engine tells its caller after a turn.
//   - Range, Step, Question, Outcome: engine inputs and results.
//   - Sentinel errors shared by both engines.

package game

import "errors"

// Mode selects the engine that receives the next turn.
type Mode string

const (
	ModeMenu   Mode = "menu"
	ModeNumber Mode = "number"
	ModeWord   Mode = "word"
)

// Answer is the player's reply to an attribute question.
type Answer string

const (
	AnswerYes   Answer = "yes"
	AnswerNo    Answer = "no"
	AnswerMaybe Answer = "maybe"
)

// ParseAnswer accepts "yes"/"no"/"maybe" and their one-letter forms, any case.
func ParseAnswer(s string) (Answer, error) {
	switch normalize(s) {
	case "yes", "y":
		return AnswerYes, nil
	case "no", "n":
		return AnswerNo, nil
	case "maybe", "m":
		return AnswerMaybe, nil
	}
	return "", ErrInvalidAnswer
}

// DirectiveKind is the engine's instruction to the session controller.
type DirectiveKind string

const (
	DirectiveContinue     DirectiveKind = "continue"
	DirectiveProposeGuess DirectiveKind = "propose_guess"
	DirectiveExhausted    DirectiveKind = "exhausted"
	DirectiveConverged    DirectiveKind = "converged"
)

// Directive carries the kind plus whichever value the kind needs.
type Directive struct {
	Kind   DirectiveKind `json:"kind"`
	Value  int           `json:"value,omitempty"`  // midpoint (continue) or secret (converged), number rounds
	Word   string        `json:"word,omitempty"`   // proposed guess, word rounds
	Forced bool          `json:"forced,omitempty"` // guess forced by the question budget
}

// Range is an inclusive bound on the secret number. Low <= High.
type Range struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// Step is the result of one comparison turn.
// Value is the next midpoint, or the secret itself once Converged.
type Step struct {
	Converged bool
	Value     int
}

// Predicate is a boolean test over a vocabulary word.
// An error means the entry could not be evaluated for that word.
type Predicate func(word string) (bool, error)

// Question is one row of the question table.
type Question struct {
	ID        string
	Text      string
	Predicate Predicate
}

// OutcomeKind classifies the candidate set after a word turn.
type OutcomeKind string

const (
	OutcomeContinue  OutcomeKind = "continue"
	OutcomeUnique    OutcomeKind = "unique"
	OutcomeExhausted OutcomeKind = "exhausted"
)

// Outcome is the result of one attribute turn or a forced final guess.
type Outcome struct {
	Kind      OutcomeKind
	Word      string   // set when Kind == OutcomeUnique
	Remaining []string // candidates left after the turn
	Dropped   []string // words whose predicate failed during the turn
}

var (
	ErrInvalidBounds       = errors.New("invalid bounds: min greater than max")
	ErrInconsistentAnswers = errors.New("inconsistent answers: range collapsed")
	ErrNoMoreQuestions     = errors.New("no more questions")
	ErrInvalidAnswer       = errors.New("answer must be yes, no or maybe")
)
