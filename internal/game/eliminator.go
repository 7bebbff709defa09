// internal/game/eliminator.go
//
// Word round engine.
// Responsibilities:
//   - Keep the candidate set and the unused questions.
//   - Pick the next question, filter on yes/no/maybe answers.
//   - Report a unique, forced or exhausted outcome after each answer.

package game

import (
	"fmt"
	"slices"
)

// Eliminator narrows a fixed vocabulary with attribute questions asked in table order.
type Eliminator struct {
	vocab      []string
	table      []Question
	candidates []string
	asked      int
}

// NewEliminator starts a round over vocabulary with every word still a candidate.
// The vocabulary and table are not copied; callers must treat them as immutable.
func NewEliminator(vocabulary []string, table []Question) *Eliminator {
	e := &Eliminator{vocab: vocabulary, table: table}
	e.Reset()
	return e
}

// Reset restores the full vocabulary and clears the question counter.
func (e *Eliminator) Reset() {
	e.candidates = slices.Clone(e.vocab)
	e.asked = 0
}

// Budget is the number of questions a round may ask: min(MaxQuestions, len(table)).
func (e *Eliminator) Budget() int { return min(MaxQuestions, len(e.table)) }

// BudgetSpent reports whether no further question may be asked this round.
func (e *Eliminator) BudgetSpent() bool { return e.asked >= e.Budget() }

// Asked reports how many questions have been answered this round.
func (e *Eliminator) Asked() int { return e.asked }

// Candidates returns a copy of the remaining candidates in vocabulary order.
func (e *Eliminator) Candidates() []string { return slices.Clone(e.candidates) }

// NextQuestion returns the question at index Asked() in table order.
func (e *Eliminator) NextQuestion() (Question, error) {
	if e.BudgetSpent() {
		return Question{}, ErrNoMoreQuestions
	}
	return e.table[e.asked], nil
}

// SubmitAnswer applies the current question's predicate to every candidate.
//
// Yes keeps words for which the predicate holds, No keeps the rest, Maybe keeps
// everything without evaluating the predicate. A word whose predicate errors or
// panics is dropped from the set and listed in Outcome.Dropped; the round goes on.
func (e *Eliminator) SubmitAnswer(a Answer) (Outcome, error) {
	q, err := e.NextQuestion()
	if err != nil {
		return Outcome{}, err
	}
	switch a {
	case AnswerYes, AnswerNo, AnswerMaybe:
	default:
		return Outcome{}, ErrInvalidAnswer
	}

	var dropped []string
	filtered := make([]string, 0, len(e.candidates))
	for _, w := range e.candidates {
		if a == AnswerMaybe {
			filtered = append(filtered, w)
			continue
		}
		ok, err := evaluate(q.Predicate, w)
		if err != nil {
			dropped = append(dropped, w)
			continue
		}
		if ok == (a == AnswerYes) {
			filtered = append(filtered, w)
		}
	}
	e.candidates = filtered
	e.asked++

	out := e.classify()
	out.Dropped = dropped
	return out, nil
}

// ForceFinalGuess proposes the first remaining candidate once the budget is spent,
// or reports Exhausted when nothing is left.
func (e *Eliminator) ForceFinalGuess() Outcome {
	if len(e.candidates) == 0 {
		return Outcome{Kind: OutcomeExhausted, Remaining: []string{}}
	}
	return Outcome{Kind: OutcomeUnique, Word: e.candidates[0], Remaining: e.Candidates()}
}

func (e *Eliminator) classify() Outcome {
	switch len(e.candidates) {
	case 0:
		return Outcome{Kind: OutcomeExhausted, Remaining: []string{}}
	case 1:
		return Outcome{Kind: OutcomeUnique, Word: e.candidates[0], Remaining: e.Candidates()}
	}
	return Outcome{Kind: OutcomeContinue, Remaining: e.Candidates()}
}

// evaluate runs p against word, turning a nil predicate or a panic into an error.
func evaluate(p Predicate, word string) (ok bool, err error) {
	if p == nil {
		return false, fmt.Errorf("predicate for %q: missing", word)
	}
	defer func() {
		if r := recover(); r != nil {
			ok, err = false, fmt.Errorf("predicate for %q: %v", word, r)
		}
	}()
	return p(word)
}
