// internal/game/narrower.go
//
// Number round engine.
// Responsibilities:
//   - Hold the inclusive range still consistent with the player's answers.
//   - Halve it once per "greater than the midpoint?" answer until it collapses.
//   - Report answers that would empty the range as ErrInconsistentAnswers.
//
// Works for any min <= max in the int range, including math.MinInt..math.MaxInt.

package game

import "math/bits"

// Narrower guesses a secret integer by halving an inclusive range.
type Narrower struct {
	min, max int
	rng      Range
	asked    int
}

// NewNarrower establishes Range{min, max}.
// Returns ErrInvalidBounds if min > max.
func NewNarrower(min, max int) (*Narrower, error) {
	if min > max {
		return nil, ErrInvalidBounds
	}
	return &Narrower{min: min, max: max, rng: Range{Low: min, High: max}}, nil
}

// Midpoint is floor((Low+High)/2), computed without overflow.
// Arithmetic shifts floor toward negative infinity; the last term restores the
// half lost when both bounds are odd.
func (n *Narrower) Midpoint() int {
	lo, hi := n.rng.Low, n.rng.High
	return lo>>1 + hi>>1 + lo&hi&1
}

// Range returns the current inclusive bound.
func (n *Narrower) Range() Range { return n.rng }

// Bounds returns the bounds the narrower was created with.
func (n *Narrower) Bounds() Range { return Range{Low: n.min, High: n.max} }

// Asked reports how many comparisons have been consumed.
func (n *Narrower) Asked() int { return n.asked }

// Converged reports whether the range has collapsed to a single value.
func (n *Narrower) Converged() bool { return n.rng.Low == n.rng.High }

// SubmitAnswer consumes one "is your number greater than Midpoint()?" answer.
//
// A true answer moves Low to Midpoint()+1, a false answer moves High to Midpoint().
// Answering an already converged range would push Low past High; that is reported as
// ErrInconsistentAnswers and the range is left as it was.
func (n *Narrower) SubmitAnswer(isGreater bool) (Step, error) {
	if n.Converged() {
		return Step{Converged: true, Value: n.rng.Low}, ErrInconsistentAnswers
	}
	mid := n.Midpoint()
	next := n.rng
	if isGreater {
		next.Low = mid + 1
	} else {
		next.High = mid
	}
	if next.Low > next.High {
		return Step{Value: mid}, ErrInconsistentAnswers
	}
	n.rng = next
	n.asked++

	if n.Converged() {
		return Step{Converged: true, Value: n.rng.Low}, nil
	}
	return Step{Value: n.Midpoint()}, nil
}

// Reset restores the initial bounds.
func (n *Narrower) Reset() {
	n.rng = Range{Low: n.min, High: n.max}
	n.asked = 0
}

// MaxTurns is ceil(log2(max-min+1)), the turn bound for consistent answers.
// The span is taken as an unsigned difference so the full int range does not wrap.
func (n *Narrower) MaxTurns() int {
	return bits.Len64(uint64(n.max) - uint64(n.min))
}
