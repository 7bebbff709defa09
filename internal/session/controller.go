// internal/session/controller.go
//
// Session controller: the turn function shared by every front end.
// Responsibilities:
//   - Start number and word rounds from the menu with fresh engines.
//   - Feed one answer per turn to the active engine and interpret its directive.
//   - Drive the guess confirmation, retry and forced-final-guess flows.
//   - Tally completed rounds and hand them to the Recorder.
//   - Turn round-fatal faults (invalid bounds, inconsistent answers) into a visible
//     message plus a return to the menu.
//
// Turn never mutates State when it returns an error.

package session

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/robalobadob/guessbot/internal/game"
	"github.com/robalobadob/guessbot/internal/secret"
)

const (
	DefaultNumberMin = 1
	DefaultNumberMax = 50
)

var (
	ErrUnexpectedInput = errors.New("input not valid in this phase")
	ErrEmptySecret     = errors.New("secret word is empty")
)

// Recorder receives every completed round. Failures are logged, never fatal.
type Recorder interface {
	RecordRound(ctx context.Context, sessionID string, rec Record) error
}

// Options configures a Controller.
type Options struct {
	Vocabulary []string
	Questions  []game.Question
	// NumberBounds bounds number rounds. Nil means DefaultNumberMin..DefaultNumberMax;
	// any other range, 0..0 included, is used as given.
	NumberBounds *game.Range

	Recorder Recorder
	Sealer   *secret.Sealer
	Logger   zerolog.Logger
	Now      func() time.Time
}

// Controller is stateless apart from its immutable configuration; all per-player
// state lives in State.
type Controller struct {
	vocab     []string
	questions []game.Question
	min, max  int
	rec       Recorder
	sealer    *secret.Sealer
	log       zerolog.Logger
	now       func() time.Time
}

// NewController validates opts and fills in defaults.
func NewController(opts Options) (*Controller, error) {
	c := &Controller{
		vocab:     slices.Clone(opts.Vocabulary),
		questions: slices.Clone(opts.Questions),
		min:       DefaultNumberMin,
		max:       DefaultNumberMax,
		rec:       opts.Recorder,
		sealer:    opts.Sealer,
		log:       opts.Logger,
		now:       opts.Now,
	}
	if b := opts.NumberBounds; b != nil {
		c.min, c.max = b.Low, b.High
	}
	if c.sealer == nil {
		s, err := secret.NewSealer()
		if err != nil {
			return nil, err
		}
		c.sealer = s
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c, nil
}

// NewState returns a fresh session sitting at the menu.
func (c *Controller) NewState(id string) *State {
	return &State{
		ID:        id,
		CreatedAt: c.now().UTC(),
		Mode:      game.ModeMenu,
		Phase:     PhaseMenu,
	}
}

// Current renders the state without consuming input.
func (c *Controller) Current(st *State) Output {
	return c.view(st, st.last)
}

// Turn consumes one input and returns the output for the next prompt.
func (c *Controller) Turn(ctx context.Context, st *State, in Input) (Output, error) {
	var (
		r   result
		err error
	)
	if in.Kind == InputAbandon {
		r, err = c.abandon(st)
	} else {
		switch st.Phase {
		case PhaseMenu:
			r, err = c.menuTurn(ctx, st, in)
		case PhaseComparing:
			r, err = c.compareTurn(ctx, st, in)
		case PhaseAwaitingSecret:
			r, err = c.secretTurn(ctx, st, in)
		case PhaseQuestioning:
			r, err = c.attributeTurn(ctx, st, in)
		case PhaseUniqueGuessPending:
			r, err = c.uniqueGuessTurn(ctx, st, in)
		case PhaseForcedGuessPending:
			r, err = c.forcedGuessTurn(ctx, st, in)
		case PhaseExhaustedPending:
			r, err = c.exhaustedTurn(ctx, st, in)
		default:
			err = fmt.Errorf("unknown phase %q", st.Phase)
		}
	}
	if err != nil {
		return Output{}, err
	}
	st.last = r
	return c.view(st, r), nil
}

func expect(in Input, kind InputKind, phase Phase) error {
	if in.Kind != kind {
		return fmt.Errorf("%w: %s during %s", ErrUnexpectedInput, in.Kind, phase)
	}
	return nil
}

// ------------------------------- menu ---------------------------------------

func (c *Controller) menuTurn(ctx context.Context, st *State, in Input) (result, error) {
	if err := expect(in, InputStart, st.Phase); err != nil {
		return result{}, err
	}
	switch in.Mode {
	case game.ModeNumber:
		n, err := game.NewNarrower(c.min, c.max)
		if err != nil {
			c.log.Warn().Err(err).Str("session", st.ID).Int("min", c.min).Int("max", c.max).Msg("number round rejected")
			return result{fault: err, message: fmt.Sprintf("Cannot start the number game: %v.", err)}, nil
		}
		st.Mode, st.Phase, st.number = game.ModeNumber, PhaseComparing, n
		c.log.Debug().Str("session", st.ID).Int("min", c.min).Int("max", c.max).Msg("number round started")
		if n.Converged() {
			return c.completeNumber(ctx, st, n.Range().Low), nil
		}
		return result{directive: &game.Directive{Kind: game.DirectiveContinue, Value: n.Midpoint()}}, nil

	case game.ModeWord:
		st.Mode, st.Phase = game.ModeWord, PhaseAwaitingSecret
		st.word = game.NewEliminator(c.vocab, c.questions)
		c.log.Debug().Str("session", st.ID).Int("vocabulary", len(c.vocab)).Msg("word round started")
		return result{}, nil
	}
	return result{}, fmt.Errorf("%w: unknown game %q", ErrUnexpectedInput, in.Mode)
}

// ------------------------------ number --------------------------------------

func (c *Controller) compareTurn(ctx context.Context, st *State, in Input) (result, error) {
	if err := expect(in, InputCompare, st.Phase); err != nil {
		return result{}, err
	}
	step, err := st.number.SubmitAnswer(in.Greater)
	if errors.Is(err, game.ErrInconsistentAnswers) {
		c.log.Warn().Str("session", st.ID).Interface("range", st.number.Range()).Msg("inconsistent answers, round reset")
		c.discard(st)
		return result{
			fault:   err,
			message: "Those answers contradict each other, so I reset the round.",
		}, nil
	}
	if err != nil {
		return result{}, err
	}
	if step.Converged {
		return c.completeNumber(ctx, st, step.Value), nil
	}
	return result{directive: &game.Directive{Kind: game.DirectiveContinue, Value: step.Value}}, nil
}

func (c *Controller) completeNumber(ctx context.Context, st *State, value int) result {
	c.complete(ctx, st, OutcomeSolved)
	return result{
		directive: &game.Directive{Kind: game.DirectiveConverged, Value: value},
		message:   fmt.Sprintf("Your number is %d! I guessed it!", value),
	}
}

// ------------------------------- word ---------------------------------------

func (c *Controller) secretTurn(ctx context.Context, st *State, in Input) (result, error) {
	if err := expect(in, InputSecret, st.Phase); err != nil {
		return result{}, err
	}
	word := game.Normalize(in.Word)
	if word == "" {
		return result{}, ErrEmptySecret
	}
	box, err := c.sealer.Seal(word)
	if err != nil {
		return result{}, err
	}
	st.secret = box

	msg := ""
	if !slices.Contains(c.vocab, word) {
		msg = "That word is not on the list, so I will probably miss it."
	}
	return c.ask(ctx, st, msg), nil
}

// ask moves to the next question, or straight to the final guess when the
// question budget is gone.
func (c *Controller) ask(ctx context.Context, st *State, msg string) result {
	if st.word.BudgetSpent() {
		return c.forceGuess(ctx, st)
	}
	st.Phase = PhaseQuestioning
	return result{directive: &game.Directive{Kind: game.DirectiveContinue}, message: msg}
}

func (c *Controller) attributeTurn(ctx context.Context, st *State, in Input) (result, error) {
	if err := expect(in, InputAttribute, st.Phase); err != nil {
		return result{}, err
	}
	out, err := st.word.SubmitAnswer(in.Answer)
	if err != nil {
		return result{}, err
	}
	if len(out.Dropped) > 0 {
		c.log.Debug().Str("session", st.ID).Strs("dropped", out.Dropped).Msg("predicate failed, words dropped")
	}

	switch out.Kind {
	case game.OutcomeUnique:
		st.guess, st.Phase = out.Word, PhaseUniqueGuessPending
		return result{directive: &game.Directive{Kind: game.DirectiveProposeGuess, Word: out.Word}}, nil
	case game.OutcomeExhausted:
		st.Phase = PhaseExhaustedPending
		return result{
			directive: &game.Directive{Kind: game.DirectiveExhausted},
			message:   "No matching words found. Maybe one of the answers was off?",
		}, nil
	}
	return c.ask(ctx, st, "Remaining possible words: "+strings.Join(out.Remaining, ", ")), nil
}

func (c *Controller) forceGuess(ctx context.Context, st *State) result {
	g := st.word.ForceFinalGuess()
	if g.Kind == game.OutcomeExhausted {
		c.complete(ctx, st, OutcomeFailed)
		return result{
			directive: &game.Directive{Kind: game.DirectiveExhausted},
			message:   "No possible words left to guess.",
		}
	}
	st.guess, st.Phase = g.Word, PhaseForcedGuessPending
	return result{directive: &game.Directive{Kind: game.DirectiveProposeGuess, Word: g.Word, Forced: true}}
}

func (c *Controller) uniqueGuessTurn(ctx context.Context, st *State, in Input) (result, error) {
	if err := expect(in, InputConfirm, st.Phase); err != nil {
		return result{}, err
	}
	if in.Yes {
		c.complete(ctx, st, OutcomeSolved)
		return result{message: "Yay! I guessed your word!"}, nil
	}
	st.word.Reset()
	st.guess = ""
	return c.ask(ctx, st, "Hmm, let me try again."), nil
}

func (c *Controller) forcedGuessTurn(ctx context.Context, st *State, in Input) (result, error) {
	if err := expect(in, InputConfirm, st.Phase); err != nil {
		return result{}, err
	}
	if in.Yes {
		c.complete(ctx, st, OutcomeSolved)
		return result{message: "Yay! I guessed your word!"}, nil
	}
	msg := "Oops! I could not recall your word."
	if word, err := c.sealer.Open(st.secret); err == nil {
		msg = fmt.Sprintf("Oops! The correct word was: %s", word)
	} else {
		c.log.Error().Err(err).Str("session", st.ID).Msg("open secret word")
	}
	c.complete(ctx, st, OutcomeFailed)
	return result{message: msg}, nil
}

func (c *Controller) exhaustedTurn(ctx context.Context, st *State, in Input) (result, error) {
	if err := expect(in, InputRetry, st.Phase); err != nil {
		return result{}, err
	}
	if in.Yes {
		st.word.Reset()
		return c.ask(ctx, st, "Starting over with the full list."), nil
	}
	c.complete(ctx, st, OutcomeConceded)
	return result{message: "Round over. It still counts as played."}, nil
}

// ----------------------------- lifecycle ------------------------------------

func (c *Controller) abandon(st *State) (result, error) {
	if st.Phase == PhaseMenu {
		return result{}, fmt.Errorf("%w: no round to abandon", ErrUnexpectedInput)
	}
	c.log.Debug().Str("session", st.ID).Str("mode", string(st.Mode)).Msg("round abandoned")
	c.discard(st)
	return result{message: "Round abandoned."}, nil
}

// complete tallies the active round, reports it and returns to the menu.
func (c *Controller) complete(ctx context.Context, st *State, outcome Outcome) {
	rec := Record{Mode: st.Mode, Outcome: outcome, At: c.now().UTC()}
	st.Tally.add(rec)
	c.discard(st)

	c.log.Info().Str("session", st.ID).Str("mode", string(rec.Mode)).Str("outcome", string(outcome)).Msg("round completed")
	if c.rec == nil {
		return
	}
	if err := c.rec.RecordRound(ctx, st.ID, rec); err != nil {
		c.log.Warn().Err(err).Str("session", st.ID).Msg("record round")
	}
}

// discard clears engine state and returns to the menu. The tally is untouched.
func (c *Controller) discard(st *State) {
	st.Mode, st.Phase = game.ModeMenu, PhaseMenu
	st.number, st.word = nil, nil
	st.secret, st.guess = nil, ""
}

// ------------------------------- view ---------------------------------------

func (c *Controller) view(st *State, r result) Output {
	out := Output{
		SessionID: st.ID,
		Mode:      st.Mode,
		Phase:     st.Phase,
		Directive: r.directive,
		Message:   r.message,
		Tally:     st.Tally.Snapshot(),
	}
	if r.fault != nil {
		out.Fault, out.Err = r.fault.Error(), r.fault
	}

	switch st.Phase {
	case PhaseMenu:
		out.Prompt = fmt.Sprintf("Choose a game: number or word. (Number games played: %d, word games played: %d)",
			st.Tally.NumberGames, st.Tally.WordGames)
	case PhaseComparing:
		rng, bounds := st.number.Range(), st.number.Bounds()
		out.Range, out.Bounds = &rng, &bounds
		out.Prompt = fmt.Sprintf("Is your number greater than %d?", st.number.Midpoint())
	case PhaseAwaitingSecret:
		out.Vocabulary = slices.Clone(c.vocab)
		out.Prompt = "Think of a word from this list: " + strings.Join(c.vocab, ", ") +
			". Enter your secret word (only used to tell you the answer if I fail)."
	case PhaseQuestioning:
		if q, err := st.word.NextQuestion(); err == nil {
			n := st.word.Asked() + 1
			out.Question = &QuestionView{Number: n, ID: q.ID, Text: q.Text}
			out.Prompt = fmt.Sprintf("Question %d: %s", n, q.Text)
		}
		out.Candidates = st.word.Candidates()
	case PhaseUniqueGuessPending:
		out.Candidates = st.word.Candidates()
		out.Prompt = fmt.Sprintf("I think your word is: %s. Am I right?", st.guess)
	case PhaseForcedGuessPending:
		out.Candidates = st.word.Candidates()
		out.Prompt = fmt.Sprintf("My final guess is: %s. Am I right?", st.guess)
	case PhaseExhaustedPending:
		out.Candidates = []string{}
		out.Prompt = "Would you like to retry?"
	}
	return out
}
