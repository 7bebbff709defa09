// internal/tui/model.go
//
// Bubbletea front end for one terminal session.
// Responsibilities:
//   - Map key presses to controller inputs; one accepted key is one turn.
//   - Masked text input while the bot waits for the word secret.
//   - Render the tally bar, a short transcript, the prompt and key hints.

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/robalobadob/guessbot/internal/session"
)

const maxTranscript = 12

// Model is the root bubbletea model for one terminal session.
type Model struct {
	ctx  context.Context
	ctrl *session.Controller
	st   *session.State

	out        session.Output
	secret     textinput.Model
	transcript []string
	err        string
	quitting   bool
}

// New creates the model for st, sitting wherever st currently is.
func New(ctx context.Context, ctrl *session.Controller, st *session.State) Model {
	ti := textinput.New()
	ti.Placeholder = "secret word"
	ti.Prompt = "> "
	ti.CharLimit = 32

	return Model{
		ctx:    ctx,
		ctrl:   ctrl,
		st:     st,
		out:    ctrl.Current(st),
		secret: ti,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update handles key presses; every accepted key is one controller turn.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	k := key.String()
	if k == "ctrl+c" || (k == "q" && m.out.Phase == session.PhaseMenu) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.out.Phase == session.PhaseAwaitingSecret && k != "esc" {
		if k != "enter" {
			var cmd tea.Cmd
			m.secret, cmd = m.secret.Update(msg)
			return m, cmd
		}
		word := m.secret.Value()
		m.secret.Reset()
		return m.turn(session.Secret(word), strings.Repeat("*", len(word)))
	}

	in, ok := inputFor(m.out.Phase, k)
	if !ok {
		return m, nil
	}
	return m.turn(in, k)
}

// turn runs one controller turn and records prompt, answer and message.
func (m Model) turn(in session.Input, echo string) (tea.Model, tea.Cmd) {
	prompt := m.out.Prompt
	out, err := m.ctrl.Turn(m.ctx, m.st, in)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrEmptySecret):
			m.err = "Please type a word first."
		default:
			m.err = err.Error()
		}
		return m, nil
	}
	m.err = ""
	m.log(PromptStyle.Render(prompt) + " " + AnswerStyle.Render(echo))
	if out.Message != "" {
		m.log(out.Message)
	}
	m.out = out

	var cmd tea.Cmd
	if out.Phase == session.PhaseAwaitingSecret {
		cmd = m.secret.Focus()
	} else {
		m.secret.Blur()
	}
	return m, cmd
}

func (m *Model) log(line string) {
	m.transcript = append(m.transcript, line)
	if n := len(m.transcript); n > maxTranscript {
		m.transcript = m.transcript[n-maxTranscript:]
	}
}

// View renders the transcript, the current prompt and the key hints.
func (m Model) View() string {
	if m.quitting {
		return fmt.Sprintf("Thanks for playing! Number games: %d, word games: %d.\n",
			m.st.Tally.NumberGames, m.st.Tally.WordGames)
	}

	var b strings.Builder
	b.WriteString(StatusBarStyle.Render(fmt.Sprintf("guessbot • number games %d • word games %d",
		m.st.Tally.NumberGames, m.st.Tally.WordGames)))
	b.WriteString("\n\n")
	for _, line := range m.transcript {
		b.WriteString(line)
		b.WriteString("\n")
	}

	panel := PromptStyle.Render(m.out.Prompt)
	if m.out.Phase == session.PhaseQuestioning && len(m.out.Candidates) > 0 {
		panel += "\n" + MutedStyle.Render("still possible: "+strings.Join(m.out.Candidates, ", "))
	}
	if m.out.Phase == session.PhaseAwaitingSecret {
		panel += "\n" + m.secret.View()
	}
	b.WriteString(PanelStyle.Render(panel))
	b.WriteString("\n")

	if m.err != "" {
		b.WriteString(ErrorStyle.Render(m.err))
		b.WriteString("\n")
	}
	b.WriteString(MutedStyle.Render(keyHints[m.out.Phase]))
	b.WriteString("\n")
	return b.String()
}

// Run plays st in the terminal until the player quits or ctx is canceled.
func Run(ctx context.Context, ctrl *session.Controller, st *session.State) error {
	p := tea.NewProgram(New(ctx, ctrl, st), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
