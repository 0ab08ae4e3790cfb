package console

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/conn-castle/compactup/internal/messages"
)

// PlainProgress prints one line per milestone. Used when output is not a terminal.
type PlainProgress struct {
	Out io.Writer
}

// Step prints title, then runs fn.
func (p PlainProgress) Step(ctx context.Context, title string, fn func(context.Context) error) error {
	if p.Out != nil {
		_, _ = fmt.Fprintf(p.Out, messages.ConsoleStepFmt, title)
	}
	return fn(ctx)
}

// SpinnerProgress animates a spinner beside the milestone title while fn runs.
// It never reads from stdin.
type SpinnerProgress struct {
	Out io.Writer
}

var runProgram = func(p *tea.Program) (tea.Model, error) { return p.Run() }

type stepDoneMsg struct{}

type spinnerModel struct {
	spinner spinner.Model
	title   string
	done    bool
}

func newSpinnerModel(title string) *spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	return &spinnerModel{spinner: s, title: title}
}

func (m *spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stepDoneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *spinnerModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), m.title)
}

// Step runs fn while the spinner is shown. If the spinner program stops early
// (for example on interrupt) fn's context is canceled and its result still awaited.
func (p SpinnerProgress) Step(ctx context.Context, title string, fn func(context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	prog := tea.NewProgram(newSpinnerModel(title),
		tea.WithOutput(p.Out),
		tea.WithInput(nil),
		tea.WithContext(ctx),
	)

	done := make(chan error, 1)
	go func() {
		err := fn(ctx)
		done <- err
		prog.Send(stepDoneMsg{})
	}()

	if _, err := runProgram(prog); err != nil {
		cancel()
	}
	return <-done
}

// Stepper reports coarse milestones around a unit of work.
type Stepper interface {
	Step(ctx context.Context, title string, fn func(context.Context) error) error
}

// NewProgress returns a spinner for interactive output and plain lines otherwise.
func NewProgress(out io.Writer, interactive bool) Stepper {
	if interactive {
		return SpinnerProgress{Out: out}
	}
	return PlainProgress{Out: out}
}
