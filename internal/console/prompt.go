package console

import (
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/conn-castle/compactup/internal/messages"
	"github.com/conn-castle/compactup/internal/terminal"
)

// ErrPromptAborted is returned when the user cancels a prompt.
var ErrPromptAborted = errors.New(messages.ConsolePromptAborted)

// Confirmer asks a yes/no question.
type Confirmer interface {
	Confirm(title string, description string) (bool, error)
}

// HuhConfirmer renders confirmations with charmbracelet/huh.
type HuhConfirmer struct {
	isTerminal func() bool
}

var runFormFunc = func(form *huh.Form) error { return form.Run() }

// NewHuhConfirmer returns a confirmer that requires an interactive terminal.
func NewHuhConfirmer() *HuhConfirmer {
	return &HuhConfirmer{isTerminal: terminal.IsInteractive}
}

// Confirm shows the question and returns the answer. The default is "no".
func (c *HuhConfirmer) Confirm(title string, description string) (bool, error) {
	checker := c.isTerminal
	if checker == nil {
		checker = terminal.IsInteractive
	}
	if !checker() {
		return false, errors.New(messages.ConsolePromptRequiresTerminal)
	}

	var answer bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&answer),
		),
	)
	form.WithProgramOptions(tea.WithOutput(os.Stderr))

	err := runFormFunc(form)
	if errors.Is(err, huh.ErrUserAborted) {
		return false, ErrPromptAborted
	}
	if err != nil {
		return false, err
	}
	return answer, nil
}
