package tui

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
)

// ErrNotTerminal is returned by Run when stdout is not a terminal.
var ErrNotTerminal = errors.New("stdout is not a terminal")

// Run shows the model full screen until the user quits or ctx is done.
func Run(ctx context.Context, m Model) error {
	if !term.IsTerminal(os.Stdout.Fd()) {
		return ErrNotTerminal
	}
	if w, h, err := term.GetSize(os.Stdout.Fd()); err == nil {
		updated, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
		m = updated.(Model)
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run terminal UI: %w", err)
	}
	return nil
}
