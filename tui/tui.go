// Package tui hosts collapse panels in a terminal. A Box stands in for the
// DOM element, measuring content in rows, and a Scheduler routes panel
// callbacks through the Bubble Tea update loop.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows sections as an accordion until the user quits or ctx ends.
// Ending ctx is a normal exit.
func Run(ctx context.Context, sections []Section, opts Options) error {
	model, err := NewModel(sections, opts)
	if err != nil {
		return err
	}

	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err = program.Run()
	return exitErr(ctx, err)
}

// exitErr drops the kill error Bubble Tea reports when ctx was cancelled.
func exitErr(ctx context.Context, err error) error {
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
