// Package tui hosts a dropdown controller in a terminal with bubbletea
package tui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alantheprice/dropdown/pkg/dropdown"
)

// Options configure Run
type Options struct {
	AltScreen bool
	Mouse     bool
	Input     io.Reader
	Output    io.Writer
}

// Run shows model until the user quits and returns the final selection
func Run(ctx context.Context, model Model, opts Options) (dropdown.Selection, error) {
	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	if opts.Mouse {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}
	if opts.Input != nil {
		programOpts = append(programOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(opts.Output))
	}

	p := tea.NewProgram(model, programOpts...)
	final, err := p.Run()
	if err != nil {
		return model.Value(), fmt.Errorf("dropdown ui failed: %w", err)
	}
	if m, ok := final.(Model); ok {
		return m.Value(), nil
	}
	return model.Value(), nil
}
