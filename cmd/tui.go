package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/bingo/internal/shared"
	"github.com/desertthunder/bingo/internal/ui"
)

// TUI launches the interactive terminal bingo game.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.spotify == nil {
		return fmt.Errorf("%w: Spotify service not initialized, run 'bingo auth'", shared.ErrServiceUnavailable)
	}

	store, err := r.gameStore()
	if err != nil {
		return err
	}

	// Stdout belongs to bubbletea while the program runs.
	logFile, err := os.OpenFile("bingo_tui.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err == nil {
		defer logFile.Close()
		r.SetLogger(shared.NewLogger(logFile))
	}

	model := ui.NewModel(ctx, r.spotify, store)
	program := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
