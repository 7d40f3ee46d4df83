package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/reviewlens/internal/classification"
	tea "github.com/charmbracelet/bubbletea"
)

// Run opens the browser on the terminal and blocks until the user quits or
// ctx is canceled.
func Run(ctx context.Context, result *classification.Result) error {
	p := tea.NewProgram(New(result), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("review browser failed: %w", err)
	}
	return nil
}
