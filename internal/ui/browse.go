// Package ui implements the interactive browser and the live
// progress line for long-running analyses.
package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/picstock/picstock/internal/store"
	"github.com/picstock/picstock/internal/ui/models"
)

// RunBrowse starts the read-only browser over the analysed sources.
// When initialSource is non-empty the browser opens on that source.
func RunBrowse(st *store.Store, initialSource string) error {
	model := models.NewAppModel(st, initialSource)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("browser error: %w", err)
	}

	return nil
}
