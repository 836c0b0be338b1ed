package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathanielng/qdev/internal/layer"
	"github.com/nathanielng/qdev/internal/render"
)

// Run launches the wizard and blocks until the user quits. publish may be
// nil when no live preview server is attached.
func Run(cfg *layer.Config, pipeline *render.Pipeline, lineNumbers bool, publish func(layer.Artifact)) error {
	model := New(cfg, pipeline, lineNumbers, publish)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("wizard failed: %w", err)
	}
	return nil
}
