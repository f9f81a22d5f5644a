package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vvka-141/relload/internal/tui/components"
)

// RunSelector runs a selector model to completion and returns the final
// state. The caller inspects Submitted/Cancelled/Value on the result.
func RunSelector(s components.Selector) (components.Selector, error) {
	program := tea.NewProgram(s)
	model, err := program.Run()
	if err != nil {
		return s, fmt.Errorf("failed to run selector: %w", err)
	}

	final, ok := model.(components.Selector)
	if !ok {
		return s, fmt.Errorf("unexpected selector model type %T", model)
	}
	return final, nil
}
