// ABOUTME: TUI initialization and control
// ABOUTME: Wraps the bubbletea program and its volume and quit channels
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ltcsync/ltcsync-go/pkg/chase"
)

// VolumeChangeMsg is sent when the user changes the monitor volume
type VolumeChangeMsg struct {
	Volume int
	Muted  bool
}

// QuitMsg is sent when the user quits
type QuitMsg struct{}

// Controls holds channels for communication back to the reader
type Controls struct {
	Changes chan VolumeChangeMsg
	Quit    chan QuitMsg
}

// NewControls creates a new control handler
func NewControls() *Controls {
	return &Controls{
		Changes: make(chan VolumeChangeMsg, 10),
		Quit:    make(chan QuitMsg, 1),
	}
}

// NewModel creates a new TUI model
func NewModel(controls *Controls) Model {
	return Model{
		volume:   100,
		state:    "idle",
		speed:    1,
		lock:     chase.QualityLost,
		controls: controls,
		styles:   newStyles(),
	}
}

// Run creates the TUI program
func Run(controls *Controls) (*tea.Program, error) {
	p := tea.NewProgram(NewModel(controls), tea.WithAltScreen())
	return p, nil
}
