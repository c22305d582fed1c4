package views

import (
	"rtop/ui/tui/state"
)

// PaneProps describes one widget pane, already laid out.
type PaneProps struct {
	Title   string
	Body    string // markup text
	X, Y    int
	W, H    int
	Focused bool
}

// ViewProps contains UI-specific properties provided by the Controller.
type ViewProps struct {
	Width, Height int

	Platform    string
	Clock       string
	SpinnerView string
	HelpView    string

	Tabs      []string
	Indicator float64 // animated tab position
	Panes     []PaneProps
}

// View defines the contract for any renderable page in the TUI.
type View interface {
	Render(s state.AppState, props ViewProps) string
}
