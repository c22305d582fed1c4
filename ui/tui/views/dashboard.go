package views

import (
	"rtop/ui/tui/state"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
)

// ChromeLines is the number of lines above the panes: header, tabs and the
// tab indicator.
const ChromeLines = 3

type DashboardView struct{}

func (v DashboardView) Render(s state.AppState, props ViewProps) string {
	header := RenderHeader(s, props)
	tabs, indicator := RenderTabs(props.Tabs, s.Page, props.Indicator, props.Width)

	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left,
		header,
		tabs,
		indicator,
		renderBody(props.Panes),
		RenderFooter(s, props),
	))
}
