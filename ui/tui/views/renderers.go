package views

import (
	"rtop/ui/tui/state"

	"github.com/charmbracelet/lipgloss"
)

func RenderDashboard(s state.AppState, props ViewProps) string {
	v := DashboardView{}
	return v.Render(s, props)
}

// FooterHeight is the number of lines RenderFooter produces for helpView.
func FooterHeight(helpView string) int {
	return 1 + lipgloss.Height(helpView)
}
