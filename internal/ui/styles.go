package ui

import (
	styles "github.com/charmbracelet/lipgloss"

	"fleetgrid/internal/telemetry"
)

var (
	selectedColor = styles.AdaptiveColor{Light: "0", Dark: "9"}
	borderColor   = styles.AdaptiveColor{Light: "#555", Dark: "#555"}
	dimColor      = styles.AdaptiveColor{Light: "#777", Dark: "#6272A4"}

	activeColor   = styles.AdaptiveColor{Light: "2", Dark: "#50FA7B"}
	idleColor     = styles.AdaptiveColor{Light: "3", Dark: "#F1FA8C"}
	criticalColor = styles.AdaptiveColor{Light: "1", Dark: "#FF5555"}

	titleStyle = styles.NewStyle().Bold(true)
	dimFg      = styles.NewStyle().Foreground(dimColor)
	borderFg   = styles.NewStyle().Foreground(borderColor)

	cursorRowStyle = styles.NewStyle().
			Border(styles.NormalBorder(), false, false, false, true).
			BorderForeground(borderColor).
			Foreground(selectedColor).
			Padding(0, 0, 0, 1)
	plainRowStyle = styles.NewStyle().Padding(0, 0, 0, 2)

	detailStyle = styles.NewStyle().
			BorderStyle(styles.NormalBorder()).
			BorderForeground(borderColor)

	statsStyle = styles.NewStyle().Foreground(styles.AdaptiveColor{Light: "1", Dark: "9"})
	errStyle   = styles.NewStyle().Foreground(criticalColor)

	statusStyles = map[telemetry.Status]styles.Style{
		telemetry.StatusActive:   styles.NewStyle().Foreground(activeColor),
		telemetry.StatusIdle:     styles.NewStyle().Foreground(idleColor),
		telemetry.StatusCritical: styles.NewStyle().Foreground(criticalColor).Bold(true),
	}
)

func statusBadge(s telemetry.Status) string {
	st, ok := statusStyles[s]
	if !ok {
		return string(s)
	}
	return st.Render("● " + string(s))
}
