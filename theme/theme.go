// ABOUTME: Visual palettes for the TUI
// ABOUTME: Dark and light lipgloss styles selected by the theme store flag
package theme

import "github.com/charmbracelet/lipgloss"

// Theme encapsulates the visual palette for the CRM UI.
type Theme struct {
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Accent    lipgloss.Style
	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Danger    lipgloss.Style
	Faint     lipgloss.Style
	Highlight lipgloss.Style
	Border    lipgloss.Style
	TabActive lipgloss.Style
	TabIdle   lipgloss.Style
}

// Dark returns a palette tuned for dark terminal backgrounds.
func Dark() Theme {
	return Theme{
		Title:     lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true),
		Subtitle:  lipgloss.NewStyle().Foreground(lipgloss.Color("111")).Bold(true),
		Accent:    lipgloss.NewStyle().Foreground(lipgloss.Color("219")).Bold(true),
		Primary:   lipgloss.NewStyle().Foreground(lipgloss.Color("81")),
		Secondary: lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("227")).Bold(true),
		Danger:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		Faint:     lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Border:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		TabActive: lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Bold(true).Underline(true),
		TabIdle:   lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
	}
}

// Light returns a palette tuned for light terminal backgrounds.
func Light() Theme {
	return Theme{
		Title:     lipgloss.NewStyle().Foreground(lipgloss.Color("55")).Bold(true),
		Subtitle:  lipgloss.NewStyle().Foreground(lipgloss.Color("25")).Bold(true),
		Accent:    lipgloss.NewStyle().Foreground(lipgloss.Color("90")).Bold(true),
		Primary:   lipgloss.NewStyle().Foreground(lipgloss.Color("24")),
		Secondary: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("28")).Bold(true),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("130")).Bold(true),
		Danger:    lipgloss.NewStyle().Foreground(lipgloss.Color("124")).Bold(true),
		Faint:     lipgloss.NewStyle().Foreground(lipgloss.Color("246")),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("127")).Bold(true),
		Border:    lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		TabActive: lipgloss.NewStyle().Foreground(lipgloss.Color("55")).Bold(true).Underline(true),
		TabIdle:   lipgloss.NewStyle().Foreground(lipgloss.Color("246")),
	}
}

// ForDark selects the palette matching the persisted dark-mode flag.
func ForDark(isDark bool) Theme {
	if isDark {
		return Dark()
	}
	return Light()
}
