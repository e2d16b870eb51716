package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorMuted   = lipgloss.Color("#6C7086")
	colorSuccess = lipgloss.Color("#A6E3A1")
	colorWarning = lipgloss.Color("#F9E2AF")
	colorError   = lipgloss.Color("#F38BA8")
	colorBorder  = lipgloss.Color("#45475A")
)

// Styles contains the reader's lipgloss styles.
type Styles struct {
	Title    lipgloss.Style
	Label    lipgloss.Style
	Muted    lipgloss.Style
	Status   lipgloss.Style
	Playing  lipgloss.Style
	Preview  lipgloss.Style
	Editing  lipgloss.Style
	Prompt   lipgloss.Style
	Notice   map[noticeLevel]lipgloss.Style
	Headline map[noticeLevel]lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() *Styles {
	box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	return &Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
		Label:   lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(colorMuted),
		Status:  lipgloss.NewStyle().Foreground(colorMuted).Italic(true),
		Playing: lipgloss.NewStyle().Bold(true).Foreground(colorSuccess),
		Preview: box.BorderForeground(colorBorder),
		Editing: box.BorderForeground(colorPrimary),
		Prompt:  box.BorderForeground(colorPrimary),
		Notice: map[noticeLevel]lipgloss.Style{
			levelInfo:  box.BorderForeground(colorSuccess),
			levelWarn:  box.BorderForeground(colorWarning),
			levelError: box.BorderForeground(colorError),
		},
		Headline: map[noticeLevel]lipgloss.Style{
			levelInfo:  lipgloss.NewStyle().Bold(true).Foreground(colorSuccess),
			levelWarn:  lipgloss.NewStyle().Bold(true).Foreground(colorWarning),
			levelError: lipgloss.NewStyle().Bold(true).Foreground(colorError),
		},
	}
}
