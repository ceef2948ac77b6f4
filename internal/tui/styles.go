package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nixlim/threadscope/internal/threads"
)

const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

type styles struct {
	header       lipgloss.Style
	columnHeader lipgloss.Style
	row          lipgloss.Style
	current      lipgloss.Style
	cursor       lipgloss.Style
	dim          lipgloss.Style
	message      lipgloss.Style
	errorText    lipgloss.Style
	status       map[string]lipgloss.Style
}

func newStyles(theme string) styles {
	fg, accent, muted, cursorBG := lipgloss.Color("15"), lipgloss.Color("69"), lipgloss.Color("240"), lipgloss.Color("62")
	if theme == ThemeLight {
		fg, accent, muted, cursorBG = lipgloss.Color("0"), lipgloss.Color("25"), lipgloss.Color("245"), lipgloss.Color("153")
	}

	return styles{
		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(cursorBG),
		columnHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),
		row: lipgloss.NewStyle().
			Foreground(fg),
		current: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg),
		cursor: lipgloss.NewStyle().
			Foreground(fg).
			Background(cursorBG),
		dim: lipgloss.NewStyle().
			Foreground(muted),
		message: lipgloss.NewStyle().
			Foreground(accent),
		errorText: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),
		status: map[string]lipgloss.Style{
			threads.Translate(threads.StatusRunning):     lipgloss.NewStyle().Foreground(lipgloss.Color("82")),
			threads.Translate(threads.StatusStopped):     lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
			threads.Translate(threads.StatusRaisedEvent): lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
			threads.Translate(threads.StatusZombie):      lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
			threads.Translate(threads.StatusDead):        lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		},
	}
}

// surface is the grid state the coordinator drives.
type surface struct {
	enabled bool
	theme   string
	styles  styles
}

func newSurface(theme string) *surface {
	if theme != ThemeLight {
		theme = ThemeDark
	}
	return &surface{theme: theme, styles: newStyles(theme)}
}

func (s *surface) SetEnabled(enabled bool) { s.enabled = enabled }

func (s *surface) Restyle() { s.styles = newStyles(s.theme) }

func (s *surface) toggleTheme() {
	if s.theme == ThemeDark {
		s.theme = ThemeLight
	} else {
		s.theme = ThemeDark
	}
}
