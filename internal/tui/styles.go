// Package tui provides the terminal user interface for taskdeck.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	// Chrome
	TitleStyle     lipgloss.Style
	TabStyle       lipgloss.Style
	ActiveTabStyle lipgloss.Style
	HeaderStyle    lipgloss.Style
	StatusStyle    lipgloss.Style
	ErrorStyle     lipgloss.Style
	HelpStyle      lipgloss.Style

	// Character header
	LevelStyle    lipgloss.Style
	ProgressStyle lipgloss.Style

	// Task list rows
	SectionStyle  lipgloss.Style
	OverdueStyle  lipgloss.Style
	DueTodayStyle lipgloss.Style
	UpcomingStyle lipgloss.Style
	SelectedStyle lipgloss.Style
	NotesStyle    lipgloss.Style

	// Daily rows
	PendingStyle    lipgloss.Style
	DailyLateStyle  lipgloss.Style
	CompletedStyle  lipgloss.Style
	TimeColumnStyle lipgloss.Style

	// Calendar and week
	DayHeaderStyle   lipgloss.Style
	TodayCellStyle   lipgloss.Style
	CellStyle        lipgloss.Style
	OverdueCellStyle lipgloss.Style

	// Chat
	ChatUserStyle      lipgloss.Style
	ChatAssistantStyle lipgloss.Style
	ChatActionStyle    lipgloss.Style
	ChatThinkingStyle  lipgloss.Style

	// Modals
	ModalBorderStyle lipgloss.Style
	ModalTitleStyle  lipgloss.Style
	ModalLabelStyle  lipgloss.Style
	WarningStyle     lipgloss.Style
}

// NewStyles derives all styles from a theme.
func NewStyles(t *theme.Theme) *Styles {
	fg := theme.Color(t.Fg)
	fgMuted := theme.Color(t.FgMuted)
	accent := theme.Color(t.Accent)
	overdue := theme.Color(t.Overdue)
	dueToday := theme.Color(t.DueToday)
	upcoming := theme.Color(t.Upcoming)
	done := theme.Color(t.Done)
	warning := theme.Color(t.Warning)
	selection := theme.Color(t.BgSelection)

	s := &Styles{}

	s.TitleStyle = lipgloss.NewStyle().Foreground(accent).Bold(true)
	s.TabStyle = lipgloss.NewStyle().Foreground(fgMuted).Padding(0, 1)
	s.ActiveTabStyle = lipgloss.NewStyle().Foreground(accent).Bold(true).Underline(true).Padding(0, 1)
	s.HeaderStyle = lipgloss.NewStyle().Foreground(fgMuted).Bold(true)
	s.StatusStyle = lipgloss.NewStyle().Foreground(done)
	s.ErrorStyle = lipgloss.NewStyle().Foreground(overdue).Bold(true)
	s.HelpStyle = lipgloss.NewStyle().Foreground(fgMuted)

	s.LevelStyle = lipgloss.NewStyle().Foreground(accent).Bold(true)
	s.ProgressStyle = lipgloss.NewStyle().Foreground(done)

	s.SectionStyle = lipgloss.NewStyle().Foreground(accent).Bold(true)
	s.OverdueStyle = lipgloss.NewStyle().Foreground(overdue)
	s.DueTodayStyle = lipgloss.NewStyle().Foreground(dueToday)
	s.UpcomingStyle = lipgloss.NewStyle().Foreground(upcoming)
	s.SelectedStyle = lipgloss.NewStyle().Background(selection).Foreground(fg).Bold(true)
	s.NotesStyle = lipgloss.NewStyle().Foreground(fgMuted).Italic(true)

	s.PendingStyle = lipgloss.NewStyle().Foreground(fg)
	s.DailyLateStyle = lipgloss.NewStyle().Foreground(overdue)
	s.CompletedStyle = lipgloss.NewStyle().Foreground(fgMuted).Strikethrough(true)
	s.TimeColumnStyle = lipgloss.NewStyle().Foreground(fgMuted)

	s.DayHeaderStyle = lipgloss.NewStyle().Foreground(fgMuted).Bold(true).Align(lipgloss.Center)
	s.TodayCellStyle = lipgloss.NewStyle().Foreground(dueToday).Bold(true)
	s.CellStyle = lipgloss.NewStyle().Foreground(fg)
	s.OverdueCellStyle = lipgloss.NewStyle().Foreground(overdue).Bold(true)

	s.ChatUserStyle = lipgloss.NewStyle().Foreground(upcoming).Bold(true)
	s.ChatAssistantStyle = lipgloss.NewStyle().Foreground(fg)
	s.ChatActionStyle = lipgloss.NewStyle().Foreground(done).Italic(true)
	s.ChatThinkingStyle = lipgloss.NewStyle().Foreground(fgMuted).Italic(true)

	s.ModalBorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(1, 2)
	s.ModalTitleStyle = lipgloss.NewStyle().Foreground(accent).Bold(true)
	s.ModalLabelStyle = lipgloss.NewStyle().Foreground(fgMuted)
	s.WarningStyle = lipgloss.NewStyle().Foreground(warning).Bold(true)

	return s
}

// BucketStyle returns the row style for a task category section.
func (s *Styles) BucketStyle(section string) lipgloss.Style {
	switch section {
	case "Overdue":
		return s.OverdueStyle
	case "Due Today":
		return s.DueTodayStyle
	default:
		return s.UpcomingStyle
	}
}
