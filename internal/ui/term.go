package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Overdue tasks: red, loud on purpose
	colorOverdue = color.New(color.FgRed, color.Bold)

	// Tasks due today: yellow
	colorDueToday = color.New(color.FgYellow)

	// Upcoming tasks: cyan
	colorUpcoming = color.New(color.FgCyan)

	// Completed items: green
	colorDone = color.New(color.FgGreen)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Muted: for notes and secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// formatOverdue formats text for overdue tasks.
func formatOverdue(s string) string {
	return colorOverdue.Sprint(s)
}

// formatDueToday formats text for tasks due today.
func formatDueToday(s string) string {
	return colorDueToday.Sprint(s)
}

// formatUpcoming formats text for upcoming tasks.
func formatUpcoming(s string) string {
	return colorUpcoming.Sprint(s)
}

// formatDone formats text for completed items.
func formatDone(s string) string {
	return colorDone.Sprint(s)
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
