package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/taskdeck/taskdeck/internal/daily"
	"github.com/taskdeck/taskdeck/internal/task"
)

// printTaskSections prints the categorized task list with one colored
// section per bucket.
func printTaskSections(tasks []*task.Task, now time.Time, verbose bool) {
	if len(tasks) == 0 {
		fmt.Println("No tasks.")
		return
	}

	overdue, dueToday, upcoming := task.Categorize(tasks, now)
	sections := []struct {
		title  string
		format func(string) string
		tasks  []*task.Task
	}{
		{"Overdue", formatOverdue, overdue},
		{"Due Today", formatDueToday, dueToday},
		{"Upcoming", formatUpcoming, upcoming},
	}

	nameWidth := taskNameWidth(tasks)
	for _, section := range sections {
		if len(section.tasks) == 0 {
			continue
		}
		fmt.Println(formatHeader(section.title))
		for _, t := range section.tasks {
			fmt.Printf("  %s  %s  P%d\n",
				section.format(pad(t.Name, nameWidth)),
				t.DueString(),
				t.Priority,
			)
			if verbose && t.Notes != task.DefaultNotes {
				fmt.Printf("  %s\n", formatMuted("  "+t.Notes))
			}
		}
		fmt.Println()
	}
}

// printDailyList prints the daily routine with live statuses.
func printDailyList(entries []*daily.Entry, now time.Time, use24Hour bool) {
	if len(entries) == 0 {
		fmt.Println("No daily tasks.")
		return
	}

	for i, e := range entries {
		var status string
		switch e.StatusAt(now) {
		case daily.StatusCompleted:
			status = formatDone("done")
		case daily.StatusOverdue:
			status = formatOverdue("overdue")
		default:
			status = "pending"
		}
		text := e.Text
		if e.Completed {
			text = formatMuted(text)
		}
		fmt.Printf("  %2d. %s  %s  [%s]\n", i+1, formatMuted(e.DisplayTime(use24Hour)), text, status)
	}
}

// taskNameWidth picks a name column width that fits the widest task name,
// bounded by the terminal.
func taskNameWidth(tasks []*task.Task) int {
	width := 20
	for _, t := range tasks {
		if n := len(t.Name); n > width {
			width = n
		}
	}
	if max := termWidth() - 25; width > max && max > 10 {
		width = max
	}
	return width
}

func pad(s string, width int) string {
	if len(s) >= width {
		if width > 1 {
			return s[:width-1] + "…"
		}
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
