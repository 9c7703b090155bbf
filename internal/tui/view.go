package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/taskdeck/taskdeck/internal/daily"
	"github.com/taskdeck/taskdeck/internal/task"
	"github.com/taskdeck/taskdeck/internal/week"
)

// progressBarWidth is the character width of the level progress bar.
const progressBarWidth = 20

// View renders the whole screen.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	switch m.mode {
	case ModeTaskForm, ModeDailyForm:
		b.WriteString(m.renderForm())
	case ModeConfirmDelete:
		b.WriteString(m.renderConfirm())
	default:
		b.WriteString(m.renderActiveTab())
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// renderHeader shows the title and the character progress line.
func (m Model) renderHeader() string {
	title := m.styles.TitleStyle.Render("taskdeck")

	filled := m.stats.Progress() * progressBarWidth / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", progressBarWidth-filled)
	level := m.styles.LevelStyle.Render(fmt.Sprintf("Lv %d", m.stats.Level))
	progress := m.styles.ProgressStyle.Render(bar)
	completed := m.styles.HelpStyle.Render(fmt.Sprintf("%d done", m.stats.TasksCompleted))

	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", level, " ", progress, " ", completed)
}

// renderTabs shows the tab bar.
func (m Model) renderTabs() string {
	parts := make([]string, len(tabNames))
	for i, name := range tabNames {
		label := fmt.Sprintf("%d:%s", i+1, name)
		if Tab(i) == m.activeTab {
			parts[i] = m.styles.ActiveTabStyle.Render(label)
		} else {
			parts[i] = m.styles.TabStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderActiveTab() string {
	switch m.activeTab {
	case TabTasks:
		return m.renderTasks()
	case TabDaily:
		return m.renderDaily()
	case TabCalendar:
		return m.renderCalendar()
	case TabWeek:
		return m.renderWeek()
	case TabChat:
		return m.renderChat()
	}
	return ""
}

// renderTasks shows the categorized task list.
func (m Model) renderTasks() string {
	if len(m.tasks) == 0 {
		return m.styles.HelpStyle.Render("No tasks. Press 'a' to add one.")
	}

	now := time.Now()
	overdue, dueToday, upcoming := task.Categorize(m.tasks, now)

	var b strings.Builder
	for _, section := range []struct {
		title string
		tasks []*task.Task
	}{
		{"Overdue", overdue},
		{"Due Today", dueToday},
		{"Upcoming", upcoming},
	} {
		if len(section.tasks) == 0 {
			continue
		}
		b.WriteString(m.styles.SectionStyle.Render(section.title))
		b.WriteString("\n")
		style := m.styles.BucketStyle(section.title)
		for _, t := range section.tasks {
			line := fmt.Sprintf("  %-30s %s  P%d", truncate(t.Name, 30), t.DueString(), t.Priority)
			if m.globalIndex(t) == m.taskCursor {
				b.WriteString(m.styles.SelectedStyle.Render("▸" + line[1:]))
				if t.Notes != task.DefaultNotes {
					b.WriteString("\n")
					b.WriteString(m.styles.NotesStyle.Render("    " + t.Notes))
				}
			} else {
				b.WriteString(style.Render(line))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// globalIndex finds a task's position in the flat sorted list the cursor
// walks over.
func (m Model) globalIndex(target *task.Task) int {
	for i, t := range m.tasks {
		if t == target {
			return i
		}
	}
	return -1
}

// renderDaily shows the daily routine with live statuses.
func (m Model) renderDaily() string {
	if len(m.entries) == 0 {
		return m.styles.HelpStyle.Render("No daily tasks. Press 'a' to add one.")
	}

	now := time.Now()
	var b strings.Builder
	for i, e := range m.entries {
		clock := m.styles.TimeColumnStyle.Render(e.DisplayTime(m.cfg.UI.Use24Hour))

		var style lipgloss.Style
		var status string
		switch e.StatusAt(now) {
		case daily.StatusCompleted:
			style, status = m.styles.CompletedStyle, "done"
		case daily.StatusOverdue:
			style, status = m.styles.DailyLateStyle, "overdue"
		default:
			style, status = m.styles.PendingStyle, "pending"
		}

		line := fmt.Sprintf(" %-40s [%s]", truncate(e.Text, 40), status)
		if i == m.dailyCursor {
			b.WriteString("▸ " + clock + m.styles.SelectedStyle.Render(line))
		} else {
			b.WriteString("  " + clock + style.Render(line))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderCalendar shows the month grid.
func (m Model) renderCalendar() string {
	month := m.currentMonth()

	var b strings.Builder
	b.WriteString(m.styles.SectionStyle.Render(month.Title()))
	b.WriteString("\n\n")

	for _, name := range []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"} {
		b.WriteString(m.styles.DayHeaderStyle.Width(6).Render(name))
	}
	b.WriteString("\n")

	for _, row := range month.Grid {
		empty := true
		for _, cell := range row {
			if cell.Day != 0 {
				empty = false
				break
			}
		}
		if empty {
			continue
		}
		for _, cell := range row {
			if cell.Day == 0 {
				b.WriteString(strings.Repeat(" ", 6))
				continue
			}
			label := fmt.Sprintf("%2d", cell.Day)
			if len(cell.Tasks) > 0 {
				label += "*" + strconv.Itoa(len(cell.Tasks))
			}
			style := m.styles.CellStyle
			switch {
			case cell.Today:
				style = m.styles.TodayCellStyle
			case cell.Overdue:
				style = m.styles.OverdueCellStyle
			}
			b.WriteString(style.Width(6).Render(label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.HelpStyle.Render("h/l: prev/next month  t: today  *n: tasks due"))
	return b.String()
}

// renderWeek shows the weekly schedule columns.
func (m Model) renderWeek() string {
	s := week.Build(time.Now(), m.entries, m.tasks)
	todayIdx := s.TodayIndex(time.Now())

	colWidth := 18
	if m.width > 0 {
		if w := (m.width - 2) / 7; w > 10 && w < colWidth {
			colWidth = w
		}
	}

	var cols []string
	for i, d := range s.Days {
		header := d.Date.Format("Mon 01-02")
		headerStyle := m.styles.DayHeaderStyle
		if i == todayIdx {
			headerStyle = m.styles.TodayCellStyle
		}

		var lines []string
		lines = append(lines, headerStyle.Width(colWidth).Render(header))
		for _, slot := range d.Slots {
			label := truncate(slot.Label, colWidth-7)
			text := slot.Time + " " + label
			style := m.styles.CellStyle
			switch {
			case slot.Done:
				style = m.styles.CompletedStyle
			case !slot.Daily:
				style = m.styles.UpcomingStyle
			}
			lines = append(lines, style.Width(colWidth).Render(text))
		}
		cols = append(cols, lipgloss.JoinVertical(lipgloss.Left, lines...))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

// renderChat shows the assistant transcript and input.
func (m Model) renderChat() string {
	var b strings.Builder

	if m.asst == nil {
		if m.cfg.UI.ShowAssistant {
			b.WriteString(m.styles.ChatThinkingStyle.Render("Connecting to assistant..."))
		} else {
			b.WriteString(m.styles.HelpStyle.Render("Assistant disabled. Press 'i' to connect."))
		}
		b.WriteString("\n")
	}

	transcript := m.chat
	if maxLines := m.height - 10; maxLines > 0 && len(transcript) > maxLines {
		transcript = transcript[len(transcript)-maxLines:]
	}
	for _, line := range transcript {
		switch line.role {
		case "you":
			b.WriteString(m.styles.ChatUserStyle.Render("you: "))
			b.WriteString(m.styles.ChatAssistantStyle.Render(line.text))
		case "action":
			b.WriteString(m.styles.ChatActionStyle.Render("  ✓ " + line.text))
		default:
			b.WriteString(m.styles.ChatAssistantStyle.Render(line.text))
		}
		b.WriteString("\n")
	}

	if m.chatThinking {
		b.WriteString(m.styles.ChatThinkingStyle.Render("thinking..."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.chatInput.View())
	return b.String()
}

// renderForm shows the add/edit modal.
func (m Model) renderForm() string {
	title := "New Task"
	if m.mode == ModeDailyForm {
		title = "New Daily Task"
	}
	if m.editIndex >= 0 {
		title = "Edit " + strings.TrimPrefix(title, "New ")
	}

	var b strings.Builder
	b.WriteString(m.styles.ModalTitleStyle.Render(title))
	b.WriteString("\n\n")
	for i, field := range m.form {
		marker := "  "
		if i == m.formFocus {
			marker = "▸ "
		}
		b.WriteString(marker + field.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.HelpStyle.Render("tab: next field  enter: save  esc: cancel"))
	return m.styles.ModalBorderStyle.Render(b.String())
}

// renderConfirm shows the delete confirmation modal.
func (m Model) renderConfirm() string {
	body := m.styles.WarningStyle.Render(m.confirmMessage) + "\n\n" +
		m.styles.HelpStyle.Render("y: delete  n: keep")
	return m.styles.ModalBorderStyle.Render(body)
}

// renderFooter shows the status line and key hints.
func (m Model) renderFooter() string {
	if m.statusMsg != "" {
		if m.statusErr {
			return m.styles.ErrorStyle.Render(m.statusMsg)
		}
		return m.styles.StatusStyle.Render(m.statusMsg)
	}

	hints := "tab: switch view  a: add  e: edit  enter: complete  d: delete  y: copy  q: quit"
	if m.activeTab == TabChat {
		hints = "i: type  esc: stop typing  tab: switch view  q: quit"
	}
	if m.width > 0 && ansi.StringWidth(hints) > m.width {
		hints = "a: add  e: edit  d: delete  q: quit"
	}
	return m.styles.HelpStyle.Render(hints)
}

func truncate(s string, max int) string {
	if max <= 0 || ansi.StringWidth(s) <= max {
		return s
	}
	return ansi.Truncate(s, max-1, "…")
}
