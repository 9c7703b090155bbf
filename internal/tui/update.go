package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskdeck/taskdeck/internal/calendar"
	"github.com/taskdeck/taskdeck/internal/daily"
	"github.com/taskdeck/taskdeck/internal/dateutil"
	"github.com/taskdeck/taskdeck/internal/task"
	"github.com/taskdeck/taskdeck/internal/tui/commands"
)

// statusDuration is how long transient status messages stay visible.
const statusDuration = 4 * time.Second

// Update handles all messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case commands.TickMsg:
		return m.handleTick(time.Time(msg))

	case commands.TasksLoadedMsg:
		m.tasks = msg.Tasks
		m.clampCursors()
		return m, nil

	case commands.DailyLoadedMsg:
		m.entries = msg.Entries
		m.clampCursors()
		return m, nil

	case commands.StatsLoadedMsg:
		m.stats = msg.Stats
		return m, nil

	case commands.AssistantReadyMsg:
		m.asst = msg.Assistant
		m.chat = append(m.chat, chatLine{role: "assistant", text: msg.Greeting})
		return m, nil

	case commands.ChatReplyMsg:
		m.chatThinking = false
		if msg.Reply.Text != "" {
			m.chat = append(m.chat, chatLine{role: "assistant", text: msg.Reply.Text})
		}
		for _, action := range msg.Reply.Actions {
			m.chat = append(m.chat, chatLine{role: "action", text: action})
		}
		// Commands may have touched the files; reload everything.
		return m, tea.Batch(
			commands.LoadTasks(m.repo),
			commands.LoadStats(m.charStore),
		)

	case commands.UpdateCheckedMsg:
		if !msg.Plan.UpToDate() {
			return m.setStatus(fmt.Sprintf("Update available: %s (run 'taskdeck update')", msg.Plan.RemoteVersion), false)
		}
		return m, nil

	case commands.ErrMsg:
		m.chatThinking = false
		return m.setStatus(msg.Err.Error(), true)

	case commands.ClearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil
	}

	return m, nil
}

// handleTick refreshes the clock-derived state once a minute and rolls the
// daily list over at midnight.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{commands.Tick()}

	day := dateutil.TruncateToDay(now)
	if day.After(m.today) {
		m.today = day
		if err := m.dailyStore.ResetForNewDay(); err != nil {
			return m.setStatus(err.Error(), true)
		}
		cmds = append(cmds, commands.LoadDaily(m.dailyStore))
	}
	return m, tea.Batch(cmds...)
}

// handleKeyMsg routes keys by interaction mode.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeTaskForm, ModeDailyForm:
		return m.handleFormKeys(msg)
	case ModeConfirmDelete:
		return m.handleConfirmKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Chat input grabs plain keys while focused.
	if m.activeTab == TabChat && m.chatInput.Focused() {
		return m.handleChatKeys(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "tab", "right":
		m.activeTab = Tab((int(m.activeTab) + 1) % len(tabNames))
		return m, nil
	case "shift+tab", "left":
		m.activeTab = Tab((int(m.activeTab) + len(tabNames) - 1) % len(tabNames))
		return m, nil
	case "1", "2", "3", "4", "5":
		n, _ := strconv.Atoi(msg.String())
		if n >= 1 && n <= len(tabNames) {
			m.activeTab = Tab(n - 1)
		}
		return m, nil

	case "j", "down":
		m.moveCursor(1)
		return m, nil
	case "k", "up":
		m.moveCursor(-1)
		return m, nil

	case "a":
		switch m.activeTab {
		case TabTasks:
			m.mode = ModeTaskForm
			m.editIndex = -1
			m.form = m.newTaskForm(nil)
			m.formFocus = 0
		case TabDaily:
			m.mode = ModeDailyForm
			m.editIndex = -1
			m.form = m.newDailyForm(nil)
			m.formFocus = 0
		}
		return m, nil

	case "e":
		switch m.activeTab {
		case TabTasks:
			if t := m.selectedTask(); t != nil {
				m.mode = ModeTaskForm
				m.editIndex = m.taskCursor
				m.form = m.newTaskForm(t)
				m.formFocus = 0
			}
		case TabDaily:
			if e := m.selectedEntry(); e != nil {
				m.mode = ModeDailyForm
				m.editIndex = m.dailyCursor
				m.form = m.newDailyForm(e)
				m.formFocus = 0
			}
		}
		return m, nil

	case "d", "x":
		switch m.activeTab {
		case TabTasks:
			if t := m.selectedTask(); t != nil {
				m.mode = ModeConfirmDelete
				m.confirmMessage = fmt.Sprintf("Delete task %q?", t.Name)
			}
		case TabDaily:
			if e := m.selectedEntry(); e != nil {
				m.mode = ModeConfirmDelete
				m.confirmMessage = fmt.Sprintf("Delete daily task %q?", e.Text)
			}
		}
		return m, nil

	case "enter", " ":
		return m.completeSelection()

	case "y":
		return m.yankSelection()

	case "h":
		if m.activeTab == TabCalendar {
			m.calYear, m.calMonth = m.currentMonth().Prev()
			m.month = nil
		}
		return m, nil
	case "l":
		if m.activeTab == TabCalendar {
			m.calYear, m.calMonth = m.currentMonth().Next()
			m.month = nil
		}
		return m, nil
	case "t":
		if m.activeTab == TabCalendar {
			now := time.Now()
			m.calYear, m.calMonth = now.Year(), now.Month()
			m.month = nil
		}
		return m, nil

	case "i":
		if m.activeTab == TabChat {
			if m.asst == nil && !m.cfg.UI.ShowAssistant {
				return m, commands.StartAssistant(m.cfg, m.repo, m.charStore)
			}
			m.chatInput.Focus()
		}
		return m, nil

	case "r":
		return m, tea.Batch(
			commands.LoadTasks(m.repo),
			commands.LoadDaily(m.dailyStore),
			commands.LoadStats(m.charStore),
		)
	}

	return m, nil
}

// completeSelection finishes the selected item: daily tasks get their
// completion mark, dated tasks are removed and credited to the character.
func (m Model) completeSelection() (tea.Model, tea.Cmd) {
	switch m.activeTab {
	case TabTasks:
		t := m.selectedTask()
		if t == nil {
			return m, nil
		}
		if _, err := m.repo.Remove(t.Name, t.DueString(), t.Priority); err != nil {
			return m.setStatus(err.Error(), true)
		}
		leveled, err := m.credit()
		if err != nil {
			return m.setStatus(err.Error(), true)
		}
		status := fmt.Sprintf("Completed %q", t.Name)
		if leveled {
			status = fmt.Sprintf("Completed %q - LEVEL UP! Now level %d", t.Name, m.stats.Level)
		}
		model, cmd := m.setStatus(status, false)
		return model, tea.Batch(cmd, commands.LoadTasks(m.repo))

	case TabDaily:
		e := m.selectedEntry()
		if e == nil {
			return m, nil
		}
		if e.Completed {
			return m, nil
		}
		if err := m.dailyStore.Complete(m.dailyCursor); err != nil {
			return m.setStatus(err.Error(), true)
		}
		leveled, err := m.credit()
		if err != nil {
			return m.setStatus(err.Error(), true)
		}
		status := fmt.Sprintf("Completed %q", e.Text)
		if leveled {
			status = fmt.Sprintf("Completed %q - LEVEL UP! Now level %d", e.Text, m.stats.Level)
		}
		model, cmd := m.setStatus(status, false)
		return model, tea.Batch(cmd, commands.LoadDaily(m.dailyStore))
	}
	return m, nil
}

// credit records a completion on the character sheet.
func (m *Model) credit() (bool, error) {
	leveled := m.stats.RecordCompletion()
	if err := m.charStore.Save(m.stats); err != nil {
		return false, err
	}
	return leveled, nil
}

// yankSelection copies the selected item line to the system clipboard.
func (m Model) yankSelection() (tea.Model, tea.Cmd) {
	var line string
	switch m.activeTab {
	case TabTasks:
		if t := m.selectedTask(); t != nil {
			line = t.Line()
		}
	case TabDaily:
		if e := m.selectedEntry(); e != nil {
			line = e.Line()
		}
	}
	if line == "" {
		return m, nil
	}
	if err := clipboard.WriteAll(line); err != nil {
		return m.setStatus("clipboard: "+err.Error(), true)
	}
	return m.setStatus("Copied to clipboard", false)
}

// handleChatKeys handles typing in the chat input.
func (m Model) handleChatKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.chatInput.Blur()
		return m, nil
	case "enter":
		text := strings.TrimSpace(m.chatInput.Value())
		if text == "" || m.asst == nil || m.chatThinking {
			return m, nil
		}
		m.chat = append(m.chat, chatLine{role: "you", text: text})
		m.chatInput.SetValue("")
		m.chatThinking = true
		return m, commands.SendChat(m.asst, text)
	}

	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

// handleFormKeys handles the task and daily entry forms.
func (m Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.form = nil
		return m, nil

	case "tab", "down":
		return m.focusFormField(m.formFocus + 1), nil
	case "shift+tab", "up":
		return m.focusFormField(m.formFocus - 1), nil

	case "enter":
		if m.formFocus < len(m.form)-1 {
			return m.focusFormField(m.formFocus + 1), nil
		}
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.form[m.formFocus], cmd = m.form[m.formFocus].Update(msg)
	return m, cmd
}

func (m Model) focusFormField(idx int) Model {
	if len(m.form) == 0 {
		return m
	}
	idx = (idx + len(m.form)) % len(m.form)
	m.form[m.formFocus].Blur()
	m.formFocus = idx
	m.form[idx].Focus()
	return m
}

// submitForm validates and persists the form contents.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeTaskForm:
		return m.submitTaskForm()
	case ModeDailyForm:
		return m.submitDailyForm()
	}
	return m, nil
}

func (m Model) submitTaskForm() (tea.Model, tea.Cmd) {
	priority := 1
	if v := strings.TrimSpace(m.form[fieldPriority].Value()); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return m.setStatus("priority must be a number 1-5", true)
		}
		priority = p
	}

	date := strings.TrimSpace(m.form[fieldDate].Value())
	if date != "" {
		normalized, err := dateutil.NormalizeDate(date)
		if err != nil {
			return m.setStatus(err.Error(), true)
		}
		date = normalized
	}

	t, err := task.New(m.form[fieldName].Value(), date, priority, m.form[fieldNotes].Value())
	if err != nil {
		return m.setStatus(err.Error(), true)
	}

	if m.editIndex >= 0 {
		old := m.tasks[m.editIndex]
		err = m.repo.Replace(old.Name, old.DueString(), old.Priority, t)
	} else {
		err = m.repo.Add(t)
	}
	if err != nil {
		return m.setStatus(err.Error(), true)
	}

	m.mode = ModeNormal
	m.form = nil
	model, cmd := m.setStatus(fmt.Sprintf("Saved %q", t.Name), false)
	return model, tea.Batch(cmd, commands.LoadTasks(m.repo))
}

func (m Model) submitDailyForm() (tea.Model, tea.Cmd) {
	e, err := daily.New(strings.TrimSpace(m.form[fieldTime].Value()), m.form[fieldText].Value())
	if err != nil {
		return m.setStatus(err.Error(), true)
	}

	if m.editIndex >= 0 {
		err = m.dailyStore.Replace(m.editIndex, e)
	} else {
		err = m.dailyStore.Add(e)
	}
	if err != nil {
		return m.setStatus(err.Error(), true)
	}

	m.mode = ModeNormal
	m.form = nil
	model, cmd := m.setStatus(fmt.Sprintf("Saved %q", e.Text), false)
	return model, tea.Batch(cmd, commands.LoadDaily(m.dailyStore))
}

// handleConfirmKeys handles the delete confirmation modal.
func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		m.mode = ModeNormal
		return m.deleteSelection()
	case "n", "esc":
		m.mode = ModeNormal
		m.confirmMessage = ""
		return m, nil
	}
	return m, nil
}

func (m Model) deleteSelection() (tea.Model, tea.Cmd) {
	m.confirmMessage = ""
	switch m.activeTab {
	case TabTasks:
		t := m.selectedTask()
		if t == nil {
			return m, nil
		}
		if _, err := m.repo.Remove(t.Name, t.DueString(), t.Priority); err != nil {
			return m.setStatus(err.Error(), true)
		}
		model, cmd := m.setStatus(fmt.Sprintf("Deleted %q", t.Name), false)
		return model, tea.Batch(cmd, commands.LoadTasks(m.repo))

	case TabDaily:
		e := m.selectedEntry()
		if e == nil {
			return m, nil
		}
		if err := m.dailyStore.Remove(m.dailyCursor); err != nil {
			return m.setStatus(err.Error(), true)
		}
		model, cmd := m.setStatus(fmt.Sprintf("Deleted %q", e.Text), false)
		return model, tea.Batch(cmd, commands.LoadDaily(m.dailyStore))
	}
	return m, nil
}

// Cursor and selection helpers.

func (m *Model) moveCursor(delta int) {
	switch m.activeTab {
	case TabTasks:
		m.taskCursor = clamp(m.taskCursor+delta, 0, len(m.tasks)-1)
	case TabDaily:
		m.dailyCursor = clamp(m.dailyCursor+delta, 0, len(m.entries)-1)
	}
}

func (m *Model) clampCursors() {
	m.taskCursor = clamp(m.taskCursor, 0, len(m.tasks)-1)
	m.dailyCursor = clamp(m.dailyCursor, 0, len(m.entries)-1)
}

func (m *Model) selectedTask() *task.Task {
	if m.taskCursor < 0 || m.taskCursor >= len(m.tasks) {
		return nil
	}
	return m.tasks[m.taskCursor]
}

func (m *Model) selectedEntry() *daily.Entry {
	if m.dailyCursor < 0 || m.dailyCursor >= len(m.entries) {
		return nil
	}
	return m.entries[m.dailyCursor]
}

func (m *Model) currentMonth() *calendar.Month {
	if m.month == nil || m.month.Year != m.calYear || m.month.Month != m.calMonth {
		m.month = calendar.New(m.calYear, m.calMonth, m.tasks, time.Now())
	}
	return m.month
}

func (m Model) setStatus(msg string, isErr bool) (Model, tea.Cmd) {
	m.statusMsg = msg
	m.statusErr = isErr
	return m, commands.ClearStatusAfter(statusDuration)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
