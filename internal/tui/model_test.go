package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/taskdeck/taskdeck/internal/character"
	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/daily"
	"github.com/taskdeck/taskdeck/internal/dateutil"
	"github.com/taskdeck/taskdeck/internal/store"
	"github.com/taskdeck/taskdeck/internal/task"
	"github.com/taskdeck/taskdeck/internal/tui/commands"
)

func init() {
	// Deterministic rendering regardless of the test terminal.
	lipgloss.SetColorProfile(termenv.Ascii)
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	dir := t.TempDir()

	repo, err := store.New(dir)
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	dailyStore, err := daily.NewStore(dir)
	if err != nil {
		t.Fatalf("daily.NewStore: %v", err)
	}
	charStore, err := character.NewStore(dir)
	if err != nil {
		t.Fatalf("character.NewStore: %v", err)
	}

	cfg := config.Default()
	cfg.Storage.DataDir = dir
	cfg.UI.ShowAssistant = false

	return *New(cfg, repo, dailyStore, charStore, nil)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTabCycling(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	if m.activeTab != TabDaily {
		t.Errorf("after tab: activeTab = %d, want TabDaily", m.activeTab)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = updated.(Model)
	if m.activeTab != TabTasks {
		t.Errorf("after shift+tab: activeTab = %d, want TabTasks", m.activeTab)
	}

	updated, _ = m.Update(keyRunes("5"))
	m = updated.(Model)
	if m.activeTab != TabChat {
		t.Errorf("after '5': activeTab = %d, want TabChat", m.activeTab)
	}
}

func TestAddTaskForm(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(keyRunes("a"))
	m = updated.(Model)
	if m.mode != ModeTaskForm {
		t.Fatalf("mode = %d, want ModeTaskForm", m.mode)
	}

	m.form[fieldName].SetValue("Write report")
	m.form[fieldDate].SetValue("12/25/2026")
	m.form[fieldPriority].SetValue("4")
	m.formFocus = len(m.form) - 1

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if m.mode != ModeNormal {
		t.Fatalf("form did not close: mode = %d, status %q", m.mode, m.statusMsg)
	}

	tasks, err := m.repo.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(tasks))
	}
	if tasks[0].Name != "Write report" || tasks[0].DueString() != "12-25-2026" || tasks[0].Priority != 4 {
		t.Errorf("stored task: %s", tasks[0].Line())
	}
}

func TestAddTaskFormRejectsBadDate(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(keyRunes("a"))
	m = updated.(Model)
	m.form[fieldName].SetValue("Bad date")
	m.form[fieldDate].SetValue("13-45-2026")
	m.formFocus = len(m.form) - 1

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if m.mode != ModeTaskForm {
		t.Error("form should stay open on a bad date")
	}
	if !m.statusErr {
		t.Error("bad date should set an error status")
	}
}

func TestCompleteTaskCreditsCharacter(t *testing.T) {
	m := newTestModel(t)

	tk, err := task.New("Ship it", "", 3, "")
	if err != nil {
		t.Fatalf("task.New: %v", err)
	}
	if err := m.repo.Add(tk); err != nil {
		t.Fatalf("Add: %v", err)
	}
	updated, _ := m.Update(commands.TasksLoadedMsg{Tasks: []*task.Task{tk}})
	m = updated.(Model)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	tasks, err := m.repo.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("task should be removed on completion, %d left", len(tasks))
	}
	if m.stats.TasksCompleted != 1 {
		t.Errorf("TasksCompleted = %d, want 1", m.stats.TasksCompleted)
	}

	stats, err := m.charStore.Load()
	if err != nil {
		t.Fatalf("stats Load: %v", err)
	}
	if stats.TasksCompleted != 1 {
		t.Errorf("persisted TasksCompleted = %d, want 1", stats.TasksCompleted)
	}
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	m := newTestModel(t)

	tk, err := task.New("Keep me", "", 2, "")
	if err != nil {
		t.Fatalf("task.New: %v", err)
	}
	if err := m.repo.Add(tk); err != nil {
		t.Fatalf("Add: %v", err)
	}
	updated, _ := m.Update(commands.TasksLoadedMsg{Tasks: []*task.Task{tk}})
	m = updated.(Model)

	updated, _ = m.Update(keyRunes("d"))
	m = updated.(Model)
	if m.mode != ModeConfirmDelete {
		t.Fatalf("mode = %d, want ModeConfirmDelete", m.mode)
	}

	// Declining keeps the task.
	updated, _ = m.Update(keyRunes("n"))
	m = updated.(Model)
	tasks, _ := m.repo.Load()
	if len(tasks) != 1 {
		t.Fatalf("declined delete removed the task")
	}

	// Confirming removes it.
	updated, _ = m.Update(keyRunes("d"))
	m = updated.(Model)
	updated, _ = m.Update(keyRunes("y"))
	m = updated.(Model)
	tasks, _ = m.repo.Load()
	if len(tasks) != 0 {
		t.Errorf("confirmed delete left %d tasks", len(tasks))
	}
}

func TestMidnightResetClearsDailyCompletion(t *testing.T) {
	m := newTestModel(t)

	e, err := daily.New("08:00", "stretch")
	if err != nil {
		t.Fatalf("daily.New: %v", err)
	}
	if err := m.dailyStore.Add(e); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := m.dailyStore.Complete(0); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	// Tick before midnight: completion stays.
	sameDay := time.Now()
	updated, _ := m.Update(commands.TickMsg(sameDay))
	m = updated.(Model)
	entries, _ := m.dailyStore.Load()
	if !entries[0].Completed {
		t.Fatal("same-day tick must not reset completion")
	}

	// Tick on the next day: completion is cleared.
	nextDay := dateutil.TruncateToDay(sameDay).AddDate(0, 0, 1).Add(time.Minute)
	updated, _ = m.Update(commands.TickMsg(nextDay))
	m = updated.(Model)
	entries, _ = m.dailyStore.Load()
	if entries[0].Completed {
		t.Error("next-day tick should clear completion")
	}
	if entries[0].Text != "stretch" {
		t.Errorf("entry text lost in reset: %q", entries[0].Text)
	}
}

func TestViewShowsTabsAndLevel(t *testing.T) {
	m := newTestModel(t)
	m.width = 120
	m.height = 40

	out := ansi.Strip(m.View())
	for _, want := range []string{"taskdeck", "Lv 1", "Tasks", "Daily", "Calendar", "Week", "Chat"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestViewRendersTaskSections(t *testing.T) {
	m := newTestModel(t)
	m.width = 120
	m.height = 40

	yesterday := time.Now().AddDate(0, 0, -1)
	late, err := task.New("Late thing", dateutil.FormatDate(yesterday), 5, "")
	if err != nil {
		t.Fatalf("task.New: %v", err)
	}
	today, err := task.New("Today thing", "", 3, "")
	if err != nil {
		t.Fatalf("task.New: %v", err)
	}
	updated, _ := m.Update(commands.TasksLoadedMsg{Tasks: []*task.Task{late, today}})
	m = updated.(Model)

	out := ansi.Strip(m.View())
	if !strings.Contains(out, "Overdue") || !strings.Contains(out, "Late thing") {
		t.Error("overdue section missing")
	}
	if !strings.Contains(out, "Due Today") || !strings.Contains(out, "Today thing") {
		t.Error("due today section missing")
	}
}
