package ui

import (
	"testing"

	"github.com/taskdeck/taskdeck/internal/config"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := config.Default()
	cfg.Storage.DataDir = t.TempDir()
	cfg.UI.ShowAssistant = false

	a, err := NewApp(cfg)
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	return a
}

func TestCommandTree(t *testing.T) {
	a := newTestApp(t)

	want := []string{
		"version", "config", "add", "list", "done", "rm", "edit",
		"daily", "share", "import", "sync", "update", "manifest",
	}
	have := map[string]bool{}
	for _, c := range a.root.Commands() {
		have[c.Name()] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestAddAndListRoundTrip(t *testing.T) {
	a := newTestApp(t)

	a.root.SetArgs([]string{"add", "Water the plants", "--date", "06-01-2030", "--priority", "2"})
	if err := a.Execute(); err != nil {
		t.Fatalf("add: %v", err)
	}

	tasks, err := a.repo.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(tasks))
	}
	if tasks[0].Name != "Water the plants" || tasks[0].Priority != 2 {
		t.Errorf("stored task: %s", tasks[0].Line())
	}
}

func TestDoneCreditsCharacter(t *testing.T) {
	a := newTestApp(t)

	a.root.SetArgs([]string{"add", "Quick chore"})
	if err := a.Execute(); err != nil {
		t.Fatalf("add: %v", err)
	}
	a.root.SetArgs([]string{"done", "Quick chore"})
	if err := a.Execute(); err != nil {
		t.Fatalf("done: %v", err)
	}

	tasks, _ := a.repo.Load()
	if len(tasks) != 0 {
		t.Errorf("done should remove the task, %d left", len(tasks))
	}
	stats, err := a.charStore.Load()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TasksCompleted != 1 {
		t.Errorf("TasksCompleted = %d, want 1", stats.TasksCompleted)
	}
}

func TestParseListNumber(t *testing.T) {
	if _, err := parseListNumber("0"); err == nil {
		t.Error("0 is not a valid list number")
	}
	if _, err := parseListNumber("x"); err == nil {
		t.Error("non-numeric input should fail")
	}
	n, err := parseListNumber("3")
	if err != nil || n != 2 {
		t.Errorf("parseListNumber(3) = %d, %v", n, err)
	}
}

func TestPad(t *testing.T) {
	if got := pad("ab", 5); got != "ab   " {
		t.Errorf("pad short = %q", got)
	}
	if got := pad("abcdef", 4); got != "abc…" {
		t.Errorf("pad long = %q", got)
	}
}
