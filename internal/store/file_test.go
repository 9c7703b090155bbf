package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/taskdeck/taskdeck/internal/task"
)

func newStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func addTask(t *testing.T, s *FileStore, name, due string, priority int, notes string) *task.Task {
	t.Helper()
	tk, err := task.New(name, due, priority, notes)
	if err != nil {
		t.Fatalf("task.New: %v", err)
	}
	if err := s.Add(tk); err != nil {
		t.Fatalf("Add: %v", err)
	}
	return tk
}

func TestLoadMissingFile(t *testing.T) {
	s := newStore(t)
	tasks, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("got %d tasks, want 0", len(tasks))
	}
}

func TestAddAndLoadKeepsCanonicalOrder(t *testing.T) {
	s := newStore(t)
	addTask(t, s, "later", "03-01-2025", 2, "")
	addTask(t, s, "sooner", "01-01-2025", 1, "")
	addTask(t, s, "sooner urgent", "01-01-2025", 5, "")

	tasks, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"sooner urgent", "sooner", "later"}
	if len(tasks) != len(want) {
		t.Fatalf("got %d tasks, want %d", len(tasks), len(want))
	}
	for i, name := range want {
		if tasks[i].Name != name {
			t.Errorf("position %d: got %q, want %q", i, tasks[i].Name, name)
		}
	}
}

func TestLoadSkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	content := "good task | 01-15-2025 | 3 | some notes\n" +
		"this line is garbage\n" +
		"\n" +
		"another | 02-15-2025 | not-a-number | notes\n" +
		"second good | 02-01-2025 | 1\n"
	if err := os.WriteFile(filepath.Join(dir, TodoFilename), []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	tasks, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
}

func TestRemove(t *testing.T) {
	s := newStore(t)
	addTask(t, s, "keep", "01-15-2025", 2, "")
	addTask(t, s, "drop", "01-16-2025", 3, "has notes")

	removed, err := s.Remove("drop", "01-16-2025", 3)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if removed.Notes != "has notes" {
		t.Errorf("removed task lost notes: %q", removed.Notes)
	}

	tasks, _ := s.Load()
	if len(tasks) != 1 || tasks[0].Name != "keep" {
		t.Errorf("unexpected remaining tasks: %v", tasks)
	}

	if _, err := s.Remove("drop", "01-16-2025", 3); !errors.Is(err, task.ErrTaskNotFound) {
		t.Errorf("got %v, want ErrTaskNotFound", err)
	}
}

func TestRemoveByName(t *testing.T) {
	s := newStore(t)
	addTask(t, s, "dup", "01-15-2025", 2, "")
	addTask(t, s, "dup", "01-20-2025", 4, "")
	addTask(t, s, "other", "01-16-2025", 3, "")

	if err := s.RemoveByName("dup"); err != nil {
		t.Fatalf("RemoveByName: %v", err)
	}
	tasks, _ := s.Load()
	if len(tasks) != 1 || tasks[0].Name != "other" {
		t.Errorf("unexpected remaining tasks: %v", tasks)
	}

	if err := s.RemoveByName("dup"); !errors.Is(err, task.ErrTaskNotFound) {
		t.Errorf("got %v, want ErrTaskNotFound", err)
	}
}

func TestReplace(t *testing.T) {
	s := newStore(t)
	addTask(t, s, "old name", "01-15-2025", 2, "original notes")

	updated, err := task.New("new name", "01-20-2025", 4, "original notes")
	if err != nil {
		t.Fatalf("task.New: %v", err)
	}
	if err := s.Replace("old name", "01-15-2025", 2, updated); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	tasks, _ := s.Load()
	if len(tasks) != 1 || tasks[0].Name != "new name" || tasks[0].Priority != 4 {
		t.Errorf("unexpected tasks after replace: %+v", tasks[0])
	}

	if err := s.Replace("old name", "01-15-2025", 2, updated); !errors.Is(err, task.ErrTaskNotFound) {
		t.Errorf("got %v, want ErrTaskNotFound", err)
	}
}
