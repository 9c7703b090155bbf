package character

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRecordCompletion(t *testing.T) {
	s := &Stats{}
	for i := 1; i <= 4; i++ {
		if s.RecordCompletion() {
			t.Errorf("completion %d: unexpected level up", i)
		}
	}
	if !s.RecordCompletion() {
		t.Error("completion 5: expected level up")
	}
	if s.Level != 1 || s.TasksCompleted != 5 {
		t.Errorf("got level %d completed %d, want 1/5", s.Level, s.TasksCompleted)
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		completed int
		want      int
	}{
		{0, 0}, {1, 20}, {4, 80}, {5, 0}, {7, 40},
	}
	for _, tt := range tests {
		s := &Stats{TasksCompleted: tt.completed}
		if got := s.Progress(); got != tt.want {
			t.Errorf("completed=%d: got %d%%, want %d%%", tt.completed, got, tt.want)
		}
	}
}

func TestStoreRoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	if err := store.Save(&Stats{Level: 3, TasksCompleted: 17}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	stats, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if stats.Level != 3 || stats.TasksCompleted != 17 {
		t.Errorf("got %+v, want level 3 completed 17", stats)
	}
}

func TestLoadMissingOrCorrupt(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	stats, err := store.Load()
	if err != nil {
		t.Fatalf("Load missing: %v", err)
	}
	if stats.Level != 1 || stats.TasksCompleted != 0 {
		t.Errorf("missing file: got %+v, want a fresh level-1 character", stats)
	}

	if err := os.WriteFile(filepath.Join(dir, Filename), []byte("not | numbers"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	stats, err = store.Load()
	if err != nil {
		t.Fatalf("Load corrupt: %v", err)
	}
	if stats.Level != 1 || stats.TasksCompleted != 0 {
		t.Errorf("corrupt file: got %+v, want a fresh level-1 character", stats)
	}
}
