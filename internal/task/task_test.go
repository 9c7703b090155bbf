package task

import (
	"errors"
	"testing"
	"time"
)

func mustTask(t *testing.T, name, due string, priority int, notes string) *Task {
	t.Helper()
	tk, err := New(name, due, priority, notes)
	if err != nil {
		t.Fatalf("New(%q): %v", name, err)
	}
	return tk
}

func TestNew(t *testing.T) {
	t.Run("valid task", func(t *testing.T) {
		tk, err := New("Write report", "01-15-2025", 3, "quarterly numbers")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tk.Name != "Write report" {
			t.Errorf("got name %q, want %q", tk.Name, "Write report")
		}
		if tk.DueString() != "01-15-2025" {
			t.Errorf("got due %q, want %q", tk.DueString(), "01-15-2025")
		}
		if tk.Priority != 3 {
			t.Errorf("got priority %d, want 3", tk.Priority)
		}
		if tk.Notes != "quarterly numbers" {
			t.Errorf("got notes %q, want %q", tk.Notes, "quarterly numbers")
		}
	})

	t.Run("loose date is normalized", func(t *testing.T) {
		tk, err := New("Pay rent", "02/01/26", 5, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tk.DueString() != "02-01-2026" {
			t.Errorf("got due %q, want %q", tk.DueString(), "02-01-2026")
		}
	})

	t.Run("empty date defaults to today", func(t *testing.T) {
		tk, err := New("Buy milk", "", 1, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tk.DueString() != time.Now().Format("01-02-2006") {
			t.Errorf("got due %q, want today", tk.DueString())
		}
	})

	t.Run("empty notes default", func(t *testing.T) {
		tk := mustTask(t, "Buy milk", "01-15-2025", 1, "   ")
		if tk.Notes != DefaultNotes {
			t.Errorf("got notes %q, want %q", tk.Notes, DefaultNotes)
		}
	})

	t.Run("empty name", func(t *testing.T) {
		if _, err := New("  ", "01-15-2025", 1, ""); !errors.Is(err, ErrEmptyName) {
			t.Errorf("got %v, want ErrEmptyName", err)
		}
	})

	t.Run("priority out of range", func(t *testing.T) {
		for _, p := range []int{0, 6, -1} {
			if _, err := New("x", "01-15-2025", p, ""); !errors.Is(err, ErrInvalidPriority) {
				t.Errorf("priority %d: got %v, want ErrInvalidPriority", p, err)
			}
		}
	})
}

func TestLineRoundTrip(t *testing.T) {
	tk := mustTask(t, "Write report", "01-15-2025", 3, "quarterly numbers")
	line := tk.Line()
	want := "Write report | 01-15-2025 | 3 | quarterly numbers"
	if line != want {
		t.Fatalf("got line %q, want %q", line, want)
	}

	parsed, err := ParseLine(line)
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	if parsed.Name != tk.Name || parsed.DueString() != tk.DueString() ||
		parsed.Priority != tk.Priority || parsed.Notes != tk.Notes {
		t.Errorf("round trip mismatch: got %+v, want %+v", parsed, tk)
	}
}

func TestParseLine(t *testing.T) {
	t.Run("notes containing separator are rejoined", func(t *testing.T) {
		parsed, err := ParseLine("Ship v2 | 03-01-2025 | 4 | blockers: api | docs | QA")
		if err != nil {
			t.Fatalf("ParseLine: %v", err)
		}
		if parsed.Notes != "blockers: api | docs | QA" {
			t.Errorf("got notes %q", parsed.Notes)
		}
	})

	t.Run("three fields get default notes", func(t *testing.T) {
		parsed, err := ParseLine("Buy milk | 01-15-2025 | 1")
		if err != nil {
			t.Fatalf("ParseLine: %v", err)
		}
		if parsed.Notes != DefaultNotes {
			t.Errorf("got notes %q, want %q", parsed.Notes, DefaultNotes)
		}
	})

	t.Run("malformed lines", func(t *testing.T) {
		for _, line := range []string{"", "just a name", "a | b", "name | 01-15-2025 | high"} {
			if _, err := ParseLine(line); !errors.Is(err, ErrMalformedLine) {
				t.Errorf("line %q: got %v, want ErrMalformedLine", line, err)
			}
		}
	})
}

func TestSort(t *testing.T) {
	tasks := []*Task{
		mustTask(t, "late low", "03-01-2025", 1, ""),
		mustTask(t, "early low", "01-01-2025", 1, ""),
		mustTask(t, "early high", "01-01-2025", 5, ""),
		mustTask(t, "late high", "03-01-2025", 5, ""),
	}
	Sort(tasks)

	want := []string{"early high", "early low", "late high", "late low"}
	for i, name := range want {
		if tasks[i].Name != name {
			t.Errorf("position %d: got %q, want %q", i, tasks[i].Name, name)
		}
	}
}

func TestCategorize(t *testing.T) {
	today := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

	tasks := []*Task{
		mustTask(t, "yesterday", "06-14-2025", 2, ""),
		mustTask(t, "today low", "06-15-2025", 1, ""),
		mustTask(t, "today high", "06-15-2025", 5, ""),
		mustTask(t, "tomorrow", "06-16-2025", 3, ""),
		mustTask(t, "last week", "06-08-2025", 4, ""),
	}

	overdue, dueToday, upcoming := Categorize(tasks, today)

	if len(overdue) != 2 || overdue[0].Name != "last week" || overdue[1].Name != "yesterday" {
		t.Errorf("overdue: got %v", names(overdue))
	}
	if len(dueToday) != 2 || dueToday[0].Name != "today high" || dueToday[1].Name != "today low" {
		t.Errorf("today: got %v", names(dueToday))
	}
	if len(upcoming) != 1 || upcoming[0].Name != "tomorrow" {
		t.Errorf("upcoming: got %v", names(upcoming))
	}
}

func TestBucketForNonUTC(t *testing.T) {
	// Due dates parse in a fixed location; the clock is wherever the user
	// is. Buckets must come out the same on either side of UTC.
	for _, loc := range []*time.Location{
		time.FixedZone("UTC-5", -5*60*60),
		time.FixedZone("UTC+2", 2*60*60),
	} {
		now := time.Date(2025, 6, 15, 8, 0, 0, 0, loc)

		if got := mustTask(t, "due today", "06-15-2025", 3, "").BucketFor(now); got != BucketToday {
			t.Errorf("%s: today task bucketed %v, want BucketToday", loc, got)
		}
		if got := mustTask(t, "late", "06-14-2025", 3, "").BucketFor(now); got != BucketOverdue {
			t.Errorf("%s: yesterday task bucketed %v, want BucketOverdue", loc, got)
		}
		if got := mustTask(t, "ahead", "06-16-2025", 3, "").BucketFor(now); got != BucketUpcoming {
			t.Errorf("%s: tomorrow task bucketed %v, want BucketUpcoming", loc, got)
		}
	}
}

func names(tasks []*Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Name
	}
	return out
}
