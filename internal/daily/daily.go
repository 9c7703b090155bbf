// Package daily manages the time-slotted daily task list.
package daily

import (
	"errors"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/taskdeck/taskdeck/internal/dateutil"
)

// CompletedPrefix marks a finished entry on disk.
const CompletedPrefix = "[COMPLETED] "

// entryPattern matches "HH:MM - description".
var entryPattern = regexp.MustCompile(`^(\d{2}:\d{2}) - (.+)$`)

// Validation errors.
var (
	ErrEmptyText   = errors.New("daily task text cannot be empty")
	ErrInvalidTime = errors.New("time must be in HH:MM format")
	ErrNotFound    = errors.New("daily task not found")
)

// Status is the time-derived state of an entry.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusOverdue   Status = "Overdue"
	StatusCompleted Status = "Completed"
)

// Entry is a single daily task.
type Entry struct {
	Time      string // HH:MM, 24-hour; "00:00" when the line had no time
	Text      string
	Completed bool
}

// New creates an Entry with validation. An empty time defaults to "00:00".
func New(timeStr, text string) (*Entry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}
	if timeStr == "" {
		timeStr = "00:00"
	}
	if !dateutil.ValidTime(timeStr) {
		return nil, ErrInvalidTime
	}
	return &Entry{Time: timeStr, Text: text}, nil
}

// ParseLine parses one dailytask.txt line. Completion is encoded by the
// "[COMPLETED] " prefix; lines without a leading "HH:MM - " get time 00:00.
func ParseLine(line string) *Entry {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	completed := strings.HasPrefix(line, CompletedPrefix)
	if completed {
		line = strings.TrimPrefix(line, CompletedPrefix)
	}

	e := &Entry{Time: "00:00", Text: line, Completed: completed}
	if m := entryPattern.FindStringSubmatch(line); m != nil && dateutil.ValidTime(m[1]) {
		e.Time = m[1]
		e.Text = m[2]
	}
	return e
}

// Line renders the entry as its on-disk line.
func (e *Entry) Line() string {
	line := e.Time + " - " + e.Text
	if e.Completed {
		return CompletedPrefix + line
	}
	return line
}

// StatusAt derives the entry status relative to the given wall-clock time.
func (e *Entry) StatusAt(now time.Time) Status {
	if e.Completed {
		return StatusCompleted
	}
	nowMinutes := now.Hour()*60 + now.Minute()
	if nowMinutes > dateutil.MinutesOfDay(e.Time) {
		return StatusOverdue
	}
	return StatusPending
}

// DisplayTime formats the entry time for display.
func (e *Entry) DisplayTime(use24Hour bool) string {
	return dateutil.FormatClock(e.Time, use24Hour)
}

// SortByTime orders entries by their time slot, stable within a slot.
func SortByTime(entries []*Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return dateutil.MinutesOfDay(entries[i].Time) < dateutil.MinutesOfDay(entries[j].Time)
	})
}

// Reset clears completion markers on all entries, starting a new day.
func Reset(entries []*Entry) {
	for _, e := range entries {
		e.Completed = false
	}
}
