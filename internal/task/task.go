// Package task defines the core domain types for taskdeck.
package task

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/taskdeck/taskdeck/internal/dateutil"
)

// DefaultNotes is stored when a task has no notes.
const DefaultNotes = "No notes"

// fieldSeparator joins task fields on disk.
const fieldSeparator = " | "

// Validation errors.
var (
	ErrEmptyName       = errors.New("task name cannot be empty")
	ErrInvalidPriority = errors.New("priority must be between 1 and 5")
	ErrMalformedLine   = errors.New("malformed task line")
)

// Domain errors.
var ErrTaskNotFound = errors.New("task not found")

// Bucket classifies a task relative to today.
type Bucket int

const (
	BucketOverdue Bucket = iota
	BucketToday
	BucketUpcoming
)

// Task represents a single TODO item.
type Task struct {
	Name     string
	Due      time.Time
	Priority int
	Notes    string
}

// New creates a Task with validation. due accepts any format NormalizeDate
// accepts; an empty due means today. Priority must be 1-5. Empty notes
// become DefaultNotes.
func New(name, due string, priority int, notes string) (*Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if priority < 1 || priority > 5 {
		return nil, ErrInvalidPriority
	}

	dueDate := dateutil.TruncateToDay(time.Now())
	if strings.TrimSpace(due) != "" {
		normalized, err := dateutil.NormalizeDate(due)
		if err != nil {
			return nil, err
		}
		dueDate, err = dateutil.ParseDate(normalized)
		if err != nil {
			return nil, err
		}
	}

	notes = strings.TrimSpace(notes)
	if notes == "" {
		notes = DefaultNotes
	}

	return &Task{
		Name:     name,
		Due:      dueDate,
		Priority: priority,
		Notes:    notes,
	}, nil
}

// DueString returns the due date in the canonical MM-DD-YYYY format.
func (t *Task) DueString() string {
	return dateutil.FormatDate(t.Due)
}

// Line renders the task as its on-disk pipe-delimited line.
func (t *Task) Line() string {
	notes := t.Notes
	if strings.TrimSpace(notes) == "" {
		notes = DefaultNotes
	}
	return strings.Join([]string{t.Name, t.DueString(), strconv.Itoa(t.Priority), notes}, fieldSeparator)
}

// ParseLine parses a pipe-delimited task line. Notes may themselves contain
// the separator; everything after the third field is rejoined.
func ParseLine(line string) (*Task, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, ErrMalformedLine
	}

	parts := strings.Split(line, fieldSeparator)
	if len(parts) < 3 {
		return nil, fmt.Errorf("%w: %q", ErrMalformedLine, line)
	}

	priority, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return nil, fmt.Errorf("%w: bad priority in %q", ErrMalformedLine, line)
	}

	due, err := dateutil.ParseDate(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, fmt.Errorf("%w: bad date in %q", ErrMalformedLine, line)
	}

	notes := DefaultNotes
	if len(parts) > 3 {
		joined := strings.TrimSpace(strings.Join(parts[3:], fieldSeparator))
		if joined != "" {
			notes = joined
		}
	}

	return &Task{
		Name:     parts[0],
		Due:      due,
		Priority: priority,
		Notes:    notes,
	}, nil
}

// Matches reports whether the task matches the given (name, due, priority)
// triple. This is the identity used for lookups; notes are ignored.
func (t *Task) Matches(name, due string, priority int) bool {
	return t.Name == name && t.DueString() == due && t.Priority == priority
}

// BucketFor classifies the task relative to the given day. Due dates parse
// in a fixed location while today comes from the wall clock, so the
// comparison is by calendar day, not by instant.
func (t *Task) BucketFor(today time.Time) Bucket {
	day := dateutil.DateOnly(today)
	due := dateutil.DateOnly(t.Due)
	switch {
	case due.Before(day):
		return BucketOverdue
	case due.Equal(day):
		return BucketToday
	default:
		return BucketUpcoming
	}
}

// Sort orders tasks canonically: due date ascending, then priority descending.
func Sort(tasks []*Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if !tasks[i].Due.Equal(tasks[j].Due) {
			return tasks[i].Due.Before(tasks[j].Due)
		}
		return tasks[i].Priority > tasks[j].Priority
	})
}

// Categorize splits tasks into overdue, today, and upcoming buckets.
// Overdue and upcoming keep canonical order; the today bucket is ordered by
// priority descending only.
func Categorize(tasks []*Task, today time.Time) (overdue, dueToday, upcoming []*Task) {
	for _, t := range tasks {
		switch t.BucketFor(today) {
		case BucketOverdue:
			overdue = append(overdue, t)
		case BucketToday:
			dueToday = append(dueToday, t)
		default:
			upcoming = append(upcoming, t)
		}
	}

	Sort(overdue)
	Sort(upcoming)
	sort.SliceStable(dueToday, func(i, j int) bool {
		return dueToday[i].Priority > dueToday[j].Priority
	})
	return overdue, dueToday, upcoming
}
