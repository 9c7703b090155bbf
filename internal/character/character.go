// Package character tracks the gamified completion stats.
package character

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Filename is the stats file inside the data directory.
const Filename = "character.txt"

// TasksPerLevel is how many completions advance the level.
const TasksPerLevel = 5

// Stats holds the character progression state.
type Stats struct {
	Level          int
	TasksCompleted int
}

// NewStats returns a fresh character at level 1.
func NewStats() *Stats {
	return &Stats{Level: 1}
}

// RecordCompletion credits one finished task, leveling up every
// TasksPerLevel completions. Returns true when a level was gained.
func (s *Stats) RecordCompletion() bool {
	s.TasksCompleted++
	if s.TasksCompleted%TasksPerLevel == 0 {
		s.Level++
		return true
	}
	return false
}

// Progress returns the progress toward the next level in percent.
func (s *Stats) Progress() int {
	return (s.TasksCompleted % TasksPerLevel) * (100 / TasksPerLevel)
}

// Store persists Stats as a single "level | completed" line.
type Store struct {
	path string
}

// NewStore creates a Store rooted at dir, creating the directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &Store{path: filepath.Join(dir, Filename)}, nil
}

// Load reads the stats. A missing or unparseable file yields a fresh
// level-1 character.
func (s *Store) Load() (*Stats, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewStats(), nil
		}
		return nil, fmt.Errorf("reading character file: %w", err)
	}

	parts := strings.Split(strings.TrimSpace(string(data)), " | ")
	if len(parts) != 2 {
		return NewStats(), nil
	}
	level, err1 := strconv.Atoi(parts[0])
	completed, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return NewStats(), nil
	}
	return &Stats{Level: level, TasksCompleted: completed}, nil
}

// Save writes the stats.
func (s *Store) Save(stats *Stats) error {
	line := fmt.Sprintf("%d | %d", stats.Level, stats.TasksCompleted)
	if err := os.WriteFile(s.path, []byte(line), 0o644); err != nil {
		return fmt.Errorf("writing character file: %w", err)
	}
	return nil
}
