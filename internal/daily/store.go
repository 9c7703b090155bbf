package daily

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Filename is the daily task file inside the data directory.
const Filename = "dailytask.txt"

// Store persists daily entries to a flat text file, preserving line order.
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

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns all entries in file order. A missing file is an empty list.
func (s *Store) Load() ([]*Entry, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening daily task file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var entries []*Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if e := ParseLine(scanner.Text()); e != nil {
			entries = append(entries, e)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading daily task file: %w", err)
	}
	return entries, nil
}

// Save replaces the stored entries with a whole-file overwrite.
func (s *Store) Save(entries []*Entry) error {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(e.Line())
		b.WriteByte('\n')
	}
	if err := os.WriteFile(s.path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing daily task file: %w", err)
	}
	return nil
}

// Add appends an entry, keeping entries ordered by time slot.
func (s *Store) Add(e *Entry) error {
	entries, err := s.Load()
	if err != nil {
		return err
	}
	entries = append(entries, e)
	SortByTime(entries)
	return s.Save(entries)
}

// Complete marks the entry at index as completed.
func (s *Store) Complete(index int) error {
	entries, err := s.Load()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(entries) {
		return ErrNotFound
	}
	entries[index].Completed = true
	return s.Save(entries)
}

// Remove deletes the entry at index.
func (s *Store) Remove(index int) error {
	entries, err := s.Load()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(entries) {
		return ErrNotFound
	}
	entries = append(entries[:index], entries[index+1:]...)
	return s.Save(entries)
}

// Replace swaps the entry at index, re-sorting by time slot.
func (s *Store) Replace(index int, e *Entry) error {
	entries, err := s.Load()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(entries) {
		return ErrNotFound
	}
	entries[index] = e
	SortByTime(entries)
	return s.Save(entries)
}

// ResetForNewDay strips completion markers from every entry. Called when
// the date rolls over so the list starts fresh.
func (s *Store) ResetForNewDay() error {
	entries, err := s.Load()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	Reset(entries)
	return s.Save(entries)
}
