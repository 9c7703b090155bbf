// Package store provides the flat-file storage implementation.
package store

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/taskdeck/taskdeck/internal/logging"
	"github.com/taskdeck/taskdeck/internal/task"
)

// TodoFilename is the task list file inside the data directory.
const TodoFilename = "todo.txt"

// FileStore implements task.Repository on a pipe-delimited text file.
//
// There is no locking; concurrent writers race and the last writer wins.
type FileStore struct {
	path string
}

// New creates a FileStore rooted at dir, creating the directory if needed.
func New(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &FileStore{path: filepath.Join(dir, TodoFilename)}, nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load returns all tasks in canonical order. A missing file is an empty
// list. Malformed lines are skipped with a warning.
func (s *FileStore) Load() ([]*task.Task, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening task file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var tasks []*task.Task
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		t, err := task.ParseLine(line)
		if err != nil {
			logging.Warn("skipping malformed task line", "line", line, "err", err)
			continue
		}
		tasks = append(tasks, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading task file: %w", err)
	}

	task.Sort(tasks)
	return tasks, nil
}

// Save replaces the stored task list with a whole-file overwrite.
func (s *FileStore) Save(tasks []*task.Task) error {
	var b strings.Builder
	for _, t := range tasks {
		b.WriteString(t.Line())
		b.WriteByte('\n')
	}
	if err := os.WriteFile(s.path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing task file: %w", err)
	}
	return nil
}

// Add appends a task and persists the canonical ordering.
func (s *FileStore) Add(t *task.Task) error {
	tasks, err := s.Load()
	if err != nil {
		return err
	}
	tasks = append(tasks, t)
	task.Sort(tasks)
	return s.Save(tasks)
}

// Remove deletes the first task matching the (name, due, priority) triple.
func (s *FileStore) Remove(name, due string, priority int) (*task.Task, error) {
	tasks, err := s.Load()
	if err != nil {
		return nil, err
	}
	for i, t := range tasks {
		if t.Matches(name, due, priority) {
			removed := tasks[i]
			tasks = append(tasks[:i], tasks[i+1:]...)
			if err := s.Save(tasks); err != nil {
				return nil, err
			}
			return removed, nil
		}
	}
	return nil, task.ErrTaskNotFound
}

// RemoveByName deletes every task with the given name.
func (s *FileStore) RemoveByName(name string) error {
	tasks, err := s.Load()
	if err != nil {
		return err
	}
	kept := tasks[:0]
	for _, t := range tasks {
		if t.Name != name {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(tasks) {
		return task.ErrTaskNotFound
	}
	return s.Save(kept)
}

// Replace swaps the first task matching the triple for the updated one.
func (s *FileStore) Replace(name, due string, priority int, updated *task.Task) error {
	tasks, err := s.Load()
	if err != nil {
		return err
	}
	for i, t := range tasks {
		if t.Matches(name, due, priority) {
			tasks[i] = updated
			task.Sort(tasks)
			return s.Save(tasks)
		}
	}
	return task.ErrTaskNotFound
}
