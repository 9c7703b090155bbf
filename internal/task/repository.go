package task

// Repository defines the storage interface for the task list.
//
// The store is whole-file semantics: Save rewrites everything, Load returns
// everything. Mutating helpers exist so callers do not repeat the
// load-mutate-save dance.
type Repository interface {
	// Load returns all tasks in canonical order.
	Load() ([]*Task, error)

	// Save replaces the stored task list.
	Save(tasks []*Task) error

	// Add appends a task and persists the canonical ordering.
	Add(t *Task) error

	// Remove deletes the first task matching the (name, due, priority)
	// triple. Returns ErrTaskNotFound if no task matches.
	Remove(name, due string, priority int) (*Task, error)

	// RemoveByName deletes every task with the given name.
	// Returns ErrTaskNotFound if none matched.
	RemoveByName(name string) error

	// Replace swaps the first task matching the triple for the updated one.
	// Returns ErrTaskNotFound if no task matches.
	Replace(name, due string, priority int, updated *Task) error
}
