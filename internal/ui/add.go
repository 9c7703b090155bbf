package ui

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/dateutil"
	"github.com/taskdeck/taskdeck/internal/task"
)

func (a *App) addCmd() *cobra.Command {
	var (
		date     string
		priority int
		notes    string
	)

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a new task",
		Long: `Add a new dated task.

Example:
  taskdeck add "Write documentation" --date=01-10-2026 --priority=4 --notes="chapters 1-3"`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			due := strings.TrimSpace(date)
			if due != "" {
				normalized, err := dateutil.NormalizeDate(due)
				if err != nil {
					return err
				}
				due = normalized
			}

			t, err := task.New(args[0], due, priority, notes)
			if err != nil {
				return err
			}
			if err := a.repo.Add(t); err != nil {
				return fmt.Errorf("adding task: %w", err)
			}

			fmt.Printf("Added %q due %s (priority %d)\n", t.Name, t.DueString(), t.Priority)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Due date (MM-DD-YYYY, default: today)")
	cmd.Flags().IntVar(&priority, "priority", 1, "Priority 1-5 (5 is most urgent)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")

	return cmd
}
