package ui

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/dateutil"
	"github.com/taskdeck/taskdeck/internal/task"
)

func (a *App) editCmd() *cobra.Command {
	var (
		name     string
		date     string
		priority int
		notes    string
	)

	cmd := &cobra.Command{
		Use:   "edit [name]",
		Short: "Edit a task in place",
		Long: `Edit the first task matching the given name. Only the provided flags
change; everything else is kept.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := a.repo.Load()
			if err != nil {
				return err
			}

			var current *task.Task
			for _, t := range tasks {
				if strings.EqualFold(t.Name, args[0]) {
					current = t
					break
				}
			}
			if current == nil {
				return fmt.Errorf("%w: %s", task.ErrTaskNotFound, args[0])
			}

			newName := current.Name
			if cmd.Flags().Changed("name") {
				newName = name
			}
			newDate := current.DueString()
			if cmd.Flags().Changed("date") {
				newDate, err = dateutil.NormalizeDate(date)
				if err != nil {
					return err
				}
			}
			newPriority := current.Priority
			if cmd.Flags().Changed("priority") {
				newPriority = priority
			}
			newNotes := current.Notes
			if cmd.Flags().Changed("notes") {
				newNotes = notes
			}

			updated, err := task.New(newName, newDate, newPriority, newNotes)
			if err != nil {
				return err
			}
			if err := a.repo.Replace(current.Name, current.DueString(), current.Priority, updated); err != nil {
				return err
			}

			fmt.Printf("Updated %q: due %s, priority %d\n", updated.Name, updated.DueString(), updated.Priority)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New task name")
	cmd.Flags().StringVar(&date, "date", "", "New due date (MM-DD-YYYY)")
	cmd.Flags().IntVar(&priority, "priority", 0, "New priority 1-5")
	cmd.Flags().StringVar(&notes, "notes", "", "New notes")

	return cmd
}
