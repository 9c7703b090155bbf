package ui

import (
	"time"

	"github.com/spf13/cobra"
)

func (a *App) listCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks grouped by due date",
		RunE: func(_ *cobra.Command, _ []string) error {
			tasks, err := a.repo.Load()
			if err != nil {
				return err
			}
			printTaskSections(tasks, time.Now(), verbose)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show notes")
	return cmd
}
