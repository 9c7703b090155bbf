package ui

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) doneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done [name]",
		Short: "Complete a task and credit your character",
		Long: `Complete the first task matching the given name. The task is removed
from the list and counts towards your character level.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.repo.RemoveByName(args[0]); err != nil {
				return err
			}

			stats, err := a.charStore.Load()
			if err != nil {
				return err
			}
			leveled := stats.RecordCompletion()
			if err := a.charStore.Save(stats); err != nil {
				return err
			}

			fmt.Printf("Completed %q\n", args[0])
			if leveled {
				fmt.Println(formatDone(fmt.Sprintf("LEVEL UP! You are now level %d", stats.Level)))
			} else {
				fmt.Printf("Level %d, %d%% to next level\n", stats.Level, stats.Progress())
			}
			return nil
		},
	}
}
