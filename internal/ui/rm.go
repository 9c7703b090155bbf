package ui

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm [name]",
		Aliases: []string{"delete"},
		Short:   "Delete a task without completing it",
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.repo.RemoveByName(args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted %q\n", args[0])
			return nil
		},
	}
}
