package ui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/daily"
)

func (a *App) dailyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Manage the recurring daily routine",
		RunE: func(_ *cobra.Command, _ []string) error {
			entries, err := a.dailyStore.Load()
			if err != nil {
				return err
			}
			printDailyList(entries, time.Now(), a.config.UI.Use24Hour)
			return nil
		},
	}

	cmd.AddCommand(a.dailyAddCmd())
	cmd.AddCommand(a.dailyDoneCmd())
	cmd.AddCommand(a.dailyRmCmd())
	cmd.AddCommand(a.dailyResetCmd())

	return cmd
}

func (a *App) dailyAddCmd() *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "add [text]",
		Short: "Add a daily task",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			e, err := daily.New(at, args[0])
			if err != nil {
				return err
			}
			if err := a.dailyStore.Add(e); err != nil {
				return err
			}
			fmt.Printf("Added %q at %s\n", e.Text, e.DisplayTime(a.config.UI.Use24Hour))
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "Time slot (HH:MM, 24-hour)")
	return cmd
}

func (a *App) dailyDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done [number]",
		Short: "Mark a daily task completed and credit your character",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			index, err := parseListNumber(args[0])
			if err != nil {
				return err
			}
			if err := a.dailyStore.Complete(index); err != nil {
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

			fmt.Println("Done.")
			if leveled {
				fmt.Println(formatDone(fmt.Sprintf("LEVEL UP! You are now level %d", stats.Level)))
			}
			return nil
		},
	}
}

func (a *App) dailyRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm [number]",
		Aliases: []string{"delete"},
		Short:   "Delete a daily task",
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			index, err := parseListNumber(args[0])
			if err != nil {
				return err
			}
			if err := a.dailyStore.Remove(index); err != nil {
				return err
			}
			fmt.Println("Deleted.")
			return nil
		},
	}
}

func (a *App) dailyResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear all completion marks, starting a fresh day",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.dailyStore.ResetForNewDay(); err != nil {
				return err
			}
			fmt.Println("Daily tasks reset.")
			return nil
		},
	}
}

// parseListNumber converts a 1-based list number to a 0-based index.
func parseListNumber(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("expected a task number from the list, got %q", s)
	}
	return n - 1, nil
}
