package ui

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) updateCmd() *cobra.Command {
	var checkOnly bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Check for and install the latest release",
		RunE: func(cmd *cobra.Command, _ []string) error {
			u := a.newUpdater()
			if u == nil {
				return errors.New("no update repository configured; set update.owner and update.repo")
			}

			fmt.Printf("Installed: %s\n", u.InstalledVersion())
			plan, err := u.Check(cmd.Context())
			if err != nil {
				return err
			}
			if plan.UpToDate() {
				fmt.Println(formatDone("Already up to date."))
				return nil
			}

			fmt.Printf("Available: %s\n", formatHeader(plan.RemoteVersion))
			for _, step := range plan.Steps {
				fmt.Printf("  %s  %s (%s)\n", step.Name, step.Info.Version, step.Reason)
			}
			if plan.ReleaseNotes != "" {
				fmt.Println(formatMuted(plan.ReleaseNotes))
			}
			if checkOnly {
				return nil
			}

			if err := u.Apply(cmd.Context(), plan); err != nil {
				return err
			}
			fmt.Println(formatDone("Updated to " + plan.RemoteVersion))
			if plan.NeedsRestart() {
				fmt.Println(formatOverdue("The main binary changed; restart taskdeck to finish."))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&checkOnly, "check", false, "Only report what would change")
	return cmd
}
