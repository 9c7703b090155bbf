package ui

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/share"
)

func (a *App) shareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "share",
		Short: "Share tasks with another instance on the LAN",
		Long: `Listen on an ephemeral TCP port and serve the current task lists as
JSON to anyone who connects. Stop with Ctrl-C.

On the other machine, run: taskdeck import <host:port>`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			srv, err := share.NewServer(func() (*share.Payload, error) {
				tasks, err := a.repo.Load()
				if err != nil {
					return nil, err
				}
				entries, err := a.dailyStore.Load()
				if err != nil {
					return nil, err
				}
				return share.BuildPayload(tasks, entries), nil
			})
			if err != nil {
				return err
			}

			fmt.Printf("Sharing tasks on %s (Ctrl-C to stop)\n", formatHeader(srv.Addr()))

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := srv.Serve(ctx); err != share.ErrServerClosed {
				return err
			}
			fmt.Println("Stopped sharing.")
			return nil
		},
	}
}

func (a *App) importCmd() *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import [host:port]",
		Short: "Import tasks shared by another instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := share.Fetch(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if replace {
				return a.importReplace(payload)
			}
			return a.importMerge(payload)
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "Overwrite local lists instead of merging")
	return cmd
}

func (a *App) importMerge(payload *share.Payload) error {
	tasks, err := a.repo.Load()
	if err != nil {
		return err
	}
	merged, addedTasks, err := share.MergeTasks(tasks, payload.Tasks)
	if err != nil {
		return err
	}
	if err := a.repo.Save(merged); err != nil {
		return err
	}

	entries, err := a.dailyStore.Load()
	if err != nil {
		return err
	}
	mergedDaily, addedDaily := share.MergeDaily(entries, payload.DailyTasks)
	if err := a.dailyStore.Save(mergedDaily); err != nil {
		return err
	}

	fmt.Printf("Imported %d tasks and %d daily tasks (duplicates skipped)\n", addedTasks, addedDaily)
	return nil
}

func (a *App) importReplace(payload *share.Payload) error {
	merged, _, err := share.MergeTasks(nil, payload.Tasks)
	if err != nil {
		return err
	}
	if err := a.repo.Save(merged); err != nil {
		return err
	}

	entries := share.ReplaceDaily(payload.DailyTasks)
	if err := a.dailyStore.Save(entries); err != nil {
		return err
	}

	fmt.Printf("Replaced local lists: %d tasks, %d daily tasks\n", len(merged), len(entries))
	return nil
}
