package ui

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/mysqlsync"
)

func (a *App) syncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Synchronize tasks with the configured MySQL server",
	}

	cmd.AddCommand(a.syncPushCmd())
	cmd.AddCommand(a.syncPullCmd())
	cmd.AddCommand(a.syncTestCmd())

	return cmd
}

// syncClient connects to the configured server, failing early with a clear
// message when sync is not set up.
func (a *App) syncClient(cmd *cobra.Command) (*mysqlsync.Client, error) {
	if !a.config.Sync.Enabled {
		return nil, errors.New("sync is disabled; set sync.enabled in the config file")
	}
	client, err := mysqlsync.Connect(cmd.Context(), a.config.Sync)
	if err != nil {
		return nil, describeSyncError(err)
	}
	return client, nil
}

func describeSyncError(err error) error {
	switch {
	case errors.Is(err, mysqlsync.ErrUnreachable):
		return fmt.Errorf("cannot reach the sync server; is MySQL running? (%v)", err)
	case errors.Is(err, mysqlsync.ErrAccessDenied):
		return fmt.Errorf("the sync server rejected the credentials; check sync.user and sync.password (%v)", err)
	case errors.Is(err, mysqlsync.ErrUnknownDatabase):
		return fmt.Errorf("the sync database does not exist; create it first (%v)", err)
	default:
		return err
	}
}

func (a *App) syncPushCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Replace the server copy with the local task lists",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.syncClient(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			tasks, err := a.repo.Load()
			if err != nil {
				return err
			}
			entries, err := a.dailyStore.Load()
			if err != nil {
				return err
			}
			if err := client.Push(cmd.Context(), tasks, entries); err != nil {
				return err
			}
			fmt.Printf("Pushed %d tasks and %d daily tasks\n", len(tasks), len(entries))
			return nil
		},
	}
}

func (a *App) syncPullCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pull",
		Short: "Replace the local task lists with the server copy",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.syncClient(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			tasks, entries, err := client.Pull(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.repo.Save(tasks); err != nil {
				return err
			}
			if err := a.dailyStore.Save(entries); err != nil {
				return err
			}
			fmt.Printf("Pulled %d tasks and %d daily tasks\n", len(tasks), len(entries))
			return nil
		},
	}
}

func (a *App) syncTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Check connectivity to the sync server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.config.Sync
			if !mysqlsync.ProbePort(cfg.Host, cfg.Port) {
				return fmt.Errorf("nothing is listening on %s:%d", cfg.Host, cfg.Port)
			}
			if err := mysqlsync.TestConnection(cmd.Context(), cfg); err != nil {
				return describeSyncError(err)
			}
			fmt.Println(formatDone(fmt.Sprintf("Connected to %s:%d/%s", cfg.Host, cfg.Port, cfg.Database)))
			return nil
		},
	}
}
