// Package ui implements the command line interface.
package ui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/character"
	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/daily"
	"github.com/taskdeck/taskdeck/internal/logging"
	"github.com/taskdeck/taskdeck/internal/store"
	"github.com/taskdeck/taskdeck/internal/tui"
	"github.com/taskdeck/taskdeck/internal/updater"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config     *config.Config
	repo       *store.FileStore
	dailyStore *daily.Store
	charStore  *character.Store
	root       *cobra.Command
	debug      bool
	noColor    bool
}

// NewApp creates the CLI application with its stores and command tree.
func NewApp(cfg *config.Config) (*App, error) {
	repo, err := store.New(cfg.Storage.DataDir)
	if err != nil {
		return nil, err
	}
	dailyStore, err := daily.NewStore(cfg.Storage.DataDir)
	if err != nil {
		return nil, err
	}
	charStore, err := character.NewStore(cfg.Storage.DataDir)
	if err != nil {
		return nil, err
	}

	a := &App{
		config:     cfg,
		repo:       repo,
		dailyStore: dailyStore,
		charStore:  charStore,
	}

	a.root = &cobra.Command{
		Use:   "taskdeck",
		Short: "A terminal task manager with daily routines and an AI assistant",
		Long: `Taskdeck manages dated tasks and recurring daily routines from plain
text files, with calendar and weekly views, an optional LLM chat
assistant, LAN sharing, and MySQL synchronization.

Run without arguments to open the interactive interface.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logging.SetDebug(a.debug)
			if a.noColor {
				DisableColor()
			}
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			// bubbletea owns the terminal; stray log lines would corrupt
			// the screen.
			if a.debug {
				f, err := os.OpenFile(filepath.Join(a.config.Storage.DataDir, "debug.log"),
					os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err == nil {
					defer func() { _ = f.Close() }()
					logging.SetOutput(f)
				}
			} else {
				logging.SetOutput(io.Discard)
			}
			return tui.Run(a.config, a.repo, a.dailyStore, a.charStore, a.newUpdater())
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")
	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable color output")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.doneCmd())
	a.root.AddCommand(a.rmCmd())
	a.root.AddCommand(a.editCmd())
	a.root.AddCommand(a.dailyCmd())
	a.root.AddCommand(a.shareCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.syncCmd())
	a.root.AddCommand(a.updateCmd())
	a.root.AddCommand(a.manifestCmd())

	return a, nil
}

// newUpdater builds the self-updater when a release repository is
// configured.
func (a *App) newUpdater() *updater.Updater {
	if a.config.Update.Owner == "" || a.config.Update.Repo == "" {
		return nil
	}
	gh := updater.NewGitHubClient(a.config.Update.Owner, a.config.Update.Repo)
	return updater.New(gh, a.config.Storage.DataDir)
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			installed := updater.ReadVersion(filepath.Join(a.config.Storage.DataDir, updater.VersionFilename))
			fmt.Printf("taskdeck %s (commit: %s, installed: %s)\n", Version, Commit, installed)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}
