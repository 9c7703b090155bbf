package ui

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the active configuration",
		RunE: func(_ *cobra.Command, _ []string) error {
			c := a.config
			fmt.Println(formatHeader("Storage"))
			fmt.Printf("  data dir:  %s\n", c.Storage.DataDir)
			fmt.Println(formatHeader("LLM"))
			fmt.Printf("  provider:  %s\n", c.LLM.Provider)
			fmt.Printf("  model:     %s\n", c.LLM.Model)
			fmt.Printf("  base url:  %s\n", c.LLM.BaseURL)
			fmt.Println(formatHeader("Sync"))
			fmt.Printf("  enabled:   %v\n", c.Sync.Enabled)
			if c.Sync.Enabled {
				fmt.Printf("  server:    %s:%d/%s\n", c.Sync.Host, c.Sync.Port, c.Sync.Database)
			}
			fmt.Println(formatHeader("UI"))
			fmt.Printf("  theme:     %s (available: %v)\n", c.UI.Theme, theme.Available())
			fmt.Printf("  24h clock: %v\n", c.UI.Use24Hour)
			fmt.Printf("  assistant: %v\n", c.UI.ShowAssistant)
			fmt.Println()
			fmt.Printf("Config file: %s\n", formatMuted(config.DefaultConfigPath()))
			return nil
		},
	}

	cmd.AddCommand(a.configInitCmd())
	return cmd
}

func (a *App) configInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		RunE: func(_ *cobra.Command, _ []string) error {
			path := config.DefaultConfigPath()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.Default().SaveTo(path); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}
