package ui

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/updater"
)

func (a *App) manifestCmd() *cobra.Command {
	var (
		dir     string
		version string
	)

	cmd := &cobra.Command{
		Use:    "manifest",
		Short:  "Generate a release manifest for a directory of files",
		Hidden: true, // release tooling, not day-to-day use
		RunE: func(_ *cobra.Command, _ []string) error {
			m, err := updater.Generate(dir, version)
			if err != nil {
				return err
			}

			path := filepath.Join(dir, updater.ManifestFilename)
			if err := m.Save(path); err != nil {
				return err
			}

			fmt.Printf("Wrote %s (%d modules)\n", path, len(m.Modules))
			for _, name := range m.ModuleNames() {
				info := m.Modules[name]
				fmt.Printf("  %-30s %-7s %s\n", name, info.Type, formatMuted(info.Hash[:12]))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "Directory to scan")
	cmd.Flags().StringVar(&version, "version", "", "Release version (required)")
	_ = cmd.MarkFlagRequired("version")

	return cmd
}
