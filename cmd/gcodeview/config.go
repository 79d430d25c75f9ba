package main

import (
	"fmt"
	"path/filepath"

	"github.com/philipparndt/gcodeview/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the gcodeview configuration file",
}

var configSaveCmd = &cobra.Command{
	Use:   "save [path]",
	Short: "Write the effective configuration to a file",
	Long: `Write the configuration in effect (defaults, config file and any flags
given here) as YAML. Without a path it goes to the user config directory,
where later runs pick it up.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigSave,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSaveCmd)
	flags.BindView(configSaveCmd.Flags())
}

func runConfigSave(cmd *cobra.Command, args []string) error {
	path := filepath.Join(config.ConfigDir(), config.FileName)
	if len(args) == 1 {
		path = args[0]
	}

	if err := cfg.SaveTo(path); err != nil {
		return fmt.Errorf("failed to save config to %s: %w", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved configuration to %s\n", path)
	return nil
}
