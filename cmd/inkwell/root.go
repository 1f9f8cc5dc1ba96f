package main

import (
	"fmt"
	"os"

	"github.com/grindlemire/go-inkwell/internal/debug"
	"github.com/spf13/cobra"
)

var cfg Config

var rootCmd = &cobra.Command{
	Use:   "inkwell",
	Short: "Render declarative box/text trees to the terminal",
	Long: `inkwell lays out trees of boxes and text with flexbox rules and
renders them as ANSI-styled terminal output.

Settings come from flags, INKWELL_* environment variables and an
inkwell.yaml file in the current directory or $XDG_CONFIG_HOME/inkwell.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadConfig(cmd.Flags(), os.Getenv)
		if err != nil {
			return err
		}
		cfg = loaded
		if cfg.DebugLog != "" {
			if err := debug.Init(cfg.DebugLog); err != nil {
				return fmt.Errorf("opening debug log: %w", err)
			}
		} else if err := debug.InitFromEnv(); err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		debug.Log("config: columns=%d color=%q file=%q", cfg.Columns, cfg.Color, cfg.File)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = debug.Close()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.Int("columns", 0, "available width in columns (0 detects the terminal width)")
	flags.String("color", "auto", "color profile: auto, truecolor, ansi256, ansi, none")
	flags.String("debug-log", "", "append debug logs to this file")
	flags.String("config", "", "config file (default inkwell.yaml)")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(versionCmd)
}
