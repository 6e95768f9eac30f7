// Package main implements the kb CLI tool.
package main

import (
	"os"

	"github.com/amonks/kanban/internal/config"
	"github.com/amonks/kanban/internal/ui"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		ui.NewPresenter(os.Stdout, os.Stderr, ui.Options{Color: colorMode}).RenderError(err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "kb",
	Short:         "kb - a kanban board for the terminal",
	Args:          cobra.NoArgs,
	RunE:          runList,
	SilenceErrors: true,
	SilenceUsage:  true,
}

var (
	boardPath  string
	configPath string

	// colorMode is the configured color mode, used for errors too. Until the
	// config loads it only reflects NO_COLOR, so config errors ignore
	// [display] color.
	colorMode = envColorMode()
)

func envColorMode() string {
	if os.Getenv(config.EnvNoColor) != "" {
		return ui.ColorNever
	}
	return ui.ColorAuto
}

func init() {
	rootCmd.PersistentFlags().StringVar(&boardPath, "board", "", "Board file to use instead of the configured one")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file to use instead of ~/.config/kanban/config.toml")
	addListFlags(rootCmd)
}
