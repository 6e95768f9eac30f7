package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if len(cfg.Sources) == 0 {
		fmt.Println("# no config files found; using defaults")
	}
	for _, source := range cfg.Sources {
		fmt.Printf("# source: %s\n", source)
	}
	enc := toml.NewEncoder(os.Stdout)
	enc.Indent = ""
	return enc.Encode(cfg)
}
