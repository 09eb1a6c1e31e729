package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/help"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/engine"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Show key bindings",
	Long:  `Prints the key bindings from the effective configuration.`,
	Run:   runKeys,
}

func runKeys(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderKeys(engineKeys(cfg)))
}

func engineKeys(cfg config.Config) engine.KeyMap {
	return engine.NewKeyMap(cfg.Keys)
}

func renderKeys(keys engine.KeyMap) string {
	h := help.New()
	h.ShowAll = true
	return h.View(keys)
}
