// tetris drops a single falling bar through a terminal-sized grid.
//
// Usage:
//
//	tetris           - Play (w/s/a/d to steer, Ctrl+C to quit)
//	tetris keys      - Show key bindings
//	tetris config    - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - Custom config YAML
//	--backend <name>    - Terminal backend: tea (default) or tcell
//	--log-file <path>   - Write diagnostics to a file
//	--log-level <lvl>   - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import backends to register them
	_ "github.com/vovakirdan/tui-tetris/internal/platform/tcell"
	_ "github.com/vovakirdan/tui-tetris/internal/platform/tui"
)

var (
	// Global flags
	flagConfig   string
	flagBackend  string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "A falling bar in your terminal",
	Long: `Tetris runs a red I piece down a grid the size of your terminal.
Gravity pulls it one row per second, the screen redraws twice a second,
and every cell the piece has covered stays filled.

Controls:
  A / D     - Move left / right
  S         - Move down one row
  Ctrl+C    - Quit

Examples:
  tetris
  tetris --backend tcell
  tetris --config ./my-tetris.yaml --log-file /tmp/tetris.log --log-level debug`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run:           runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "Terminal backend (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (overrides config)")

	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(configCmd)
}
