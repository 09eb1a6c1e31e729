package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/engine"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

func runPlay(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = play(ctx, cfg, logger, cmd.OutOrStdout())
	stop()
	closeLog()

	if code := exitCode(err, cmd.OutOrStdout(), os.Stderr); code != 0 {
		os.Exit(code)
	}
}

// exitCode reports how a finished game ends the process. Quitting with the
// interrupt key prints the goodbye message and succeeds, even when shutdown
// also produced other errors; any other error is fatal.
func exitCode(err error, out, errOut io.Writer) int {
	switch {
	case errors.Is(err, core.ErrInterrupted):
		fmt.Fprint(out, "\n Exiting... \n goodbye!\n")
		return 0
	case err != nil:
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return 1
	}
	return 0
}

// play builds the chosen backend and runs the engine until the player
// quits or ctx is cancelled.
func play(ctx context.Context, cfg config.Config, logger *log.Logger, out io.Writer) error {
	term, err := registry.Create(cfg.Backend)
	if err != nil {
		return err
	}

	e, err := engine.New(term, cfg, logger)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "begin!")
	return e.Run(ctx)
}

// loadConfig reads the config and applies command-line overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagBackend != "" {
		cfg.Backend = flagBackend
	}
	if flagLogFile != "" {
		cfg.Log.File = flagLogFile
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	return cfg, cfg.Validate()
}

// newLogger opens the diagnostic log. With no file configured, logs are
// discarded: the terminal belongs to the game.
func newLogger(cfg config.LogConfig) (*log.Logger, func(), error) {
	var w io.Writer = io.Discard
	closeFn := func() {}

	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		//nolint:errcheck // Best-effort close on exit
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "tetris",
	})
	if cfg.Level != "" {
		level, err := log.ParseLevel(cfg.Level)
		if err != nil {
			closeFn()
			return nil, nil, fmt.Errorf("log level: %w", err)
		}
		logger.SetLevel(level)
	}
	return logger, closeFn, nil
}
