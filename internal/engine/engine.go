package engine

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Engine wires the listener, the gravity ticker and the frame loop to one
// terminal and one State.
type Engine struct {
	term     core.Terminal
	state    *State
	mailbox  *core.Mailbox
	listener *Listener
	gravity  *Gravity
	loop     *Loop
	logger   *log.Logger
}

// New sizes the grid to the terminal and builds every component from cfg.
// Failing to query the terminal size is fatal.
func New(term core.Terminal, cfg config.Config, logger *log.Logger) (*Engine, error) {
	logger = orDiscard(logger)

	w, h, err := term.Size()
	if err != nil {
		return nil, fmt.Errorf("query terminal size: %w", err)
	}

	piece, err := cfg.Piece.Piece()
	if err != nil {
		return nil, fmt.Errorf("%w: piece: %v", core.ErrInvalidConfig, err)
	}
	fill, err := cfg.Grid.Color()
	if err != nil {
		return nil, fmt.Errorf("%w: grid: %v", core.ErrInvalidConfig, err)
	}
	display, err := cfg.Render.DisplayColor()
	if err != nil {
		return nil, fmt.Errorf("%w: render: %v", core.ErrInvalidConfig, err)
	}

	grid := core.NewGrid(w, h, fill)
	if !piece.Fits(grid) {
		logger.Warn("piece starts outside the grid", "piece", piece, "width", w, "height", h)
	}

	state := NewState(grid, piece, WithColorAllCells(cfg.Render.ColorAllCells))
	mailbox := &core.Mailbox{}

	e := &Engine{
		term:     term,
		state:    state,
		mailbox:  mailbox,
		listener: NewListener(term, mailbox, NewKeyMap(cfg.Keys), logger),
		gravity:  NewGravity(state, cfg.Timing.Gravity, logger),
		loop: NewLoop(term, state, mailbox, LoopConfig{
			Interval: cfg.Timing.Frame,
			Glyphs: Glyphs{
				Filled: cfg.Render.FilledGlyph(),
				Empty:  cfg.Render.EmptyGlyph(),
			},
			DisplayColor: display,
			CellColors:   cfg.Render.CellColors,
		}, logger),
		logger: logger,
	}

	logger.Info("engine ready", "width", w, "height", h, "piece", piece,
		"gravity", cfg.Timing.Gravity, "frame", cfg.Timing.Frame)
	return e, nil
}

// State returns the shared game state.
func (e *Engine) State() *State {
	return e.state
}

// Mailbox returns the input mailbox.
func (e *Engine) Mailbox() *core.Mailbox {
	return e.mailbox
}

// Frames returns the number of frames rendered so far.
func (e *Engine) Frames() uint64 {
	return e.loop.Frames()
}

// Run enables the terminal, starts the listener and gravity goroutines and
// runs the frame loop on the calling goroutine. It returns core.ErrInterrupted
// when the player quits, nil when ctx is cancelled, or the first fatal error.
// The terminal is always disabled before Run returns.
func (e *Engine) Run(ctx context.Context) error {
	if err := e.term.Enable(); err != nil {
		return fmt.Errorf("enable terminal: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return e.listener.Run(gctx)
	})
	g.Go(func() error {
		return e.gravity.Run(gctx)
	})
	g.Go(func() error {
		// Disabling the terminal is what unblocks the listener.
		<-gctx.Done()
		if err := e.term.Disable(); err != nil {
			return fmt.Errorf("disable terminal: %w", err)
		}
		return nil
	})

	loopErr := e.loop.Run(gctx)
	cancel()
	waitErr := g.Wait()

	if loopErr != nil {
		e.logger.Error("frame loop failed", "error", loopErr)
		return errors.Join(loopErr, waitErr)
	}
	if errors.Is(waitErr, core.ErrInterrupted) {
		e.logger.Info("exiting", "frames", e.Frames())
	}
	return waitErr
}

func orDiscard(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.New(io.Discard)
	}
	return logger
}
