package engine

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Glyphs are the characters used for filled and empty cells.
type Glyphs struct {
	Filled rune
	Empty  rune
}

// Loop is the frame loop and renderer.
type Loop struct {
	term       core.Terminal
	state      *State
	mailbox    *core.Mailbox
	interval   time.Duration
	glyphs     Glyphs
	display    core.Color
	cellColors bool
	logger     *log.Logger
	frames     atomic.Uint64
}

// LoopConfig holds the renderer settings of a Loop.
type LoopConfig struct {
	Interval     time.Duration
	Glyphs       Glyphs
	DisplayColor core.Color // color of every filled cell
	CellColors   bool       // draw cells in their stored color instead
}

// NewLoop creates a frame loop drawing state to term.
func NewLoop(term core.Terminal, state *State, mailbox *core.Mailbox, cfg LoopConfig, logger *log.Logger) *Loop {
	return &Loop{
		term:       term,
		state:      state,
		mailbox:    mailbox,
		interval:   cfg.Interval,
		glyphs:     cfg.Glyphs,
		display:    cfg.DisplayColor,
		cellColors: cfg.CellColors,
		logger:     orDiscard(logger),
	}
}

// Frames returns the number of frames rendered so far.
func (l *Loop) Frames() uint64 {
	return l.frames.Load()
}

// RenderFrame runs one frame: clear, consume the intent, move, materialize,
// draw every cell and flush. The mailbox is Neutral when it returns.
func (l *Loop) RenderFrame() error {
	l.term.Clear()

	in := l.mailbox.Take()
	f := l.state.Frame(in)
	if f.MoveErr != nil {
		l.logger.Debug("move rejected", "intent", in, "piece", f.Piece, "error", f.MoveErr)
	}
	if f.MaterializeErr != nil {
		l.logger.Warn("piece partly outside grid", "piece", f.Piece, "error", f.MaterializeErr)
	}

	l.draw(f.Grid)

	if err := l.term.Flush(); err != nil {
		return fmt.Errorf("flush frame: %w", err)
	}
	l.frames.Add(1)
	return nil
}

func (l *Loop) draw(g *core.Grid) {
	for x := 0; x < g.Width(); x++ {
		for y := 0; y < g.Height(); y++ {
			cell, err := g.Get(x, y)
			if err != nil {
				continue
			}
			if !cell.Filled {
				l.term.Draw(x, y, l.glyphs.Empty, core.ColorDefault)
				continue
			}
			color := l.display
			if l.cellColors {
				color = cell.Color
			}
			l.term.Draw(x, y, l.glyphs.Filled, color)
		}
	}
}

// Run renders a frame every interval until ctx is cancelled. No frame is
// started after cancellation, and a frame cut short by shutdown closing the
// terminal is not an error.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		if ctx.Err() != nil {
			return nil
		}
		if err := l.RenderFrame(); err != nil {
			if ctx.Err() != nil && errors.Is(err, core.ErrTerminalClosed) {
				l.logger.Debug("frame dropped at shutdown", "error", err)
				return nil
			}
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
