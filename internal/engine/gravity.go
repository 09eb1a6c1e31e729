package engine

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Gravity moves the piece down one row every interval, independent of the
// frame cadence. It touches nothing but the piece's row.
type Gravity struct {
	state    *State
	interval time.Duration
	logger   *log.Logger
}

// NewGravity creates a gravity ticker for state.
func NewGravity(state *State, interval time.Duration, logger *log.Logger) *Gravity {
	return &Gravity{
		state:    state,
		interval: interval,
		logger:   orDiscard(logger),
	}
}

// Step performs one gravity tick. A piece already resting on the floor
// stays put and core.ErrIllegalMove is returned.
func (g *Gravity) Step() error {
	err := g.state.Fall()
	if errors.Is(err, core.ErrIllegalMove) {
		g.logger.Debug("piece resting", "piece", g.state.Piece())
	}
	return err
}

// Run ticks until ctx is cancelled. It always returns nil.
func (g *Gravity) Run(ctx context.Context) error {
	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			//nolint:errcheck // a resting piece is not a failure
			g.Step()
		}
	}
}
