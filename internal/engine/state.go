// Package engine runs the concurrent game-state engine: an input listener,
// a gravity ticker and the frame loop, all sharing one State.
package engine

import (
	"errors"
	"fmt"
	"sync"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// State bundles the falling piece and the grid under a single lock, so a
// frame observes either the whole of a gravity tick or none of it.
type State struct {
	mu            sync.Mutex
	grid          *core.Grid
	piece         core.Piece
	colorAllCells bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithColorAllCells makes materialization color every piece cell instead of
// only the bottom one.
func WithColorAllCells(on bool) StateOption {
	return func(s *State) {
		s.colorAllCells = on
	}
}

// NewState creates a state owning grid and holding piece.
func NewState(grid *core.Grid, piece core.Piece, opts ...StateOption) *State {
	s := &State{
		grid:  grid,
		piece: piece,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Piece returns a copy of the current piece.
func (s *State) Piece() core.Piece {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.piece
}

// Snapshot returns the piece and a deep copy of the grid taken atomically.
func (s *State) Snapshot() (core.Piece, *core.Grid) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.piece, s.grid.Clone()
}

// Move applies one intent to the piece. A move that would take any piece
// cell outside the grid is rejected with core.ErrIllegalMove.
func (s *State) Move(in core.Intent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.move(in)
}

// Fall moves the piece down one row under the same policy as Move.
func (s *State) Fall() error {
	return s.Move(core.IntentDown)
}

// Materialize writes the piece into the grid.
func (s *State) Materialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.materialize()
}

// Frame is the result of one locked frame update.
type Frame struct {
	Intent         core.Intent
	MoveErr        error
	MaterializeErr error
	Piece          core.Piece
	Grid           *core.Grid // private copy, safe to read without the lock
}

// Frame applies the intent, materializes the piece and snapshots the grid
// in a single critical section.
func (s *State) Frame(in core.Intent) Frame {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := Frame{Intent: in}
	f.MoveErr = s.move(in)
	f.MaterializeErr = s.materialize()
	f.Piece = s.piece
	f.Grid = s.grid.Clone()
	return f
}

func (s *State) move(in core.Intent) error {
	switch in {
	case core.IntentLeft, core.IntentRight, core.IntentDown:
	default:
		// Up is bound but has no action.
		return nil
	}

	next := s.piece.Moved(in)
	if !next.Fits(s.grid) {
		return fmt.Errorf("%s from (%d, %d): %w", in, s.piece.X, s.piece.Y, core.ErrIllegalMove)
	}
	s.piece = next
	return nil
}

// materialize fills the I bar's four cells. Only the bottom cell receives
// the piece color unless colorAllCells is set; the rest keep whatever color
// they held. Other shapes have no geometry and write nothing.
func (s *State) materialize() error {
	if s.piece.Shape != core.ShapeI {
		return nil
	}

	cells := s.piece.Cells()
	var errs []error
	for _, c := range cells {
		cell, err := s.grid.Get(c.X, c.Y)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		cell.Filled = true
		if s.colorAllCells {
			cell.Color = s.piece.Color
		}
		errs = append(errs, s.grid.Set(c.X, c.Y, cell))
	}

	bottom := cells[len(cells)-1]
	if cell, err := s.grid.Get(bottom.X, bottom.Y); err == nil {
		cell.Color = s.piece.Color
		errs = append(errs, s.grid.Set(bottom.X, bottom.Y, cell))
	}

	return errors.Join(errs...)
}
