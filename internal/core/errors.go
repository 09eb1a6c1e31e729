package core

import "errors"

var (
	// ErrOutOfBounds is returned by grid accessors for coordinates outside the grid.
	ErrOutOfBounds = errors.New("coordinates out of bounds")

	// ErrIllegalMove is returned when a piece move would leave the grid.
	// The piece is left where it was.
	ErrIllegalMove = errors.New("illegal move")

	// ErrTerminalClosed is returned by Terminal.NextEvent once the terminal is disabled.
	ErrTerminalClosed = errors.New("terminal closed")

	// ErrInterrupted signals that the player pressed the interrupt combination.
	ErrInterrupted = errors.New("interrupted")

	// ErrUnknownBackend is returned when no terminal backend is registered under a name.
	ErrUnknownBackend = errors.New("unknown terminal backend")

	// ErrInvalidConfig wraps configuration validation problems.
	ErrInvalidConfig = errors.New("invalid configuration")
)
