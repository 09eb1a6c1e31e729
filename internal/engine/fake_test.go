package engine

import (
	"sync"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
)

// fakeTerminal is an in-memory core.Terminal. Draws land in a pending
// buffer that Flush copies to the visible screen.
type fakeTerminal struct {
	mu        sync.Mutex
	width     int
	height    int
	sizeErr   error
	enableErr error
	flushErr  error
	enabled   bool
	disabled  bool
	clears    int
	flushes   int
	pending   *core.Screen
	screen    *core.Screen

	// onClear runs at the start of every Clear, outside the lock.
	onClear func(frame int)

	events    chan core.Event
	readErr   chan error
	closed    chan struct{}
	closeOnce sync.Once
}

func newFakeTerminal(w, h int) *fakeTerminal {
	return &fakeTerminal{
		width:   w,
		height:  h,
		pending: core.NewScreen(w, h),
		screen:  core.NewScreen(w, h),
		events:  make(chan core.Event, 16),
		readErr: make(chan error, 1),
		closed:  make(chan struct{}),
	}
}

func (f *fakeTerminal) Enable() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.enableErr != nil {
		return f.enableErr
	}
	f.enabled = true
	return nil
}

func (f *fakeTerminal) Disable() error {
	f.closeOnce.Do(func() { close(f.closed) })
	f.mu.Lock()
	f.disabled = true
	f.mu.Unlock()
	return nil
}

func (f *fakeTerminal) Size() (int, int, error) {
	return f.width, f.height, f.sizeErr
}

func (f *fakeTerminal) NextEvent() (core.Event, error) {
	select {
	case ev := <-f.events:
		return ev, nil
	case err := <-f.readErr:
		return core.Event{}, err
	case <-f.closed:
		return core.Event{}, core.ErrTerminalClosed
	}
}

func (f *fakeTerminal) Clear() {
	f.mu.Lock()
	f.clears++
	frame := f.clears
	hook := f.onClear
	f.mu.Unlock()

	if hook != nil {
		hook(frame)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending.Clear()
}

func (f *fakeTerminal) Draw(x, y int, glyph rune, color core.Color) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending.Set(x, y, glyph, color)
}

func (f *fakeTerminal) Flush() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.flushErr != nil {
		return f.flushErr
	}
	if f.disabled {
		return core.ErrTerminalClosed
	}
	f.screen.CopyFrom(f.pending)
	f.flushes++
	return nil
}

func (f *fakeTerminal) cell(x, y int) core.ScreenCell {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.screen.GetCell(x, y)
}

func (f *fakeTerminal) isDisabled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.disabled
}

func (f *fakeTerminal) key(name string) {
	f.events <- core.Event{Kind: core.EventKey, Key: name}
}

func keyEvent(name string) core.Event {
	return core.Event{Kind: core.EventKey, Key: name}
}

// newTestState returns the 10x20 scenario: a red I piece at (5, 0) over a cyan grid.
func newTestState(opts ...StateOption) *State {
	grid := core.NewGrid(10, 20, core.ColorCyan)
	piece := core.Piece{Shape: core.ShapeI, Color: core.ColorRed, X: 5, Y: 0}
	return NewState(grid, piece, opts...)
}

func testLoopConfig() LoopConfig {
	cfg := config.Default()
	return LoopConfig{
		Interval:     cfg.Timing.Frame,
		Glyphs:       Glyphs{Filled: cfg.Render.FilledGlyph(), Empty: cfg.Render.EmptyGlyph()},
		DisplayColor: core.ColorCyan,
	}
}
