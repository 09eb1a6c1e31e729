// Package tui provides the Bubble Tea terminal backend. A tea.Program owns
// the tty; the engine talks to it through core.Terminal.
package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// Name is the registry name of this backend.
const Name = "tea"

// eventBuffer is how many input events may queue before new ones are dropped.
const eventBuffer = 64

func init() {
	registry.Register(Name, "Bubble Tea", func() (core.Terminal, error) {
		return New()
	})
}

// Option configures a Terminal.
type Option func(*Terminal)

// WithIO replaces stdin/stdout, mainly for tests.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(t *Terminal) {
		t.in = in
		t.out = out
	}
}

// WithSize fixes the reported size instead of querying stdout.
func WithSize(width, height int) Option {
	return func(t *Terminal) {
		t.size = func() (int, int, error) { return width, height, nil }
	}
}

// WithAltScreen toggles the alternate screen buffer. On by default.
func WithAltScreen(on bool) Option {
	return func(t *Terminal) { t.altScreen = on }
}

// Terminal is a core.Terminal backed by a tea.Program.
// Draw and Clear write a back buffer; Flush publishes it to View.
type Terminal struct {
	in        io.Reader
	out       io.Writer
	size      func() (int, int, error)
	altScreen bool

	mu      sync.Mutex
	back    *core.Screen
	front   *core.Screen
	program *tea.Program
	runErr  error
	dropped int

	events chan core.Event
	done   chan struct{}
}

// New creates a terminal sized to stdout.
func New(opts ...Option) (*Terminal, error) {
	t := &Terminal{
		size:      stdoutSize,
		altScreen: true,
		events:    make(chan core.Event, eventBuffer),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}

	w, h, err := t.size()
	if err != nil {
		return nil, err
	}
	t.back = core.NewScreen(w, h)
	t.front = core.NewScreen(w, h)
	return t, nil
}

func stdoutSize() (int, int, error) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0, 0, errors.New("stdout is not a terminal")
	}
	w, h, err := term.GetSize(fd)
	if err != nil {
		return 0, 0, fmt.Errorf("get terminal size: %w", err)
	}
	return w, h, nil
}

// Size returns the terminal dimensions in cells.
func (t *Terminal) Size() (int, int, error) {
	return t.size()
}

// Enable starts the Bubble Tea program. Bubble Tea puts the tty in raw mode
// and enables bracketed paste; Enable adds the alternate screen, mouse
// cell motion and focus reporting.
func (t *Terminal) Enable() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.program != nil {
		return errors.New("terminal already enabled")
	}

	opts := []tea.ProgramOption{
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
		// Interrupts are handled by the caller's context.
		tea.WithoutSignalHandler(),
	}
	if t.altScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if t.in != nil {
		opts = append(opts, tea.WithInput(t.in))
	}
	if t.out != nil {
		opts = append(opts, tea.WithOutput(t.out))
	}

	p := tea.NewProgram(Model{term: t}, opts...)
	t.program = p

	go func() {
		_, err := p.Run()
		t.mu.Lock()
		t.runErr = err
		t.mu.Unlock()
		close(t.done)
	}()
	return nil
}

// Disable stops the program, which restores the terminal, and waits for it.
// It is safe to call more than once.
func (t *Terminal) Disable() error {
	t.mu.Lock()
	p := t.program
	t.mu.Unlock()

	if p == nil {
		return nil
	}
	p.Quit()
	<-t.done

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.runErr != nil && !errors.Is(t.runErr, tea.ErrProgramKilled) {
		return fmt.Errorf("bubbletea: %w", t.runErr)
	}
	return nil
}

// NextEvent blocks until an input event arrives or the program has exited.
func (t *Terminal) NextEvent() (core.Event, error) {
	select {
	case ev := <-t.events:
		return ev, nil
	case <-t.done:
		return core.Event{}, core.ErrTerminalClosed
	}
}

// push queues an event without blocking the Bubble Tea event loop.
func (t *Terminal) push(ev core.Event) {
	select {
	case t.events <- ev:
	default:
		t.mu.Lock()
		t.dropped++
		t.mu.Unlock()
	}
}

// Dropped returns how many events were discarded because the queue was full.
func (t *Terminal) Dropped() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dropped
}

// Clear blanks the back buffer.
func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.back.Clear()
}

// Draw puts a glyph into the back buffer. Out-of-range cells are ignored.
func (t *Terminal) Draw(x, y int, glyph rune, color core.Color) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.back.Set(x, y, glyph, color)
}

// Flush publishes the back buffer and asks the program to redraw.
func (t *Terminal) Flush() error {
	select {
	case <-t.done:
		return core.ErrTerminalClosed
	default:
	}

	t.mu.Lock()
	t.front.CopyFrom(t.back)
	p := t.program
	t.mu.Unlock()

	if p != nil {
		p.Send(redrawMsg{})
	}
	return nil
}

// Frame returns the text of the last flushed frame.
func (t *Terminal) Frame() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.front.String()
}
