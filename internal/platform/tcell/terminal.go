// Package tcell provides a core.Terminal backed by github.com/gdamore/tcell/v2.
package tcell

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// Name is the registry name of this backend.
const Name = "tcell"

func init() {
	registry.Register(Name, "tcell", func() (core.Terminal, error) {
		return New()
	})
}

// palette maps core colors to ANSI palette entries, the same indexes the
// Bubble Tea backend uses.
var palette = map[core.Color]tcell.Color{
	core.ColorDefault: tcell.ColorDefault,
	core.ColorRed:     tcell.PaletteColor(1),
	core.ColorGreen:   tcell.PaletteColor(2),
	core.ColorYellow:  tcell.PaletteColor(3),
	core.ColorBlue:    tcell.PaletteColor(4),
	core.ColorMagenta: tcell.PaletteColor(5),
	core.ColorCyan:    tcell.PaletteColor(6),
	core.ColorWhite:   tcell.PaletteColor(7),
	core.ColorOrange:  tcell.PaletteColor(208),
	core.ColorGray:    tcell.PaletteColor(245),
}

func style(c core.Color) tcell.Style {
	fg, ok := palette[c]
	if !ok {
		fg = tcell.ColorDefault
	}
	return tcell.StyleDefault.Foreground(fg)
}

// Option configures a Terminal.
type Option func(*Terminal)

// WithScreen uses s instead of the real terminal, e.g. a
// tcell.SimulationScreen in tests.
func WithScreen(s tcell.Screen) Option {
	return func(t *Terminal) { t.screen = s }
}

// Terminal is a core.Terminal drawing through a tcell.Screen.
type Terminal struct {
	screen tcell.Screen

	mu       sync.Mutex
	enabled  bool
	closed   bool
	pasting  bool
	pasteBuf strings.Builder
}

// New creates a terminal on the controlling tty. The screen is not
// initialized until Enable.
func New(opts ...Option) (*Terminal, error) {
	t := &Terminal{}
	for _, opt := range opts {
		opt(t)
	}
	if t.screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("tcell: %w", err)
		}
		t.screen = s
	}
	return t, nil
}

// Size returns the terminal dimensions. Before Enable it asks the tty
// directly, since an uninitialized tcell screen reports 0x0.
func (t *Terminal) Size() (int, int, error) {
	t.mu.Lock()
	enabled := t.enabled
	t.mu.Unlock()

	if enabled {
		w, h := t.screen.Size()
		return w, h, nil
	}
	if _, ok := t.screen.(tcell.SimulationScreen); ok {
		return 0, 0, errors.New("simulation screen has no size before Enable")
	}

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

// Enable initializes the screen (raw mode, alternate screen) and turns on
// mouse, bracketed paste and focus reporting.
func (t *Terminal) Enable() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.enabled || t.closed {
		return errors.New("terminal already enabled")
	}
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("tcell init: %w", err)
	}
	t.screen.EnableMouse()
	t.screen.EnablePaste()
	t.screen.EnableFocus()
	t.screen.HideCursor()
	t.screen.Clear()
	t.enabled = true
	return nil
}

// Disable restores the terminal. A blocked NextEvent returns
// core.ErrTerminalClosed. Safe to call more than once.
func (t *Terminal) Disable() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.enabled {
		return nil
	}
	t.screen.DisableFocus()
	t.screen.DisablePaste()
	t.screen.DisableMouse()
	t.screen.Fini()
	t.enabled = false
	t.closed = true
	return nil
}

// NextEvent blocks until the next input event. Bracketed pastes are
// collected into a single EventPaste.
func (t *Terminal) NextEvent() (core.Event, error) {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return core.Event{}, core.ErrTerminalClosed
		}
		if out, ok := t.translate(ev); ok {
			return out, nil
		}
	}
}

// translate converts a tcell event. It reports false for events that
// produce nothing on their own, such as keys inside a paste.
func (t *Terminal) translate(ev tcell.Event) (core.Event, bool) {
	switch ev := ev.(type) {
	case *tcell.EventPaste:
		if ev.Start() {
			t.pasting = true
			t.pasteBuf.Reset()
			return core.Event{}, false
		}
		t.pasting = false
		return core.Event{Kind: core.EventPaste, Key: t.pasteBuf.String()}, true

	case *tcell.EventKey:
		if t.pasting {
			if ev.Key() == tcell.KeyRune {
				t.pasteBuf.WriteRune(ev.Rune())
			} else if ev.Key() == tcell.KeyEnter {
				t.pasteBuf.WriteRune('\n')
			}
			return core.Event{}, false
		}
		return core.Event{Kind: core.EventKey, Key: KeyName(ev)}, true

	case *tcell.EventFocus:
		return core.Event{Kind: core.EventFocus, Focused: ev.Focused}, true

	case *tcell.EventResize:
		w, h := ev.Size()
		return core.Event{Kind: core.EventResize, Width: w, Height: h}, true

	case *tcell.EventMouse:
		x, y := ev.Position()
		return core.Event{Kind: core.EventMouse, Key: fmt.Sprintf("mouse %d,%d", x, y)}, true
	}
	return core.Event{}, false
}

var keyNames = map[tcell.Key]string{
	tcell.KeyUp:         "up",
	tcell.KeyDown:       "down",
	tcell.KeyLeft:       "left",
	tcell.KeyRight:      "right",
	tcell.KeyEnter:      "enter",
	tcell.KeyTab:        "tab",
	tcell.KeyBacktab:    "shift+tab",
	tcell.KeyEscape:     "esc",
	tcell.KeyBackspace:  "backspace",
	tcell.KeyBackspace2: "backspace",
	tcell.KeyDelete:     "delete",
	tcell.KeyInsert:     "insert",
	tcell.KeyHome:       "home",
	tcell.KeyEnd:        "end",
	tcell.KeyPgUp:       "pgup",
	tcell.KeyPgDn:       "pgdown",
}

// KeyName spells a key the way Bubble Tea does, so one set of bindings
// works for both backends.
func KeyName(ev *tcell.EventKey) string {
	k := ev.Key()
	if k == tcell.KeyRune {
		name := string(ev.Rune())
		if ev.Modifiers()&tcell.ModAlt != 0 {
			name = "alt+" + name
		}
		return name
	}
	if name, ok := keyNames[k]; ok {
		return name
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return "ctrl+" + string(rune('a'+int(k-tcell.KeyCtrlA)))
	}
	if k >= tcell.KeyF1 && k <= tcell.KeyF12 {
		return fmt.Sprintf("f%d", int(k-tcell.KeyF1)+1)
	}
	return strings.ToLower(ev.Name())
}

// Clear blanks the screen's back buffer.
func (t *Terminal) Clear() {
	t.screen.Clear()
}

// Draw sets one cell. tcell ignores out-of-range coordinates.
func (t *Terminal) Draw(x, y int, glyph rune, color core.Color) {
	t.screen.SetContent(x, y, glyph, nil, style(color))
}

// Flush shows everything drawn since the last Flush.
func (t *Terminal) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.enabled {
		return core.ErrTerminalClosed
	}
	t.screen.Show()
	return nil
}
