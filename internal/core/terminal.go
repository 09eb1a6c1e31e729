package core

// EventKind classifies terminal input events.
type EventKind int

const (
	EventKey EventKind = iota
	EventFocus
	EventResize
	EventMouse
	EventPaste
)

// String returns a lowercase name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventKey:
		return "key"
	case EventFocus:
		return "focus"
	case EventResize:
		return "resize"
	case EventMouse:
		return "mouse"
	case EventPaste:
		return "paste"
	default:
		return "unknown"
	}
}

// Event is a backend-neutral terminal input event.
type Event struct {
	Kind EventKind

	// Key is the key name for EventKey, using the same spelling as
	// Bubble Tea: "w", "ctrl+c", "up", "enter".
	Key string

	// Focused is set for EventFocus when the terminal gained focus.
	Focused bool

	// Width and Height carry the new terminal size for EventResize.
	Width, Height int
}

// String returns the key name, so events can be matched against key bindings.
func (e Event) String() string {
	return e.Key
}

// Terminal is the terminal I/O collaborator the engine draws to and reads from.
// Implementations live under internal/platform.
type Terminal interface {
	// Enable enters raw mode and the alternate screen and turns on bracketed
	// paste, focus-change and mouse reporting.
	Enable() error

	// Disable reverses Enable. NextEvent returns ErrTerminalClosed afterwards.
	Disable() error

	// Size returns the terminal size in columns and rows.
	Size() (width, height int, err error)

	// NextEvent blocks until the next input event is available.
	NextEvent() (Event, error)

	// Clear blanks the drawing surface.
	Clear()

	// Draw places a glyph at column x, row y.
	Draw(x, y int, glyph rune, color Color)

	// Flush makes everything drawn since the last Clear visible.
	Flush() error
}
