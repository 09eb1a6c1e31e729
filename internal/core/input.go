package core

import "sync"

// Intent is the most recent unconsumed player direction.
type Intent int

const (
	IntentNeutral Intent = iota
	IntentUp             // W - mapped but not applied
	IntentDown           // S - soft drop
	IntentLeft           // A
	IntentRight          // D
)

// String returns a human-readable name for the intent.
func (i Intent) String() string {
	switch i {
	case IntentNeutral:
		return "Neutral"
	case IntentUp:
		return "Up"
	case IntentDown:
		return "Down"
	case IntentLeft:
		return "Left"
	case IntentRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// Mailbox is a last-writer-wins single-slot holder for an Intent.
// Presses arriving between two frames overwrite each other; only the last survives.
// The zero value holds IntentNeutral and is ready to use.
type Mailbox struct {
	mu     sync.Mutex
	intent Intent
}

// Put replaces the pending intent.
func (m *Mailbox) Put(in Intent) {
	m.mu.Lock()
	m.intent = in
	m.mu.Unlock()
}

// Peek returns the pending intent without consuming it.
func (m *Mailbox) Peek() Intent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.intent
}

// Take returns the pending intent and resets the slot to IntentNeutral.
func (m *Mailbox) Take() Intent {
	m.mu.Lock()
	defer m.mu.Unlock()
	in := m.intent
	m.intent = IntentNeutral
	return in
}
