package engine

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
)

// KeyMap binds key names to intents and to the interrupt combination.
// It satisfies help.KeyMap so bindings can be listed with bubbles/help.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Interrupt key.Binding
}

// NewKeyMap builds bindings from configured key names.
func NewKeyMap(cfg config.KeysConfig) KeyMap {
	return KeyMap{
		Up:        binding(cfg.Up, "up (unused)"),
		Down:      binding(cfg.Down, "drop one row"),
		Left:      binding(cfg.Left, "move left"),
		Right:     binding(cfg.Right, "move right"),
		Interrupt: binding(cfg.Interrupt, "quit"),
	}
}

// DefaultKeyMap returns the w/s/a/d + ctrl+c bindings.
func DefaultKeyMap() KeyMap {
	return NewKeyMap(config.Default().Keys)
}

func binding(keys []string, desc string) key.Binding {
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(keys, "/"), desc),
	)
}

// Intent maps a key to the intent it requests. Unbound keys map to Neutral.
func (k KeyMap) Intent(ev fmt.Stringer) core.Intent {
	switch {
	case key.Matches(ev, k.Up):
		return core.IntentUp
	case key.Matches(ev, k.Down):
		return core.IntentDown
	case key.Matches(ev, k.Left):
		return core.IntentLeft
	case key.Matches(ev, k.Right):
		return core.IntentRight
	}
	return core.IntentNeutral
}

// IsInterrupt reports whether the key is the reserved quit combination.
func (k KeyMap) IsInterrupt(ev fmt.Stringer) bool {
	return key.Matches(ev, k.Interrupt)
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Down, k.Interrupt}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Down, k.Up},
		{k.Interrupt},
	}
}
