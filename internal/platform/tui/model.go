package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// redrawMsg asks the program to call View after a frame was flushed.
type redrawMsg struct{}

// Model is the Bubble Tea model behind Terminal. It owns no game state:
// input is forwarded to the terminal's event queue and View shows the
// last flushed frame.
type Model struct {
	term *Terminal
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and forwards input as core events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Paste {
			m.term.push(core.Event{Kind: core.EventPaste, Key: string(msg.Runes)})
			return m, nil
		}
		m.term.push(core.Event{Kind: core.EventKey, Key: msg.String()})

	case tea.FocusMsg:
		m.term.push(core.Event{Kind: core.EventFocus, Focused: true})

	case tea.BlurMsg:
		m.term.push(core.Event{Kind: core.EventFocus, Focused: false})

	case tea.WindowSizeMsg:
		m.term.push(core.Event{Kind: core.EventResize, Width: msg.Width, Height: msg.Height})

	case tea.MouseMsg:
		m.term.push(core.Event{Kind: core.EventMouse, Key: msg.String()})

	case redrawMsg:
		// View runs after every Update.
	}

	return m, nil
}

// View renders the last flushed frame.
func (m Model) View() string {
	m.term.mu.Lock()
	defer m.term.mu.Unlock()
	return RenderScreen(m.term.front)
}
