package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Listener turns terminal events into intents. It never touches the grid
// or the piece; its only outputs are the mailbox and the interrupt signal.
type Listener struct {
	term    core.Terminal
	mailbox *core.Mailbox
	keys    KeyMap
	logger  *log.Logger
}

// NewListener creates a listener writing to mailbox.
func NewListener(term core.Terminal, mailbox *core.Mailbox, keys KeyMap, logger *log.Logger) *Listener {
	return &Listener{
		term:    term,
		mailbox: mailbox,
		keys:    keys,
		logger:  orDiscard(logger),
	}
}

// Run blocks on terminal events until the interrupt key arrives
// (core.ErrInterrupted), the event source fails, or the terminal is closed
// after ctx was cancelled (nil).
func (l *Listener) Run(ctx context.Context) error {
	for {
		ev, err := l.term.NextEvent()
		if err != nil {
			if ctx.Err() != nil && errors.Is(err, core.ErrTerminalClosed) {
				return nil
			}
			l.logger.Error("event source failed", "error", err)
			return fmt.Errorf("read terminal event: %w", err)
		}
		if l.Handle(ev) {
			return core.ErrInterrupted
		}
	}
}

// Handle processes a single event and reports whether it was the interrupt.
// Any key that is not bound to a direction clears the pending intent.
func (l *Listener) Handle(ev core.Event) bool {
	switch ev.Kind {
	case core.EventKey:
		if l.keys.IsInterrupt(ev) {
			l.logger.Info("interrupt received", "key", ev.Key)
			return true
		}
		in := l.keys.Intent(ev)
		l.mailbox.Put(in)
		l.logger.Debug("key", "key", ev.Key, "intent", in)
	case core.EventFocus:
		if ev.Focused {
			l.logger.Info("focus gained")
		} else {
			l.logger.Info("focus lost")
		}
	case core.EventResize:
		l.logger.Info("terminal resized", "width", ev.Width, "height", ev.Height)
	default:
		l.logger.Debug("event ignored", "kind", ev.Kind)
	}
	return false
}
