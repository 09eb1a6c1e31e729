package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
)

func fastConfig() config.Config {
	cfg := config.Default()
	cfg.Timing.Frame = 5 * time.Millisecond
	cfg.Timing.Gravity = time.Hour
	return cfg
}

func runAsync(ctx context.Context, e *Engine) <-chan error {
	done := make(chan error, 1)
	go func() { done <- e.Run(ctx) }()
	return done
}

func wait(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("engine did not stop")
		return nil
	}
}

func TestNewSizesGridToTerminal(t *testing.T) {
	e, err := New(newFakeTerminal(30, 12), config.Default(), nil)
	require.NoError(t, err)

	p, g := e.State().Snapshot()
	assert.Equal(t, 30, g.Width())
	assert.Equal(t, 12, g.Height())
	assert.Zero(t, g.FilledCount())
	assert.Equal(t, core.ShapeI, p.Shape)
	assert.Equal(t, core.ColorRed, p.Color)
	assert.Equal(t, 5, p.X)
	assert.Equal(t, 0, p.Y)
}

func TestNewSizeFailure(t *testing.T) {
	term := newFakeTerminal(0, 0)
	sizeErr := errors.New("inappropriate ioctl for device")
	term.sizeErr = sizeErr

	_, err := New(term, config.Default(), nil)
	require.ErrorIs(t, err, sizeErr)
}

func TestNewInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Piece.Shape = "Z"

	_, err := New(newFakeTerminal(10, 20), cfg, nil)
	require.ErrorIs(t, err, core.ErrInvalidConfig)
}

func TestRunInterrupt(t *testing.T) {
	term := newFakeTerminal(20, 30)
	e, err := New(term, fastConfig(), nil)
	require.NoError(t, err)

	done := runAsync(context.Background(), e)

	term.key("a")
	require.Eventually(t, func() bool {
		return e.State().Piece().X == 4
	}, time.Second, time.Millisecond)

	term.key("ctrl+c")
	err = wait(t, done)
	require.ErrorIs(t, err, core.ErrInterrupted)
	assert.True(t, term.isDisabled())

	frames := e.Frames()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, frames, e.Frames(), "no frames after interrupt")
}

func TestRunContextCancel(t *testing.T) {
	term := newFakeTerminal(20, 30)
	e, err := New(term, fastConfig(), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(ctx, e)

	require.Eventually(t, func() bool {
		return e.Frames() > 0
	}, time.Second, time.Millisecond)

	cancel()
	assert.NoError(t, wait(t, done))
	assert.True(t, term.isDisabled())
}

func TestRunGravity(t *testing.T) {
	term := newFakeTerminal(20, 30)
	cfg := fastConfig()
	cfg.Timing.Gravity = 5 * time.Millisecond
	e, err := New(term, cfg, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(ctx, e)

	require.Eventually(t, func() bool {
		return e.State().Piece().Y >= 3
	}, time.Second, time.Millisecond)

	cancel()
	require.NoError(t, wait(t, done))
}

func TestRunEnableFailure(t *testing.T) {
	term := newFakeTerminal(20, 30)
	enableErr := errors.New("not a terminal")
	term.enableErr = enableErr

	e, err := New(term, fastConfig(), nil)
	require.NoError(t, err)

	err = e.Run(context.Background())
	require.ErrorIs(t, err, enableErr)
	assert.Zero(t, e.Frames())
}

func TestRunEventSourceFailure(t *testing.T) {
	term := newFakeTerminal(20, 30)
	e, err := New(term, fastConfig(), nil)
	require.NoError(t, err)

	readErr := errors.New("read /dev/tty: input/output error")
	term.readErr <- readErr

	err = wait(t, runAsync(context.Background(), e))
	require.ErrorIs(t, err, readErr)
	assert.True(t, term.isDisabled())
}

func TestRunFlushFailure(t *testing.T) {
	term := newFakeTerminal(20, 30)
	flushErr := errors.New("write /dev/tty: broken pipe")
	term.flushErr = flushErr

	e, err := New(term, fastConfig(), nil)
	require.NoError(t, err)

	err = wait(t, runAsync(context.Background(), e))
	require.ErrorIs(t, err, flushErr)
	assert.True(t, term.isDisabled())
}

// disableDuringFrame makes frame n wait inside Clear until trigger has
// shut the terminal down, so that frame's Flush hits a closed terminal.
func disableDuringFrame(t *testing.T, term *fakeTerminal, n int, trigger func()) {
	t.Helper()
	term.onClear = func(frame int) {
		if frame != n {
			return
		}
		trigger()
		deadline := time.Now().Add(time.Second)
		for !term.isDisabled() && time.Now().Before(deadline) {
			time.Sleep(time.Millisecond)
		}
	}
}

func TestRunCancelDuringFrame(t *testing.T) {
	term := newFakeTerminal(20, 30)
	e, err := New(term, fastConfig(), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	disableDuringFrame(t, term, 2, cancel)

	err = wait(t, runAsync(ctx, e))
	assert.NoError(t, err, "cancelling mid-frame is a clean exit")
	assert.True(t, term.isDisabled())
	assert.Equal(t, uint64(1), e.Frames())
}

func TestRunInterruptDuringFrame(t *testing.T) {
	term := newFakeTerminal(20, 30)
	e, err := New(term, fastConfig(), nil)
	require.NoError(t, err)

	disableDuringFrame(t, term, 2, func() { term.key("ctrl+c") })

	err = wait(t, runAsync(context.Background(), e))
	require.ErrorIs(t, err, core.ErrInterrupted)
	assert.NotErrorIs(t, err, core.ErrTerminalClosed)
}
