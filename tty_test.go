//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package joskilo

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// newDetachedTTY returns a TTY whose descriptors are a plain file, so the
// termios restore fails but everything written is observable.
func newDetachedTTY(t *testing.T, frame, console *bytes.Buffer) *TTY {
	f, err := os.Create(filepath.Join(t.TempDir(), "tty"))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return &TTY{
		screen:      newScreen(frame, termenv.Ascii),
		inFd:        int(f.Fd()),
		outFd:       int(f.Fd()),
		origTermios: &unix.Termios{},
		console:     console,
		signals:     make(chan os.Signal, 1),
	}
}

func TestTTY_CloseLeavesFrameBufferAlone(t *testing.T) {
	var frame, console bytes.Buffer
	tty := newDetachedTTY(t, &frame, &console)
	tty.Print("pending")

	assert.Error(t, tty.Close())
	assert.Equal(t, "\x1b[?1049l\x1b[?25h", console.String())
	assert.Zero(t, frame.Len())

	require.NoError(t, tty.Flush())
	assert.Equal(t, "pending", frame.String())
}

func TestTTY_CloseIsIdempotent(t *testing.T) {
	var frame, console bytes.Buffer
	tty := newDetachedTTY(t, &frame, &console)
	tty.Close()
	assert.NoError(t, tty.Close())
	assert.Equal(t, "\x1b[?1049l\x1b[?25h", console.String())
}

func TestTTY_CloseWhileDrawing(t *testing.T) {
	var frame, console bytes.Buffer
	tty := newDetachedTTY(t, &frame, &console)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		tty.Close()
	}()
	for i := 0; i < 100; i++ {
		tty.Print("x")
		tty.SetCursorPosition(Position{X: i})
	}
	wg.Wait()
	require.NoError(t, tty.Flush())
	assert.Contains(t, frame.String(), "x")
}
