//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package joskilo

import (
	"errors"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/muesli/termenv"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// ErrNotTerminal is returned by OpenTTY when stdin is not a terminal.
var ErrNotTerminal = errors.New("not a tty")

// TTY is the process terminal held in raw mode on the alternate screen.
// Close restores the original mode.
type TTY struct {
	*screen
	inFd, outFd int
	origTermios *unix.Termios
	// console receives the restore sequences, bypassing the frame buffer.
	console   io.Writer
	signals   chan os.Signal
	closeOnce sync.Once
}

// OpenTTY switches stdin to raw mode and stdout to the alternate screen.
// SIGTERM and SIGHUP restore the terminal before the process exits.
func OpenTTY() (*TTY, error) {
	in, out := int(os.Stdin.Fd()), int(os.Stdout.Fd())
	if !term.IsTerminal(in) {
		return nil, ErrNotTerminal
	}
	orig, err := unix.IoctlGetTermios(in, ioctlReadTermios)
	if err != nil {
		return nil, err
	}

	raw := *orig
	// Input modes
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	// Output modes
	raw.Oflag &^= unix.OPOST
	// Control modes
	raw.Cflag |= unix.CS8
	// Local modes
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	// Return after a tenth of a second even without input
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = 1

	if err := unix.IoctlSetTermios(in, ioctlWriteTermios, &raw); err != nil {
		return nil, err
	}

	profile := termenv.NewOutput(os.Stdout).EnvColorProfile()
	t := &TTY{
		screen:      newScreen(os.Stdout, profile),
		inFd:        in,
		outFd:       out,
		origTermios: orig,
		console:     os.Stdout,
		signals:     make(chan os.Signal, 1),
	}
	t.screen.out.AltScreen()
	if err := t.Flush(); err != nil {
		t.Close()
		return nil, err
	}

	signal.Notify(t.signals, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		if _, ok := <-t.signals; ok {
			t.Close()
			os.Exit(1)
		}
	}()
	return t, nil
}

// Close leaves the alternate screen and restores the terminal mode saved
// by OpenTTY. It is safe to call more than once, and from the signal
// handler while the editor is still drawing.
func (t *TTY) Close() error {
	var err error
	t.closeOnce.Do(func() {
		signal.Stop(t.signals)
		close(t.signals)
		out := termenv.NewOutput(t.console, termenv.WithProfile(termenv.Ascii))
		out.ExitAltScreen()
		out.ShowCursor()
		err = unix.IoctlSetTermios(t.inFd, ioctlWriteTermios, t.origTermios)
	})
	return err
}

// ReadKey blocks until a key event arrives.
func (t *TTY) ReadKey() (Key, error) {
	return decodeKey(t.readByte)
}

func (t *TTY) readByte() (byte, bool, error) {
	var buf [1]byte
	n, err := unix.Read(t.inFd, buf[:])
	if err != nil {
		if err == unix.EAGAIN || err == unix.EINTR {
			return 0, false, nil
		}
		return 0, false, err
	}
	return buf[0], n == 1, nil
}

// Size returns the current window size, or 80x24 when it cannot be read.
func (t *TTY) Size() Size {
	ws, err := unix.IoctlGetWinsize(t.outFd, unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 {
		return Size{Width: 80, Height: 24}
	}
	return Size{Width: int(ws.Col), Height: int(ws.Row)}
}
