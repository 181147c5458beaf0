package joskilo

import (
	"bytes"
	"io"

	"github.com/muesli/termenv"
)

// Size is the terminal size in cells.
type Size struct {
	Width, Height int
}

// Terminal is the display and keyboard the editor drives. Drawing calls
// are buffered until Flush.
type Terminal interface {
	ReadKey() (Key, error)
	Size() Size
	SetCursorPosition(p Position)
	ClearScreen()
	ClearCurrentLine()
	SetForeground(color string)
	SetBackground(color string)
	ResetForeground()
	ResetBackground()
	HideCursor()
	ShowCursor()
	Print(s string)
	Flush() error
}

// screen implements the drawing half of Terminal by collecting VT100
// sequences in a buffer and writing them out in one go on Flush.
type screen struct {
	buf bytes.Buffer
	out *termenv.Output
	w   io.Writer
}

func newScreen(w io.Writer, profile termenv.Profile) *screen {
	s := &screen{w: w}
	s.out = termenv.NewOutput(&s.buf, termenv.WithProfile(profile))
	return s
}

func (s *screen) SetCursorPosition(p Position) {
	s.out.MoveCursor(p.Y+1, p.X+1)
}

func (s *screen) ClearScreen() {
	s.out.ClearScreen()
}

func (s *screen) ClearCurrentLine() {
	s.out.ClearLine()
}

func (s *screen) color(color string, bg bool) {
	c := s.out.Color(color)
	if c == nil {
		return
	}
	if seq := c.Sequence(bg); seq != "" {
		s.buf.WriteString(termenv.CSI + seq + "m")
	}
}

func (s *screen) SetForeground(color string) {
	s.color(color, false)
}

func (s *screen) SetBackground(color string) {
	s.color(color, true)
}

func (s *screen) reset(seq string) {
	if s.out.Profile != termenv.Ascii {
		s.buf.WriteString(termenv.CSI + seq + "m")
	}
}

func (s *screen) ResetForeground() {
	s.reset("39")
}

func (s *screen) ResetBackground() {
	s.reset("49")
}

func (s *screen) HideCursor() {
	s.out.HideCursor()
}

func (s *screen) ShowCursor() {
	s.out.ShowCursor()
}

func (s *screen) Print(text string) {
	s.buf.WriteString(text)
}

func (s *screen) Flush() error {
	defer s.buf.Reset()
	_, err := s.w.Write(s.buf.Bytes())
	return err
}
