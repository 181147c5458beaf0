// Package joskilo is a small terminal text editor. It keeps the document as
// a list of grapheme-indexed lines and draws it with VT100 escape sequences
// on a raw-mode terminal.
package joskilo

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/xyproto/joskilo/internal/grapheme"
)

// State is the state of the editor loop.
type State int

const (
	Running State = iota
	Quit
)

// StatusMessage is a transient message and the time it was set.
type StatusMessage struct {
	Text string
	Time time.Time
}

// Editor holds the complete state of one editing session.
type Editor struct {
	term Terminal
	cfg  Config
	log  *log.Logger
	now  func() time.Time

	buf    *Buffer
	cursor Position
	offset Position
	status StatusMessage
	state  State
}

// New returns an editor with an empty, unnamed buffer drawing on t.
func New(t Terminal, cfg Config) *Editor {
	e := &Editor{
		term: t,
		cfg:  cfg,
		log:  log.New(io.Discard, "", 0),
		now:  time.Now,
		buf:  NewBuffer(),
	}
	e.SetStatusMessage("%s", cfg.HelpMessage)
	return e
}

// SetLogger directs diagnostics to l.
func (e *Editor) SetLogger(l *log.Logger) {
	if l != nil {
		e.log = l
	}
}

// Open loads path into the editor. On failure the editor keeps an empty
// buffer and shows the error on the message bar. A file that does not
// exist yet stays associated with the buffer, so saving creates it.
func (e *Editor) Open(path string) error {
	e.cursor = Position{}
	e.offset = Position{}
	b, err := Open(path)
	if err != nil {
		e.log.Printf("open %s: %v", path, err)
		e.buf = NewBuffer()
		if errors.Is(err, fs.ErrNotExist) {
			e.buf.SetPath(path)
		}
		e.SetStatusMessage("ERROR: Could not open file: %s", path)
		return err
	}
	e.buf = b
	return nil
}

// Buffer returns the document being edited.
func (e *Editor) Buffer() *Buffer { return e.buf }

// Cursor returns the cursor position in the document.
func (e *Editor) Cursor() Position { return e.cursor }

// Offset returns the document position drawn at the top left of the screen.
func (e *Editor) Offset() Position { return e.offset }

// State returns whether the editor is still running.
func (e *Editor) State() State { return e.state }

// SetStatusMessage sets the message bar text.
func (e *Editor) SetStatusMessage(format string, args ...any) {
	e.status = StatusMessage{
		Text: fmt.Sprintf(format, args...),
		Time: e.now(),
	}
}

// Run draws the screen and handles keys until the user quits. A terminal
// error clears the screen and is returned; the caller restores the
// terminal mode.
func (e *Editor) Run() error {
	for {
		if err := e.refreshScreen(); err != nil {
			return e.die(err)
		}
		if e.state == Quit {
			return nil
		}
		if err := e.processKeypress(); err != nil {
			return e.die(err)
		}
	}
}

func (e *Editor) die(err error) error {
	e.log.Printf("terminal: %v", err)
	e.term.ClearScreen()
	e.term.Flush()
	return err
}

// viewport returns the size of the text area, which leaves two rows for
// the status and message bars.
func (e *Editor) viewport() Size {
	s := e.term.Size()
	s.Height -= 2
	if s.Height < 0 {
		s.Height = 0
	}
	if s.Width < 0 {
		s.Width = 0
	}
	return s
}

// ---------- Event processing ----------

var moveKeys = map[KeyKind]Direction{
	KeyUp:       Up,
	KeyDown:     Down,
	KeyLeft:     Left,
	KeyRight:    Right,
	KeyPageUp:   PageUp,
	KeyPageDown: PageDown,
	KeyHome:     Home,
	KeyEnd:      End,
}

func (e *Editor) processKeypress() error {
	k, err := e.term.ReadKey()
	if err != nil {
		return err
	}
	e.HandleKey(k)
	return nil
}

// HandleKey applies one key event and scrolls the cursor into view.
func (e *Editor) HandleKey(k Key) {
	switch k.Kind {
	case KeyCtrl:
		switch k.Rune {
		case 'q':
			e.state = Quit
		case 's':
			e.save()
		}
	case KeyChar:
		e.insert(string(k.Rune))
	case KeyDelete:
		e.buf.Delete(e.cursor)
	case KeyBackspace:
		if e.cursor.X > 0 || e.cursor.Y > 0 {
			e.moveCursor(Left)
			e.buf.Delete(e.cursor)
		}
	default:
		if d, ok := moveKeys[k.Kind]; ok {
			e.moveCursor(d)
		}
	}
	e.scroll()
}

// insert types c at the cursor. The cursor only advances when the edit
// added a cluster or a line; a combining mark joins the previous cluster.
func (e *Editor) insert(c string) {
	rows, width := e.buf.Len(), e.buf.LineLen(e.cursor.Y)
	if !e.buf.Insert(e.cursor, c) {
		return
	}
	if e.buf.Len() != rows || e.buf.LineLen(e.cursor.Y) > width {
		e.moveCursor(Right)
	}
}

func (e *Editor) save() {
	n, err := e.buf.Save()
	if err != nil {
		e.log.Printf("save %q: %v", e.buf.Path(), err)
		e.SetStatusMessage("Can't save! I/O error: %s", err)
		return
	}
	e.SetStatusMessage("%d bytes written on disk", n)
}

func (e *Editor) moveCursor(d Direction) {
	e.cursor = Move(e.cursor, d, e.buf, e.viewport().Height)
}

func (e *Editor) scroll() {
	v := e.viewport()
	e.offset = Scroll(e.cursor, e.offset, v.Width, v.Height)
	e.offset.X = e.fitColumn(v.Width)
}

// fitColumn returns the horizontal offset advanced one cluster at a time
// until the cells between it and the cursor leave the cursor on screen.
// Wide glyphs take two cells, so this can scroll further than Scroll does.
func (e *Editor) fitColumn(width int) int {
	x := e.offset.X
	l := e.buf.Line(e.cursor.Y)
	if l == nil {
		return x
	}
	for x < e.cursor.X && grapheme.Width(l.Render(x, e.cursor.X)) >= width {
		x++
	}
	return x
}

// ---------- Terminal update ----------

func (e *Editor) refreshScreen() error {
	e.term.HideCursor()
	e.term.SetCursorPosition(Position{})
	if e.state == Quit {
		e.term.ClearScreen()
	} else {
		v := e.viewport()
		e.drawRows(v)
		e.drawStatusBar(v.Width)
		e.drawMessageBar(v.Width)
		e.term.SetCursorPosition(Position{
			X: e.cursorColumn(),
			Y: e.cursor.Y - e.offset.Y,
		})
	}
	e.term.ShowCursor()
	return e.term.Flush()
}

// cursorColumn is the screen column of the cursor, counting the cells of
// the visible text to its left.
func (e *Editor) cursorColumn() int {
	l := e.buf.Line(e.cursor.Y)
	if l == nil || e.cursor.X <= e.offset.X {
		return 0
	}
	return grapheme.Width(l.Render(e.offset.X, e.cursor.X))
}

func (e *Editor) drawRows(v Size) {
	for row := 0; row < v.Height; row++ {
		e.term.ClearCurrentLine()
		if l := e.buf.Line(row + e.offset.Y); l != nil {
			text := l.Render(e.offset.X, e.offset.X+v.Width)
			e.term.Print(runewidth.Truncate(text, v.Width, ""))
		} else if e.buf.IsEmpty() && row == v.Height/3 {
			e.drawWelcome(v.Width)
		} else {
			e.term.Print("~")
		}
		e.term.Print("\r\n")
	}
}

func (e *Editor) drawWelcome(width int) {
	welcome := fmt.Sprintf("Joskilo editor -- version %s", Version)
	padding := (width - len(welcome)) / 2
	if padding < 1 {
		padding = 1
	}
	line := "~" + strings.Repeat(" ", padding-1) + welcome
	e.term.Print(runewidth.Truncate(line, width, ""))
}

func (e *Editor) drawStatusBar(width int) {
	name := "[No Name]"
	if p := e.buf.Path(); p != "" {
		name = runewidth.Truncate(p, e.cfg.FilenameWidth, "")
	}
	status := fmt.Sprintf("%s - %d lines", name, e.buf.Len())
	if e.buf.Modified() {
		status += " (modified)"
	}
	indicator := fmt.Sprintf("%d/%d", e.cursor.Y+1, e.buf.Len())
	if pad := width - runewidth.StringWidth(status) - len(indicator); pad > 0 {
		status += strings.Repeat(" ", pad)
	}
	status = runewidth.Truncate(status+indicator, width, "")

	e.term.SetBackground(e.cfg.StatusBackground)
	e.term.SetForeground(e.cfg.StatusForeground)
	e.term.Print(status)
	e.term.ResetForeground()
	e.term.ResetBackground()
	e.term.Print("\r\n")
}

func (e *Editor) statusVisible() bool {
	return e.status.Text != "" && e.now().Sub(e.status.Time) < e.cfg.StatusTimeout
}

func (e *Editor) drawMessageBar(width int) {
	e.term.ClearCurrentLine()
	if !e.statusVisible() {
		return
	}
	e.term.SetForeground(e.cfg.MessageForeground)
	e.term.Print(runewidth.Truncate(e.status.Text, width, ""))
	e.term.ResetForeground()
}
