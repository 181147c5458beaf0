package joskilo

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

var (
	// ErrNoPath is returned when saving a buffer that has no file name.
	ErrNoPath = errors.New("no file name")
	// ErrInvalidUTF8 is returned when a file does not hold UTF-8 text.
	ErrInvalidUTF8 = errors.New("file is not valid UTF-8 text")
)

// Buffer is the document being edited: an ordered list of lines and the
// path it was loaded from, if any.
type Buffer struct {
	lines    []*Line
	path     string
	modified bool
}

// NewBuffer returns an empty, unnamed buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Open loads the file at path, one Line per newline-terminated segment.
// A final newline does not produce an extra empty line, and a trailing
// carriage return is stripped from each line.
func Open(path string) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%s: %w", path, ErrInvalidUTF8)
	}
	b := &Buffer{path: path}
	if len(data) == 0 {
		return b, nil
	}
	segments := strings.Split(string(data), "\n")
	if segments[len(segments)-1] == "" {
		segments = segments[:len(segments)-1]
	}
	b.lines = make([]*Line, 0, len(segments))
	for _, s := range segments {
		b.lines = append(b.lines, NewLine(strings.TrimSuffix(s, "\r")))
	}
	return b, nil
}

// Path returns the associated file name, or "" for an unnamed buffer.
func (b *Buffer) Path() string {
	return b.path
}

// SetPath associates the buffer with a file name.
func (b *Buffer) SetPath(path string) {
	b.path = path
}

// Len returns the number of lines.
func (b *Buffer) Len() int {
	return len(b.lines)
}

// IsEmpty reports whether the buffer has no lines.
func (b *Buffer) IsEmpty() bool {
	return len(b.lines) == 0
}

// Modified reports whether the buffer changed since it was opened or saved.
func (b *Buffer) Modified() bool {
	return b.modified
}

// Line returns line y, or nil when y is out of range.
func (b *Buffer) Line(y int) *Line {
	if y < 0 || y >= len(b.lines) {
		return nil
	}
	return b.lines[y]
}

// LineLen returns the length of line y, or 0 when y is out of range.
func (b *Buffer) LineLen(y int) int {
	if l := b.Line(y); l != nil {
		return l.Len()
	}
	return 0
}

// Lines returns the content of every line.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	for i, l := range b.lines {
		out[i] = l.String()
	}
	return out
}

func (b *Buffer) bytes() []byte {
	var buf bytes.Buffer
	for _, l := range b.lines {
		buf.WriteString(l.String())
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// Save overwrites the associated file with every line followed by a
// newline, and returns the number of bytes written.
func (b *Buffer) Save() (int, error) {
	if b.path == "" {
		return 0, ErrNoPath
	}
	data := b.bytes()
	if err := os.WriteFile(b.path, data, 0o644); err != nil {
		return 0, err
	}
	b.modified = false
	return len(data), nil
}

func (b *Buffer) insertLine(at int, l *Line) {
	b.lines = append(b.lines, nil)
	copy(b.lines[at+1:], b.lines[at:])
	b.lines[at] = l
}

func (b *Buffer) deleteLine(at int) {
	b.lines = append(b.lines[:at], b.lines[at+1:]...)
}

// Insert puts the character c at pos. A newline splits the line. Inserting
// on the row just past the last line creates that line; rows further out
// are ignored. Insert reports whether the document changed.
func (b *Buffer) Insert(pos Position, c string) bool {
	if c == "\n" || c == "\r\n" {
		return b.InsertNewline(pos)
	}
	if c == "" || pos.Y < 0 || pos.Y > len(b.lines) {
		return false
	}
	if pos.Y == len(b.lines) {
		b.lines = append(b.lines, NewLine(""))
	}
	b.lines[pos.Y].Insert(pos.X, c)
	b.modified = true
	return true
}

// InsertNewline breaks the line at pos, moving the text from pos.X onward
// to a new line below. On the row past the last line it appends an empty
// line.
func (b *Buffer) InsertNewline(pos Position) bool {
	if pos.Y < 0 || pos.Y > len(b.lines) {
		return false
	}
	if pos.Y == len(b.lines) {
		b.lines = append(b.lines, NewLine(""))
	} else {
		rest := b.lines[pos.Y].Split(pos.X)
		b.insertLine(pos.Y+1, rest)
	}
	b.modified = true
	return true
}

// Delete removes the character at pos. At the end of a line that has a
// successor, the next line is joined onto it. Delete reports whether the
// document changed; it is false for rows outside the buffer and at the end
// of the last line.
func (b *Buffer) Delete(pos Position) bool {
	if pos.Y < 0 || pos.Y >= len(b.lines) {
		return false
	}
	row := b.lines[pos.Y]
	if pos.X >= row.Len() {
		if pos.Y+1 >= len(b.lines) {
			return false
		}
		row.Append(b.lines[pos.Y+1])
		b.deleteLine(pos.Y + 1)
		b.modified = true
		return true
	}
	if !row.Delete(pos.X) {
		return false
	}
	b.modified = true
	return true
}
