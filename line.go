package joskilo

import (
	"strings"

	"github.com/xyproto/joskilo/internal/grapheme"
)

// Line is a single line of the document. Columns are grapheme cluster
// indexes, so a base letter plus combining marks, or a ZWJ emoji
// sequence, counts as one column.
type Line struct {
	text   string
	length int // grapheme clusters in text
}

// NewLine returns a Line holding s.
func NewLine(s string) *Line {
	l := &Line{text: s}
	l.update()
	return l
}

func (l *Line) update() {
	l.length = grapheme.Count(l.text)
}

// String returns the raw content of the line.
func (l *Line) String() string {
	return l.text
}

// Len returns the number of grapheme clusters in the line.
func (l *Line) Len() int {
	return l.length
}

// IsEmpty reports whether the line has no content.
func (l *Line) IsEmpty() bool {
	return l.length == 0
}

// Render returns the clusters in [start, end), clipped to the line.
// Tabs are drawn as a single space.
func (l *Line) Render(start, end int) string {
	if end > l.length {
		end = l.length
	}
	if start > end {
		start = end
	}
	return strings.ReplaceAll(grapheme.Slice(l.text, start, end), "\t", " ")
}

// Insert places c before the cluster at index at, or appends it when at is
// past the end.
func (l *Line) Insert(at int, c string) {
	if c == "" {
		return
	}
	if at >= l.length {
		l.text += c
	} else {
		i := grapheme.Offset(l.text, at)
		l.text = l.text[:i] + c + l.text[i:]
	}
	l.update()
}

// Delete removes the cluster at index at. It reports false when at does not
// name a cluster.
func (l *Line) Delete(at int) bool {
	if at < 0 || at >= l.length {
		return false
	}
	from := grapheme.Offset(l.text, at)
	to := from + grapheme.Offset(l.text[from:], 1)
	l.text = l.text[:from] + l.text[to:]
	l.update()
	return true
}

// Split truncates the line to [0, at) and returns [at, Len()) as a new Line.
func (l *Line) Split(at int) *Line {
	i := grapheme.Offset(l.text, at)
	rest := NewLine(l.text[i:])
	l.text = l.text[:i]
	l.update()
	return rest
}

// Append concatenates other onto the end of the line.
func (l *Line) Append(other *Line) {
	if other == nil {
		return
	}
	l.text += other.text
	l.update()
}
