// Package grapheme indexes text by user-perceived characters.
package grapheme

import "github.com/rivo/uniseg"

// Count returns the number of grapheme clusters in text.
func Count(text string) int {
	if text == "" {
		return 0
	}
	return uniseg.GraphemeClusterCount(text)
}

// Offset returns the byte offset at which cluster idx starts.
// An idx at or past the last cluster yields len(text).
func Offset(text string, idx int) int {
	if idx <= 0 {
		return 0
	}
	g := uniseg.NewGraphemes(text)
	n := 0
	for g.Next() {
		if n == idx {
			from, _ := g.Positions()
			return from
		}
		n++
	}
	return len(text)
}

// Slice returns the grapheme-safe substring for [start, end).
func Slice(text string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end <= start || text == "" {
		return ""
	}
	from := Offset(text, start)
	to := from + Offset(text[from:], end-start)
	return text[from:to]
}

// Width returns the number of terminal cells text occupies.
func Width(text string) int {
	return uniseg.StringWidth(text)
}
