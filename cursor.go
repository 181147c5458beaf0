package joskilo

// Position is a zero-based (column, row) pair in grapheme and line units.
type Position struct {
	X, Y int
}

// Direction is a cursor movement command.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
	PageUp
	PageDown
	Home
	End
)

// Move returns the cursor position after moving p in direction d.
// The cursor may rest on row b.Len(), the empty row past the last line.
// pageHeight is the number of rows a page movement skips.
func Move(p Position, d Direction, b *Buffer, pageHeight int) Position {
	x, y := p.X, p.Y
	height := b.Len()
	width := b.LineLen(y)

	switch d {
	case Up:
		if y > 0 {
			y--
		}
	case Down:
		if y < height {
			y++
		}
	case Left:
		if x > 0 {
			x--
		} else if y > 0 {
			y--
			x = b.LineLen(y)
		}
	case Right:
		if x < width {
			x++
		} else if y < height {
			y++
			x = 0
		}
	case PageUp:
		if y > pageHeight {
			y -= pageHeight
		} else {
			y = 0
		}
	case PageDown:
		if y+pageHeight < height {
			y += pageHeight
		} else {
			y = height
		}
	case Home:
		x = 0
	case End:
		x = width
	}

	if y > height {
		y = height
	}
	if y < 0 {
		y = 0
	}
	if w := b.LineLen(y); x > w {
		x = w
	}
	if x < 0 {
		x = 0
	}
	return Position{X: x, Y: y}
}

// Scroll returns the viewport offset that keeps cursor inside a window of
// width by height cells, moving offset as little as possible on each axis.
func Scroll(cursor, offset Position, width, height int) Position {
	return Position{
		X: scrollAxis(cursor.X, offset.X, width),
		Y: scrollAxis(cursor.Y, offset.Y, height),
	}
}

func scrollAxis(pos, offset, extent int) int {
	if extent < 1 {
		extent = 1
	}
	switch {
	case pos < offset:
		return pos
	case pos >= offset+extent:
		return pos - extent + 1
	}
	return offset
}
