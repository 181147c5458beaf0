package joskilo

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// KeyKind identifies a decoded key event.
type KeyKind int

const (
	KeyNone KeyKind = iota
	// KeyChar is a printable character, carried in Key.Rune.
	KeyChar
	// KeyCtrl is Ctrl plus the lowercase letter in Key.Rune.
	KeyCtrl
	KeyEsc
	KeyBackspace
	KeyDelete
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
)

// Key is one input event. Only KeyChar and KeyCtrl carry a rune.
type Key struct {
	Kind KeyKind
	Rune rune
}

// Char returns the key event for typing r.
func Char(r rune) Key {
	return Key{Kind: KeyChar, Rune: r}
}

// Ctrl returns the key event for Ctrl plus letter c.
func Ctrl(c rune) Key {
	return Key{Kind: KeyCtrl, Rune: c}
}

func (k Key) String() string {
	switch k.Kind {
	case KeyChar:
		return fmt.Sprintf("%q", k.Rune)
	case KeyCtrl:
		return fmt.Sprintf("ctrl+%c", k.Rune)
	}
	if name, ok := keyNames[k.Kind]; ok {
		return name
	}
	return "none"
}

var keyNames = map[KeyKind]string{
	KeyEsc:       "esc",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPageUp:    "pgup",
	KeyPageDown:  "pgdown",
}

// Raw input bytes
const (
	ctrlH        = 8
	keyTab       = 9
	keyLF        = 10
	keyEnter     = 13
	keyEscape    = 27
	keyBackspace = 127
)

// byteReader yields input one byte at a time. ok is false when no byte
// arrived before the read timed out.
type byteReader func() (b byte, ok bool, err error)

// decodeKey reads one key event, blocking until the first byte arrives.
// Bytes following an escape are only consumed if they are already pending.
func decodeKey(next byteReader) (Key, error) {
	var c byte
	for {
		b, ok, err := next()
		if err != nil {
			return Key{}, err
		}
		if ok {
			c = b
			break
		}
	}

	switch {
	case c == keyEscape:
		return decodeEscape(next)
	case c == keyEnter || c == keyLF:
		return Char('\n'), nil
	case c == keyTab:
		return Char('\t'), nil
	case c == keyBackspace || c == ctrlH:
		return Key{Kind: KeyBackspace}, nil
	case c >= 1 && c <= 26:
		return Ctrl(rune('a' + c - 1)), nil
	case c < 32:
		return Key{}, nil
	case c < utf8.RuneSelf:
		return Char(rune(c)), nil
	}
	return decodeUTF8(c, next)
}

func decodeUTF8(lead byte, next byteReader) (Key, error) {
	var n int
	switch {
	case lead&0xe0 == 0xc0:
		n = 2
	case lead&0xf0 == 0xe0:
		n = 3
	case lead&0xf8 == 0xf0:
		n = 4
	default:
		return Key{}, nil
	}
	buf := []byte{lead}
	for len(buf) < n {
		b, ok, err := next()
		if err != nil {
			return Key{}, err
		}
		if !ok {
			return Key{}, nil
		}
		buf = append(buf, b)
	}
	r, _ := utf8.DecodeRune(buf)
	if r == utf8.RuneError {
		return Key{}, nil
	}
	return Char(r), nil
}

func decodeEscape(next byteReader) (Key, error) {
	esc := Key{Kind: KeyEsc}
	intro, ok, err := next()
	if err != nil || !ok {
		return esc, err
	}
	switch intro {
	case '[':
		return decodeCSI(next)
	case 'O':
		b, ok, err := next()
		if err != nil || !ok {
			return esc, err
		}
		switch b {
		case 'H':
			return Key{Kind: KeyHome}, nil
		case 'F':
			return Key{Kind: KeyEnd}, nil
		}
	}
	return esc, nil
}

// maxCSIParams bounds the bytes read while looking for the final byte.
const maxCSIParams = 16

// decodeCSI consumes a control sequence through its final byte, so that
// modified keys such as ESC [1;5C never leak into the document. Modifiers
// are dropped.
func decodeCSI(next byteReader) (Key, error) {
	esc := Key{Kind: KeyEsc}
	var params []byte
	for {
		b, ok, err := next()
		if err != nil || !ok {
			return esc, err
		}
		if b >= 0x40 && b <= 0x7e {
			return csiKey(string(params), b), nil
		}
		if len(params) == maxCSIParams {
			return esc, nil
		}
		params = append(params, b)
	}
}

func csiKey(params string, final byte) Key {
	switch final {
	case 'A':
		return Key{Kind: KeyUp}
	case 'B':
		return Key{Kind: KeyDown}
	case 'C':
		return Key{Kind: KeyRight}
	case 'D':
		return Key{Kind: KeyLeft}
	case 'H':
		return Key{Kind: KeyHome}
	case 'F':
		return Key{Kind: KeyEnd}
	case '~':
		code, _, _ := strings.Cut(params, ";")
		switch code {
		case "1", "7":
			return Key{Kind: KeyHome}
		case "3":
			return Key{Kind: KeyDelete}
		case "4", "8":
			return Key{Kind: KeyEnd}
		case "5":
			return Key{Kind: KeyPageUp}
		case "6":
			return Key{Kind: KeyPageDown}
		}
	}
	return Key{Kind: KeyEsc}
}
