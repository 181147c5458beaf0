package joskilo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBuffer(lines ...string) *Buffer {
	b := NewBuffer()
	for _, s := range lines {
		b.lines = append(b.lines, NewLine(s))
	}
	return b
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestOpen_SplitsLines(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    []string
	}{
		{"empty", "", []string{}},
		{"trailing newline", "ab\ncd\n", []string{"ab", "cd"}},
		{"no trailing newline", "ab\ncd", []string{"ab", "cd"}},
		{"blank lines", "a\n\nb\n\n", []string{"a", "", "b", ""}},
		{"crlf", "ab\r\ncd\r\n", []string{"ab", "cd"}},
		{"only newline", "\n", []string{""}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, tc.content)
			b, err := Open(path)
			require.NoError(t, err)
			assert.Equal(t, tc.want, b.Lines())
			assert.Equal(t, path, b.Path())
			assert.False(t, b.Modified())
		})
	}
}

func TestOpen_Errors(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := writeFile(t, "a\xffb\n")
	_, err = Open(path)
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}

func TestSave_RoundTrip(t *testing.T) {
	path := writeFile(t, "first\nse"+acute+"cond\n\tthird\nno newline at end")
	b, err := Open(path)
	require.NoError(t, err)

	n, err := b.Save()
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, len(data), n)
	assert.Equal(t, "first\nse"+acute+"cond\n\tthird\nno newline at end\n", string(data))

	again, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, b.Lines(), again.Lines())
}

func TestSave_ClearsModified(t *testing.T) {
	b, err := Open(writeFile(t, "ab\n"))
	require.NoError(t, err)
	require.True(t, b.Insert(Position{X: 1, Y: 0}, "X"))
	assert.True(t, b.Modified())
	_, err = b.Save()
	require.NoError(t, err)
	assert.False(t, b.Modified())
}

func TestSave_NoPath(t *testing.T) {
	b := newTestBuffer("a")
	_, err := b.Save()
	assert.ErrorIs(t, err, ErrNoPath)
}

func TestSave_WriteFailure(t *testing.T) {
	b := newTestBuffer("a")
	b.SetPath(filepath.Join(t.TempDir(), "no", "such", "dir", "f.txt"))
	_, err := b.Save()
	assert.Error(t, err)
}

func TestBuffer_Scenario(t *testing.T) {
	b := newTestBuffer("ab", "cd")

	require.True(t, b.Insert(Position{X: 1, Y: 0}, "X"))
	assert.Equal(t, []string{"aXb", "cd"}, b.Lines())

	require.True(t, b.Delete(Position{X: 3, Y: 0}))
	assert.Equal(t, []string{"aXbcd"}, b.Lines())

	require.True(t, b.Insert(Position{X: 2, Y: 0}, "\n"))
	assert.Equal(t, []string{"aX", "bcd"}, b.Lines())
}

func TestBuffer_InsertPastLastLine(t *testing.T) {
	b := newTestBuffer("a")
	require.True(t, b.Insert(Position{X: 5, Y: 1}, "z"))
	assert.Equal(t, []string{"a", "z"}, b.Lines())

	assert.False(t, b.Insert(Position{X: 0, Y: 3}, "q"))
	assert.False(t, b.Insert(Position{X: 0, Y: -1}, "q"))
	assert.Equal(t, []string{"a", "z"}, b.Lines())
}

func TestBuffer_InsertIntoEmpty(t *testing.T) {
	b := NewBuffer()
	require.True(t, b.Insert(Position{}, "h"))
	assert.Equal(t, []string{"h"}, b.Lines())
	assert.True(t, b.Modified())
}

func TestBuffer_InsertNewline(t *testing.T) {
	b := newTestBuffer("hello")
	require.True(t, b.InsertNewline(Position{X: 0, Y: 0}))
	assert.Equal(t, []string{"", "hello"}, b.Lines())

	require.True(t, b.InsertNewline(Position{X: 5, Y: 1}))
	assert.Equal(t, []string{"", "hello", ""}, b.Lines())

	require.True(t, b.InsertNewline(Position{X: 0, Y: 3}))
	assert.Equal(t, []string{"", "hello", "", ""}, b.Lines())

	assert.False(t, b.InsertNewline(Position{X: 0, Y: 9}))
}

func TestBuffer_DeleteMergesLines(t *testing.T) {
	b := newTestBuffer("he"+acute, "llo", "!")
	require.True(t, b.Delete(Position{X: 2, Y: 0}))
	assert.Equal(t, []string{"he" + acute + "llo", "!"}, b.Lines())
	assert.Equal(t, 5, b.LineLen(0))
}

func TestBuffer_DeleteNoOps(t *testing.T) {
	b := newTestBuffer("ab")
	assert.False(t, b.Delete(Position{X: 2, Y: 0}), "end of last line")
	assert.False(t, b.Delete(Position{X: 0, Y: 1}), "row past the end")
	assert.False(t, b.Delete(Position{X: 0, Y: -1}))
	assert.False(t, b.Delete(Position{X: -1, Y: 0}))
	assert.Equal(t, []string{"ab"}, b.Lines())
	assert.False(t, b.Modified())
}

func TestBuffer_LineAccessors(t *testing.T) {
	b := newTestBuffer("ab", "c")
	assert.Equal(t, 2, b.Len())
	assert.False(t, b.IsEmpty())
	assert.Nil(t, b.Line(2))
	assert.Nil(t, b.Line(-1))
	assert.Equal(t, 0, b.LineLen(5))
	assert.Equal(t, "c", b.Line(1).String())
	assert.True(t, NewBuffer().IsEmpty())
}
