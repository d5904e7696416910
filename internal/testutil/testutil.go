// Package testutil defines support code for unit tests.
package testutil

import (
	"strings"
	"unicode/utf8"

	"github.com/creachadair/jstep"
)

// Feed writes each chunk to a fresh Buffer in turn, feeding p after each
// one, then closes the buffer and feeds p once more. It returns the final
// state of the parse.
func Feed[T any](p jstep.Parser[T], chunks ...string) jstep.Parser[T] {
	var buf jstep.Buffer
	for _, c := range chunks {
		buf.WriteString(c)
		p = p.Feed(&buf)
	}
	buf.Close()
	return p.Feed(&buf)
}

// Result returns the value of p if it is done, its error if it failed, or
// jstep.ErrPending if it is neither.
func Result[T any](p jstep.Parser[T]) (T, error) {
	var zero T
	if err := p.Err(); err != nil {
		return zero, err
	} else if !p.Done() {
		return zero, jstep.ErrPending
	}
	return p.Value(), nil
}

// Splits returns every way to divide s into two chunks at a byte offset,
// including the splits with an empty first or last chunk.
func Splits(s string) [][]string {
	out := make([][]string, 0, len(s)+1)
	for i := 0; i <= len(s); i++ {
		out = append(out, []string{s[:i], s[i:]})
	}
	return out
}

// Bytes divides s into chunks of one byte each. Multi-byte runes are split
// across chunks.
func Bytes(s string) []string {
	out := make([]string, len(s))
	for i := range len(s) {
		out[i] = s[i : i+1]
	}
	return out
}

// Runes divides s into chunks of one rune each.
func Runes(s string) []string {
	out := make([]string, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// Emit drives w with an output buffer that holds at most limit bytes at a
// time, draining the buffer between calls. It returns the accumulated text,
// the number of calls to Emit, and the error that ended w, if any.
func Emit(w jstep.Writer, limit int) (string, int, error) {
	var sb strings.Builder
	out := jstep.NewOutBuffer(limit)
	var calls int
	for !w.Done() && w.Err() == nil {
		w = w.Emit(out)
		calls++
		sb.Write(out.Drain())
	}
	return sb.String(), calls, w.Err()
}
