// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstep

import (
	"github.com/cockroachdb/errors"
	"go4.org/mem"
)

// An Input is a pull-based view of a stream of Unicode scalar values.
//
// At most one of Ready, Done, and a non-nil Err holds at any time. If none of
// them holds, the input is empty for now, and more data may arrive later.
// Head and Step may only be called when Ready reports true.
type Input interface {
	Ready() bool   // a character is available at Head
	Done() bool    // the input ended cleanly
	Err() error    // the input failed
	Head() rune    // the current lookahead character
	Step()         // advance past Head
	Pos() Position // the position of Head
}

// ErrClosed is reported by a Buffer that is written after Close or Fail.
var ErrClosed = errors.New("write to closed buffer")

// A Buffer is an Input that is filled incrementally with chunks of UTF-8
// text. A multi-byte encoding split between chunks is held until the rest of
// its bytes arrive. After Close, an incomplete or invalid encoding decodes as
// the Unicode replacement rune.
//
// A zero Buffer is empty and ready for use.
type Buffer struct {
	buf    []byte
	off    int // offset of head in buf
	size   int // size in bytes of the decoded head, 0 if not decoded
	head   rune
	pos    Position
	closed bool
	err    error
}

// NewBuffer constructs a Buffer whose initial contents are a copy of data.
func NewBuffer(data []byte) *Buffer {
	b := new(Buffer)
	b.Write(data)
	return b
}

// Write appends p to the unconsumed contents of b. It reports ErrClosed if b
// has been closed or failed; otherwise it always consumes all of p.
func (b *Buffer) Write(p []byte) (int, error) {
	if b.closed || b.err != nil {
		return 0, ErrClosed
	}
	b.compact()
	b.buf = append(b.buf, p...)
	return len(p), nil
}

// WriteString appends s to the unconsumed contents of b.
func (b *Buffer) WriteString(s string) (int, error) {
	if b.closed || b.err != nil {
		return 0, ErrClosed
	}
	b.compact()
	b.buf = append(b.buf, s...)
	return len(s), nil
}

// Close marks the end of the input. Data already written remain readable.
func (b *Buffer) Close() error { b.closed = true; return nil }

// Fail marks the input as failed with err. Unread data are discarded.
func (b *Buffer) Fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Len reports the number of unconsumed bytes in b.
func (b *Buffer) Len() int { return len(b.buf) - b.off }

// Ready satisfies the Input interface.
func (b *Buffer) Ready() bool { return b.err == nil && b.decode() }

// Done satisfies the Input interface.
func (b *Buffer) Done() bool { return b.err == nil && b.closed && b.off == len(b.buf) }

// Err satisfies the Input interface.
func (b *Buffer) Err() error { return b.err }

// Head satisfies the Input interface.
func (b *Buffer) Head() rune {
	if !b.decode() {
		panic("jstep: Head called on a buffer that is not ready")
	}
	return b.head
}

// Step satisfies the Input interface.
func (b *Buffer) Step() {
	if !b.decode() {
		panic("jstep: Step called on a buffer that is not ready")
	}
	b.pos = b.pos.advance(b.head, b.size)
	b.off += b.size
	b.size = 0
}

// Pos satisfies the Input interface.
func (b *Buffer) Pos() Position {
	if b.pos.Line == 0 {
		return startPos
	}
	return b.pos
}

func (b *Buffer) decode() bool {
	if b.size != 0 {
		return true
	}
	if b.pos.Line == 0 {
		b.pos = startPos
	}
	rest := mem.B(b.buf[b.off:])
	if rest.Len() == 0 || (!b.closed && !mem.FullRune(rest)) {
		return false
	}
	b.head, b.size = mem.DecodeRune(rest)
	return true
}

// compact discards consumed bytes from the front of the buffer.
func (b *Buffer) compact() {
	if b.off == 0 {
		return
	}
	n := copy(b.buf, b.buf[b.off:])
	b.buf = b.buf[:n]
	b.off = 0
}

// textInput is an Input over a complete string.
type textInput struct {
	src  mem.RO
	size int
	head rune
	pos  Position
}

// NewInputString returns an Input that reads the contents of s and then
// ends. It does not copy s.
func NewInputString(s string) Input { return &textInput{src: mem.S(s), pos: startPos} }

func (t *textInput) Ready() bool   { return t.decode() }
func (t *textInput) Done() bool    { return t.src.Len() == 0 }
func (t *textInput) Err() error    { return nil }
func (t *textInput) Pos() Position { return t.pos }

func (t *textInput) Head() rune {
	if !t.decode() {
		panic("jstep: Head called at end of input")
	}
	return t.head
}

func (t *textInput) Step() {
	if !t.decode() {
		panic("jstep: Step called at end of input")
	}
	t.pos = t.pos.advance(t.head, t.size)
	t.src = t.src.SliceFrom(t.size)
	t.size = 0
}

func (t *textInput) decode() bool {
	if t.size != 0 {
		return true
	} else if t.src.Len() == 0 {
		return false
	}
	t.head, t.size = mem.DecodeRune(t.src)
	return true
}
