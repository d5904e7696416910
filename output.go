// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstep

import "unicode/utf8"

// An Output is a push-based view of a destination for Unicode scalar values.
//
// At most one of Ready, Done, and a non-nil Err holds at any time. If none of
// them holds, the destination is full for now and may accept more output
// later. Put may only be called when Ready reports true.
type Output interface {
	Ready() bool // the destination accepts a character
	Done() bool  // the destination ended and accepts no more output
	Err() error  // the destination failed
	Put(r rune)  // write one character
}

// An OutBuffer is an Output that collects UTF-8 text in memory, optionally
// bounded by a capacity limit. A zero OutBuffer has no limit.
type OutBuffer struct {
	buf    []byte
	limit  int
	closed bool
	err    error
}

// NewOutBuffer constructs an OutBuffer that reports full once it holds limit
// or more bytes. A limit ≤ 0 means no limit. Because Put accepts a whole
// rune, the contents may exceed limit by up to utf8.UTFMax-1 bytes.
func NewOutBuffer(limit int) *OutBuffer { return &OutBuffer{limit: max(limit, 0)} }

// Ready satisfies the Output interface.
func (o *OutBuffer) Ready() bool {
	return o.err == nil && !o.closed && (o.limit == 0 || len(o.buf) < o.limit)
}

// Done satisfies the Output interface.
func (o *OutBuffer) Done() bool { return o.err == nil && o.closed }

// Err satisfies the Output interface.
func (o *OutBuffer) Err() error { return o.err }

// Put satisfies the Output interface.
func (o *OutBuffer) Put(r rune) {
	if !o.Ready() {
		panic("jstep: Put called on an output that is not ready")
	}
	o.buf = utf8.AppendRune(o.buf, r)
}

// Bytes returns a view of the contents of o. It is valid until the next
// call to Put, Drain, or Reset.
func (o *OutBuffer) Bytes() []byte { return o.buf }

// String returns a copy of the contents of o as a string.
func (o *OutBuffer) String() string { return string(o.buf) }

// Len reports the number of bytes held by o.
func (o *OutBuffer) Len() int { return len(o.buf) }

// Reset discards the contents of o, freeing its capacity.
func (o *OutBuffer) Reset() { o.buf = o.buf[:0] }

// Discard removes the first n bytes of the contents of o.
func (o *OutBuffer) Discard(n int) {
	o.buf = o.buf[:copy(o.buf, o.buf[min(n, len(o.buf)):])]
}

// Drain returns a copy of the contents of o and resets it.
func (o *OutBuffer) Drain() []byte {
	out := append([]byte(nil), o.buf...)
	o.Reset()
	return out
}

// Close marks o as ended; it accepts no further output.
func (o *OutBuffer) Close() { o.closed = true }

// Fail marks o as failed with err.
func (o *OutBuffer) Fail(err error) {
	if o.err == nil {
		o.err = err
	}
}
