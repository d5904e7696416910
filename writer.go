// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jstep

import (
	"io"
	"unicode/utf8"
)

// A Writer is a continuation of an encoding.
//
// A writer is pending, done, or failed. Emit writes as much output as out
// accepts and returns the continuation, which may be the same writer. A
// pending writer stops as soon as out is full and resumes when emitted
// again. A writer that is done or failed ignores further calls to Emit.
//
// If out reports Done before the writer finishes, the writer fails with
// io.ErrShortWrite. If out fails, the writer fails with the same error.
type Writer interface {
	// Emit writes output and returns the continuation of the encoding.
	Emit(out Output) Writer

	// Done reports whether the encoding completed successfully.
	Done() bool

	// Err reports the error that ended the encoding, or nil.
	Err() error
}

// A FilterMode selects which items of an array or object are written.
type FilterMode byte

const (
	FilterAlways   FilterMode = iota // write every item
	FilterDefined                    // omit null
	FilterTruthy                     // omit null, false, 0, and ""
	FilterDistinct                   // omit falsy values and empty arrays and objects
)

var modeName = [...]string{
	FilterAlways:   "always",
	FilterDefined:  "defined",
	FilterTruthy:   "truthy",
	FilterDistinct: "distinct",
}

func (m FilterMode) String() string {
	if int(m) < len(modeName) {
		return modeName[m]
	}
	return "FilterMode(invalid)"
}

// Admits reports whether m keeps a value with the given properties: null
// for null values, falsy for false, zero and the empty string, and empty
// for an array or object with no items.
func (m FilterMode) Admits(null, falsy, empty bool) bool {
	switch m {
	case FilterDefined:
		return !null
	case FilterTruthy:
		return !null && !falsy
	case FilterDistinct:
		return !null && !falsy && !empty
	}
	return true
}

// A Shape describes how to write values of type T.
type Shape[T any] interface {
	// Writer returns a writer for v with the given options.
	Writer(v T, opts WriteOptions) Writer

	// Keep reports whether v should be written when filtered by mode.
	Keep(v T, mode FilterMode) bool
}

// A Writable is a value bound to its own shape. It is the element type for
// arrays and objects whose items have different types.
type Writable interface {
	Writer(opts WriteOptions) Writer
	Keep(mode FilterMode) bool
}

// Lift binds v to the shape s.
func Lift[T any](s Shape[T], v T) Writable { return lifted[T]{s: s, v: v} }

type lifted[T any] struct {
	s Shape[T]
	v T
}

func (l lifted[T]) Writer(opts WriteOptions) Writer { return l.s.Writer(l.v, opts) }
func (l lifted[T]) Keep(mode FilterMode) bool       { return l.s.Keep(l.v, mode) }

// Dynamic is the Shape of Writable values.
var Dynamic Shape[Writable] = dynamicShape{}

type dynamicShape struct{}

func (dynamicShape) Writer(v Writable, opts WriteOptions) Writer {
	if v == nil {
		return WriteIdent("null")
	}
	return v.Writer(opts)
}

func (dynamicShape) Keep(v Writable, mode FilterMode) bool {
	if v == nil {
		return mode.Admits(true, true, false)
	}
	return v.Keep(mode)
}

// Items is a sequence of values of type E.
type Items[E any] interface {
	// Next returns the next item and true, or a zero value and false if no
	// items remain.
	Next() (E, bool)
}

// SliceItems returns an Items that yields the elements of s in order.
func SliceItems[E any](s []E) Items[E] { return &sliceItems[E]{s: s} }

type sliceItems[E any] struct{ s []E }

func (s *sliceItems[E]) Next() (E, bool) {
	if len(s.s) == 0 {
		var zero E
		return zero, false
	}
	v := s.s[0]
	s.s = s.s[1:]
	return v, true
}

// ItemsFunc adapts a function to the Items interface.
type ItemsFunc[E any] func() (E, bool)

// Next satisfies the Items interface.
func (f ItemsFunc[E]) Next() (E, bool) { return f() }

// A Field is a member of an object: a key, its value, and the mode used to
// decide whether to write it.
type Field[V any] struct {
	Key   string
	Value V
	Mode  FilterMode
}

type wroteAll struct{}

func (wroteAll) Emit(Output) Writer { return wroteAll{} }
func (wroteAll) Done() bool         { return true }
func (wroteAll) Err() error         { return nil }

type writeFailed struct{ err error }

func (w writeFailed) Emit(Output) Writer { return w }
func (writeFailed) Done() bool           { return false }
func (w writeFailed) Err() error         { return w.err }

// writing provides the status methods of a Writer that has not finished.
type writing struct{}

func (writing) Done() bool { return false }
func (writing) Err() error { return nil }

// outErr reports the error ending a write to out, if out will accept no
// more output; or nil if out is merely full.
func outErr(out Output) error {
	if err := out.Err(); err != nil {
		return err
	} else if out.Done() {
		return io.ErrShortWrite
	}
	return nil
}

// pendingText is literal text being written to an output.
type pendingText struct {
	text string
	off  int
}

func (p *pendingText) set(s string) { p.text, p.off = s, 0 }

func (p *pendingText) empty() bool { return p.off >= len(p.text) }

// flush writes as much of the remaining text to out as it accepts. It
// reports whether the text was fully written, or the error that prevents it.
func (p *pendingText) flush(out Output) (bool, error) {
	for p.off < len(p.text) {
		if !out.Ready() {
			return false, outErr(out)
		}
		r, n := utf8.DecodeRuneInString(p.text[p.off:])
		out.Put(r)
		p.off += n
	}
	return true, nil
}

// literal writes fixed text.
type literal struct {
	writing
	pendingText
}

func writeLiteral(s string) Writer {
	return &literal{pendingText: pendingText{text: s}}
}

func (w *literal) Emit(out Output) Writer {
	ok, err := w.flush(out)
	if err != nil {
		return writeFailed{err}
	} else if !ok {
		return w
	}
	return wroteAll{}
}
