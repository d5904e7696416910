// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstep

import "github.com/cockroachdb/errors"

// A Parser is a continuation of a parse producing a value of type T.
//
// A parser is pending, done, or failed. Feed consumes as much of the input as
// the parser can use and returns the continuation of the parse, which may be
// the same parser. A pending parser stops as soon as the input is empty, and
// resumes when fed again. A parser that is done or failed ignores further
// input, and Feed returns it unchanged.
//
// A Parser is not safe for concurrent use; distinct parsers are independent.
type Parser[T any] interface {
	// Feed consumes input and returns the continuation of the parse.
	Feed(in Input) Parser[T]

	// Done reports whether the parse completed successfully.
	Done() bool

	// Err reports the error that ended the parse, or nil.
	Err() error

	// Value returns the result of a completed parse. It returns a zero value
	// if the parse is pending or failed.
	Value() T
}

// ErrPending is reported by Finish for a parse that did not complete.
var ErrPending = errors.New("parse incomplete")

// Return returns a Parser that is done with the value v.
func Return[T any](v T) Parser[T] { return done[T]{v} }

// Fail returns a Parser that has failed with err.
func Fail[T any](err error) Parser[T] { return failed[T]{err} }

// Finish feeds in to p and returns its result. If p does not complete,
// Finish reports ErrPending.
func Finish[T any](p Parser[T], in Input) (T, error) {
	p = p.Feed(in)
	if err := p.Err(); err != nil {
		var zero T
		return zero, err
	} else if !p.Done() {
		var zero T
		return zero, ErrPending
	}
	return p.Value(), nil
}

// ParseText parses s as a complete document using p.
func ParseText[T any](p Parser[T], s string) (T, error) {
	return Finish(ParseDocument(p), NewInputString(s))
}

// Apply returns a Parser that applies f to the result of p. An error reported
// by f fails the parse with a *BuildError at the position where p began
// reading. If p is already done, f is applied at once and an error from it
// has a zero position.
func Apply[A, B any](p Parser[A], f func(A) (B, error)) Parser[B] {
	if err := p.Err(); err != nil {
		return Fail[B](err)
	} else if p.Done() {
		return applyValue(Position{}, p.Value(), f)
	}
	return &applyParser[A, B]{p: p, f: f}
}

type applyParser[A, B any] struct {
	pending[B]
	p       Parser[A]
	f       func(A) (B, error)
	start   Position
	started bool
}

func (m *applyParser[A, B]) Feed(in Input) Parser[B] {
	if !m.started && in.Ready() {
		m.start, m.started = in.Pos(), true
	}
	m.p = m.p.Feed(in)
	if err := m.p.Err(); err != nil {
		return Fail[B](err)
	} else if m.p.Done() {
		return applyValue(m.start, m.p.Value(), m.f)
	}
	return m
}

func applyValue[A, B any](pos Position, v A, f func(A) (B, error)) Parser[B] {
	out, err := f(v)
	if err != nil {
		return Fail[B](buildError(pos, err))
	}
	return Return(out)
}

type done[T any] struct{ v T }

func (d done[T]) Feed(Input) Parser[T] { return d }
func (done[T]) Done() bool             { return true }
func (done[T]) Err() error             { return nil }
func (d done[T]) Value() T             { return d.v }

type failed[T any] struct{ err error }

func (f failed[T]) Feed(Input) Parser[T] { return f }
func (failed[T]) Done() bool             { return false }
func (f failed[T]) Err() error           { return f.err }
func (failed[T]) Value() T               { var zero T; return zero }

// pending provides the status methods of a Parser that has not finished.
// Types embedding it implement Feed.
type pending[T any] struct{}

func (pending[T]) Done() bool { return false }
func (pending[T]) Err() error { return nil }
func (pending[T]) Value() T   { var zero T; return zero }

// skipSpace discards whitespace from the front of in.
func skipSpace(in Input) {
	for in.Ready() && isSpace(in.Head()) {
		in.Step()
	}
}

// stalled reports whether a parser waiting for a character of in must
// suspend: in is empty and has neither ended nor failed.
func stalled(in Input) bool { return !in.Ready() && !in.Done() && in.Err() == nil }

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isDigit(ch rune) bool { return '0' <= ch && ch <= '9' }

func isHexDigit(ch rune) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func hexValue(ch rune) uint64 {
	switch {
	case ch >= 'a':
		return uint64(ch-'a') + 10
	case ch >= 'A':
		return uint64(ch-'A') + 10
	default:
		return uint64(ch - '0')
	}
}
