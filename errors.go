// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstep

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	// ErrTruncated is wrapped by a *SyntaxError reported because the input
	// ended in the middle of a production.
	ErrTruncated = errors.New("truncated input")

	// ErrUnsupportedKey is reported by object forms that do not accept a key.
	ErrUnsupportedKey = errors.New("unsupported key")

	// ErrNotFinite is reported when writing a NaN or infinite float.
	ErrNotFinite = errors.New("number is not finite")
)

// SyntaxError is the concrete type of errors reported for malformed input.
type SyntaxError struct {
	Pos     Position
	Message string

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", s.Pos, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }

// Truncated reports whether s was caused by the input ending early.
func (s *SyntaxError) Truncated() bool { return errors.Is(s.err, ErrTruncated) }

// BuildError is reported when a form rejects a value during parsing, or a
// shape rejects a value during writing.
type BuildError struct {
	Pos Position // zero when writing

	err error
}

// Error satisfies the error interface.
func (b *BuildError) Error() string {
	if b.Pos == (Position{}) {
		return b.err.Error()
	}
	return fmt.Sprintf("at %s: %v", b.Pos, b.err)
}

// Unwrap supports error wrapping.
func (b *BuildError) Unwrap() error { return b.err }

func syntaxErrorf(pos Position, msg string, args ...any) error {
	return &SyntaxError{Pos: pos, Message: fmt.Sprintf(msg, args...)}
}

// expected reports a syntax error for want at the current head of in. If the
// input has ended the error wraps ErrTruncated; if the input failed, its
// error is returned verbatim.
func expected(in Input, want ...string) error {
	if err := in.Err(); err != nil {
		return err
	}
	label := expectLabel(want)
	if in.Done() {
		return &SyntaxError{
			Pos:     in.Pos(),
			Message: "expected " + label + ", got end of input",
			err:     ErrTruncated,
		}
	}
	return &SyntaxError{
		Pos:     in.Pos(),
		Message: fmt.Sprintf("expected %s, got %q", label, in.Head()),
	}
}

// truncated reports a syntax error with msg for an input that has ended.
func truncated(pos Position, msg string) error {
	return &SyntaxError{Pos: pos, Message: msg, err: ErrTruncated}
}

func buildError(pos Position, err error) error {
	return &BuildError{Pos: pos, err: err}
}

// expectLabel makes a human-readable summary string for the given labels.
func expectLabel(want []string) string {
	switch len(want) {
	case 0:
		return "more input"
	case 1:
		return want[0]
	}
	last := len(want) - 1
	return strings.Join(want[:last], ", ") + " or " + want[last]
}
