// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package cursor navigates the structure of an ast.Value.
//
// A Cursor remembers each step it takes away from its origin, so it can
// report where it stands using the same notation a writer uses for keys:
//
//	c := cursor.New(v).Down("list", 0, "display name")
//	fmt.Println(c.Location()) // $.list[0]["display name"]
//
// Keys are resolved with ast.Object.Find, so when an object has repeated
// keys the cursor sees the last one, as a parser would.
package cursor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/creachadair/jstep"
	"github.com/creachadair/jstep/ast"
)

var (
	// ErrNotFound reports an object key with no matching member.
	ErrNotFound = errors.New("not found")

	// ErrOutOfRange reports an index beyond the bounds of an array or object.
	ErrOutOfRange = errors.New("index out of range")

	// ErrWrongType reports a value that cannot be traversed by a path
	// element, or a result of the wrong type.
	ErrWrongType = errors.New("wrong type")
)

// An Error reports a traversal that could not be completed.
type Error struct {
	Location string // where the cursor stood when the step failed
	Elem     any    // the path element that failed, or nil
	Err      error
}

func (e *Error) Error() string { return fmt.Sprintf("at %s: %v", e.Location, e.Err) }

func (e *Error) Unwrap() error { return e.Err }

// A Step is one move of a cursor away from its origin.
type Step struct {
	// Label is the text of the step in a location: ".name" or `["a b"]` for
	// a member, "[n]" for an array element, "()" for a function.
	Label string
	Value ast.Value
}

// A Cursor is a pointer that navigates into the structure of an ast.Value.
// A zero Cursor is not ready for use; call New.
type Cursor struct {
	org   ast.Value
	steps []Step
	err   error
}

// New constructs a Cursor positioned at origin.
func New(origin ast.Value) *Cursor { return &Cursor{org: origin} }

// Origin returns the origin value of c.
func (c *Cursor) Origin() ast.Value { return c.org }

// AtOrigin reports whether c is at its origin.
func (c *Cursor) AtOrigin() bool { return len(c.steps) == 0 }

// Value returns the value under the cursor.
func (c *Cursor) Value() ast.Value {
	if c.AtOrigin() {
		return c.org
	}
	return c.steps[len(c.steps)-1].Value
}

// Path returns the values from the origin to the current value, inclusive.
func (c *Cursor) Path() []ast.Value {
	out := make([]ast.Value, 0, len(c.steps)+1)
	out = append(out, c.org)
	for _, s := range c.steps {
		out = append(out, s.Value)
	}
	return out
}

// Steps returns a copy of the steps taken from the origin.
func (c *Cursor) Steps() []Step { return append([]Step(nil), c.steps...) }

// Location renders the position of c as "$" followed by the labels of its
// steps.
func (c *Cursor) Location() string {
	var sb strings.Builder
	sb.WriteString("$")
	for _, s := range c.steps {
		sb.WriteString(s.Label)
	}
	return sb.String()
}

// Err reports the error from the most recent call to Down, if any.
// A non-nil error has concrete type *Error.
func (c *Cursor) Err() error { return c.err }

// Up moves c back one step, if it is not at its origin.
// It returns c to permit chaining.
func (c *Cursor) Up() *Cursor {
	if n := len(c.steps); n > 0 {
		c.steps = c.steps[:n-1]
	}
	return c
}

// Reset moves c to its origin and clears its error.
func (c *Cursor) Reset() { c.steps = c.steps[:0]; c.err = nil }

// Down moves c along a path starting from the current value. Each path
// element is one of:
//
//   - A string or ast.String, selecting the member of an object with that key.
//   - An int, selecting the element of an array or the member of an object at
//     that offset. Negative offsets count back from the end.
//   - A func(ast.Value) (ast.Value, error), whose result is the next value.
//   - nil, which is ignored.
//
// If an element cannot be followed, c stays at the last value it reached and
// the failure is recorded. Use Err to recover it. Down returns c to permit
// chaining.
func (c *Cursor) Down(path ...any) *Cursor {
	c.err = nil
	for _, elt := range path {
		cur := c.Value()
		switch t := elt.(type) {
		case string:
			if !c.member(elt, cur, t) {
				return c
			}
		case ast.String:
			if !c.member(elt, cur, string(t)) {
				return c
			}

		case int:
			switch e := cur.(type) {
			case ast.Array:
				i, ok := fixBound(len(e), t)
				if !ok {
					return c.fail(elt, ErrOutOfRange, "array index %d (n=%d)", t, len(e))
				}
				c.push("["+strconv.Itoa(i)+"]", e[i])
			case ast.Object:
				i, ok := fixBound(len(e), t)
				if !ok {
					return c.fail(elt, ErrOutOfRange, "member index %d (n=%d)", t, len(e))
				}
				c.push(keyLabel(e[i].Key), e[i].Value)
			default:
				return c.fail(elt, ErrWrongType, "cannot index %T", cur)
			}

		case func(ast.Value) (ast.Value, error):
			next, err := t(cur)
			if err != nil {
				c.err = &Error{Location: c.Location(), Elem: elt, Err: err}
				return c
			}
			c.push("()", next)

		case nil:

		default:
			return c.fail(elt, ErrWrongType, "invalid path element %T", elt)
		}
	}
	return c
}

// member moves c to the member of cur with the given key, and reports
// whether it succeeded.
func (c *Cursor) member(elt any, cur ast.Value, key string) bool {
	obj, ok := cur.(ast.Object)
	if !ok {
		c.fail(elt, ErrWrongType, "cannot select key %q from %T", key, cur)
		return false
	}
	m := obj.Find(key)
	if m == nil {
		c.fail(elt, ErrNotFound, "key %q", key)
		return false
	}
	c.push(keyLabel(key), m.Value)
	return true
}

func (c *Cursor) push(label string, v ast.Value) {
	c.steps = append(c.steps, Step{Label: label, Value: v})
}

func (c *Cursor) fail(elt any, err error, msg string, args ...any) *Cursor {
	c.err = &Error{Location: c.Location(), Elem: elt, Err: errors.Wrapf(err, msg, args...)}
	return c
}

// keyLabel renders a member key as a location step. Keys that could be
// written bare are written after a dot.
func keyLabel(key string) string {
	if jstep.IsIdent(key) && !jstep.IsReserved(key) {
		return "." + key
	}
	return "[" + jstep.Quote(key) + "]"
}

func fixBound(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}

// Path is a shorthand for moving a new cursor from v along path and
// returning the value it reaches as a T. If the value is not a T, Path
// reports an *Error wrapping ErrWrongType.
func Path[T ast.Value](v ast.Value, path ...any) (T, error) {
	var zero T
	c := New(v).Down(path...)
	if err := c.Err(); err != nil {
		return zero, err
	}
	out, ok := c.Value().(T)
	if !ok {
		return zero, &Error{
			Location: c.Location(),
			Err:      errors.Wrapf(ErrWrongType, "have %T, want %T", c.Value(), zero),
		}
	}
	return out, nil
}
