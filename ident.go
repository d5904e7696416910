// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jstep

import (
	"strings"
	"unicode"

	"github.com/creachadair/mds/mapset"
)

// reserved are the identifiers that denote constants in standard JSON.
var reserved = mapset.New("true", "false", "null")

// IsReserved reports whether name is one of the constants true, false, null.
func IsReserved(name string) bool { return reserved.Has(name) }

// IsIdent reports whether s is a valid bare identifier: a letter, "_", or
// "$" followed by zero or more letters, digits, "_", or "$".
func IsIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, ch := range s {
		if i == 0 && !isIdentStart(ch) {
			return false
		} else if !isIdentPart(ch) {
			return false
		}
	}
	return true
}

func isIdentStart(ch rune) bool { return ch == '_' || ch == '$' || unicode.IsLetter(ch) }
func isIdentPart(ch rune) bool  { return isIdentStart(ch) || unicode.IsDigit(ch) }

type identStep byte

const (
	identFirst identStep = iota
	identRest
)

// ParseIdent returns a parser for a bare identifier, whose name is passed to
// f. Unless opts.Exprs is set, only the reserved words true, false, and null
// are accepted.
func ParseIdent[T any](f IdentForm[T], opts ParseOptions) Parser[T] {
	return &identParser[T]{form: f, anyWord: opts.Exprs}
}

type identParser[T any] struct {
	pending[T]
	form    IdentForm[T]
	anyWord bool
	step    identStep
	start   Position
	name    strings.Builder
}

func (p *identParser[T]) Feed(in Input) Parser[T] {
	for {
		switch p.step {
		case identFirst:
			if !in.Ready() {
				if stalled(in) {
					return p
				}
				return Fail[T](expected(in, "identifier"))
			} else if !isIdentStart(in.Head()) {
				return Fail[T](expected(in, "identifier"))
			}
			p.start = in.Pos()
			p.name.WriteRune(in.Head())
			in.Step()
			p.step = identRest

		case identRest:
			for in.Ready() && isIdentPart(in.Head()) {
				p.name.WriteRune(in.Head())
				in.Step()
			}
			if stalled(in) {
				return p
			} else if err := in.Err(); err != nil {
				return Fail[T](err)
			}
			return p.finish()
		}
	}
}

func (p *identParser[T]) finish() Parser[T] {
	name := p.name.String()
	if !p.anyWord && !IsReserved(name) {
		return Fail[T](syntaxErrorf(p.start, "unexpected identifier %q", name))
	}
	v, err := p.form.FromIdent(name)
	if err != nil {
		return Fail[T](buildError(p.start, err))
	}
	return Return(v)
}
