// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstep

import "github.com/cockroachdb/errors"

type objStep byte

const (
	objOpen       objStep = iota // "{"
	objFirst                     // "}" or the first key
	objKey                       // inside a key
	objColon                     // ":"
	objValueStart                // start of a member value
	objValue                     // inside a member value
	objAfterValue                // "," or "}"
	objNext                      // a key after ","
)

// ParseObject returns a parser for an object literal. Keys are parsed by
// f.Key, and the value of each member by the parser f.Field returns for its
// key.
func ParseObject[B, T any](f ObjectForm[B, T], opts ParseOptions) Parser[T] {
	return &objectParser[B, T]{form: f, opts: opts}
}

type objectParser[B, T any] struct {
	pending[T]
	form   ObjectForm[B, T]
	opts   ParseOptions
	step   objStep
	start  Position
	b      B
	key    Parser[string]
	keyPos Position
	field  Parser[B]
}

func (p *objectParser[B, T]) Feed(in Input) Parser[T] {
	for {
		switch p.step {
		case objKey:
			p.key = p.key.Feed(in)
			if err := p.key.Err(); err != nil {
				return Fail[T](err)
			} else if !p.key.Done() {
				return p
			}
			p.step = objColon
			continue

		case objValue:
			p.field = p.field.Feed(in)
			if err := p.field.Err(); err != nil {
				return Fail[T](p.fieldError(in, err))
			} else if !p.field.Done() {
				return p
			}
			p.b = p.field.Value()
			p.field = nil
			p.step = objAfterValue
			continue
		}

		if p.step != objOpen {
			skipSpace(in)
		}
		if !in.Ready() {
			if stalled(in) {
				return p
			}
			return Fail[T](expected(in, p.want()))
		}

		switch ch := in.Head(); p.step {
		case objOpen:
			if ch != '{' {
				return Fail[T](expected(in, `"{"`))
			}
			p.start = in.Pos()
			p.b = p.form.Start()
			in.Step()
			p.step = objFirst

		case objFirst, objNext:
			if ch == '}' && p.step == objFirst {
				in.Step()
				return p.finish()
			}
			p.keyPos = in.Pos()
			p.key = p.form.Key()
			p.step = objKey

		case objColon:
			if ch != ':' {
				return Fail[T](expected(in, `":"`))
			}
			in.Step()
			p.step = objValueStart

		case objValueStart:
			p.field = p.form.Field(p.b, p.key.Value())
			p.step = objValue

		case objAfterValue:
			if ch == '}' {
				in.Step()
				return p.finish()
			} else if ch != ',' {
				return Fail[T](expected(in, `","`, `"}"`))
			}
			in.Step()
			p.step = objNext
		}
	}
}

// fieldError attributes an error from a field parser. Errors that do not
// carry a position of their own are reported as a *BuildError at the key.
func (p *objectParser[B, T]) fieldError(in Input, err error) error {
	var serr *SyntaxError
	var berr *BuildError
	if err == in.Err() || errors.As(err, &serr) || errors.As(err, &berr) {
		return err
	}
	return buildError(p.keyPos, err)
}

func (p *objectParser[B, T]) want() string {
	switch p.step {
	case objOpen:
		return `"{"`
	case objFirst:
		return `key or "}"`
	case objNext:
		return "key"
	case objColon:
		return `":"`
	case objAfterValue:
		return `"," or "}"`
	default:
		return "value"
	}
}

func (p *objectParser[B, T]) finish() Parser[T] {
	v, err := p.form.Finish(p.b)
	if err != nil {
		return Fail[T](buildError(p.start, err))
	}
	return Return(v)
}
