// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstep

import (
	"math/big"

	"github.com/cockroachdb/errors"
)

// ParseValue returns a parser for any value, which chooses a grammar by the
// first character of the input:
//
//	Character          | Grammar
//	------------------ | ------------------------------
//	letter, "_", "$"   | identifier, built by f.FromIdent
//	"-" or digit       | number, built by f's NumberForm
//	"\""               | string, f.StringParser
//	"["                | array, f.ArrayParser
//	"{"                | object, f.ObjectParser
//
// Any other character, or the end of input, is a syntax error. Leading
// whitespace is not skipped.
func ParseValue[T any](f ValueForm[T], opts ParseOptions) Parser[T] {
	return &valueParser[T]{form: f, opts: opts}
}

type valueParser[T any] struct {
	pending[T]
	form ValueForm[T]
	opts ParseOptions
}

func (p *valueParser[T]) Feed(in Input) Parser[T] {
	if !in.Ready() {
		if stalled(in) {
			return p
		}
		return Fail[T](expected(in, "value"))
	}
	var next Parser[T]
	switch ch := in.Head(); {
	case isIdentStart(ch):
		next = ParseIdent[T](p.form, p.opts)
	case ch == '-' || isDigit(ch):
		next = ParseNumber[T](p.form)
	case ch == '"':
		next = p.form.StringParser()
	case ch == '[':
		next = p.form.ArrayParser(p.opts)
	case ch == '{':
		next = p.form.ObjectParser(p.opts)
	default:
		return Fail[T](expected(in, "value"))
	}
	return next.Feed(in)
}

type docStep byte

const (
	docLead  docStep = iota // whitespace before the value
	docValue                // inside the value
	docTrail                // whitespace after the value
)

// ParseDocument returns a parser for a complete document consisting of the
// value parsed by p, optionally surrounded by whitespace. The parse succeeds
// only once the input ends after the value.
func ParseDocument[T any](p Parser[T]) Parser[T] { return &docParser[T]{p: p} }

type docParser[T any] struct {
	pending[T]
	p    Parser[T]
	step docStep
}

func (d *docParser[T]) Feed(in Input) Parser[T] {
	for {
		switch d.step {
		case docLead:
			skipSpace(in)
			if stalled(in) {
				return d
			}
			d.step = docValue

		case docValue:
			d.p = d.p.Feed(in)
			if err := d.p.Err(); err != nil {
				return Fail[T](err)
			} else if !d.p.Done() {
				return d
			}
			d.step = docTrail

		case docTrail:
			skipSpace(in)
			if in.Ready() {
				return Fail[T](syntaxErrorf(in.Pos(), "unexpected %q after value", in.Head()))
			} else if stalled(in) {
				return d
			} else if err := in.Err(); err != nil {
				return Fail[T](err)
			}
			return Return(d.p.Value())
		}
	}
}

// Any is a value form that builds plain Go values:
//
//	Literal                 | Type
//	----------------------- | ----------------
//	true, false             | bool
//	null                    | nil
//	integer                 | int64, or *big.Int if it overflows
//	hexadecimal             | uint64
//	decimal                 | float64
//	string                  | string
//	array                   | []any
//	object                  | map[string]any
//
// Other bare words are rejected.
var Any anyForm

type anyForm struct{}

func (anyForm) FromInteger(v int64) (any, error)             { return v, nil }
func (anyForm) FromHexadecimal(v uint64, _ int) (any, error) { return v, nil }
func (anyForm) FromBigInteger(text string) (any, error)      { return liftAny(BigInts.FromBigInteger(text)) }
func (anyForm) FromDecimal(text string) (any, error)         { return liftAny(Float64s.FromDecimal(text)) }
func (anyForm) StringParser() Parser[any]                    { return toAny(ParseString(Strings)) }
func (anyForm) Parser(opts ParseOptions) Parser[any]         { return ParseValue(Any, opts) }

func (anyForm) FromIdent(name string) (any, error) {
	switch name {
	case "null":
		return nil, nil
	case "true", "false":
		return name == "true", nil
	}
	return nil, errors.Newf("unsupported identifier %q", name)
}

func (anyForm) ArrayParser(opts ParseOptions) Parser[any] {
	return toAny(ParseArray(Slice(func() Parser[any] { return Any.Parser(opts) }, Any), opts))
}

func (anyForm) ObjectParser(opts ParseOptions) Parser[any] {
	return toAny(ParseObject(Map(func() Parser[any] { return Any.Parser(opts) }, Any), opts))
}

func liftAny[T any](v T, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}

func toAny[T any](p Parser[T]) Parser[any] {
	return Apply(p, func(v T) (any, error) { return v, nil })
}

func (anyForm) Writer(v any, opts WriteOptions) Writer {
	switch t := v.(type) {
	case nil:
		return writeLiteral("null")
	case bool:
		return Bools.Writer(t, opts)
	case string:
		return WriteString(t)
	case int:
		return WriteInt(int64(t))
	case int64:
		return WriteInt(t)
	case uint64:
		return WriteUint(t)
	case float64:
		return WriteFloat(t)
	case *big.Int:
		return WriteBigInt(t)
	case []any:
		return WriteArray[any](Any, SliceItems(t), FilterAlways, opts)
	case map[string]any:
		return MapForm[any]{Shape: Any}.Writer(t, opts)
	case Writable:
		return t.Writer(opts)
	}
	return writeFailed{buildError(Position{}, errors.Newf("unsupported type %T", v))}
}

func (anyForm) Keep(v any, mode FilterMode) bool {
	switch t := v.(type) {
	case nil:
		return mode.Admits(true, true, false)
	case bool:
		return mode.Admits(false, !t, false)
	case string:
		return mode.Admits(false, t == "", false)
	case int:
		return mode.Admits(false, t == 0, false)
	case int64:
		return mode.Admits(false, t == 0, false)
	case uint64:
		return mode.Admits(false, t == 0, false)
	case float64:
		return mode.Admits(false, t == 0, false)
	case *big.Int:
		return BigInts.Keep(t, mode)
	case []any:
		return mode.Admits(t == nil, false, len(t) == 0)
	case map[string]any:
		return mode.Admits(t == nil, false, len(t) == 0)
	case Writable:
		return t.Keep(mode)
	}
	return true
}
