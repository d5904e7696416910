// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"io"

	"github.com/creachadair/jstep"
)

// Form is a jstep.ValueForm that constructs a Value from any value literal.
// Repeated object keys keep the position of their first occurrence and the
// value of their last.
var Form form

type form struct{}

func (form) FromInteger(v int64) (Value, error) { return Int(v), nil }

func (form) FromHexadecimal(v uint64, digits int) (Value, error) { return HexNumber(v, digits), nil }

func (form) FromBigInteger(text string) (Value, error) {
	return Number{kind: BigInteger, text: text}, nil
}

func (form) FromDecimal(text string) (Value, error) {
	return Number{kind: Decimal, text: text}, nil
}

func (form) FromIdent(name string) (Value, error) {
	switch name {
	case "true", "false":
		return Bool(name == "true"), nil
	case "null":
		return Null{}, nil
	}
	return Word(name), nil
}

func (form) StringParser() jstep.Parser[Value] {
	return jstep.Apply(jstep.ParseString(jstep.Strings), func(s string) (Value, error) {
		return String(s), nil
	})
}

func (form) ArrayParser(opts jstep.ParseOptions) jstep.Parser[Value] {
	return jstep.ParseArray(arrayForm{opts}, opts)
}

func (form) ObjectParser(opts jstep.ParseOptions) jstep.Parser[Value] {
	return jstep.ParseObject(objectForm{opts}, opts)
}

type arrayForm struct{ opts jstep.ParseOptions }

func (arrayForm) Start() Array                     { return Array{} }
func (arrayForm) Append(b Array, elem Value) Array { return append(b, elem) }
func (arrayForm) Finish(b Array) (Value, error)    { return b, nil }
func (a arrayForm) Element() jstep.Parser[Value]   { return jstep.ParseValue(Form, a.opts) }

type objectForm struct{ opts jstep.ParseOptions }

// objectBuilder accumulates the members of an object, indexed by key.
type objectBuilder struct {
	obj   Object
	index map[string]int
}

func (objectForm) Start() *objectBuilder {
	return &objectBuilder{obj: Object{}, index: make(map[string]int)}
}

func (objectForm) Finish(b *objectBuilder) (Value, error) { return b.obj, nil }

func (objectForm) Key() jstep.Parser[string] { return jstep.ParseKey() }

func (o objectForm) Field(b *objectBuilder, key string) jstep.Parser[*objectBuilder] {
	return jstep.Apply(jstep.ParseValue(Form, o.opts), func(v Value) (*objectBuilder, error) {
		if i, ok := b.index[key]; ok {
			b.obj[i].Value = v
		} else {
			b.index[key] = len(b.obj)
			b.obj = append(b.obj, Field(key, v))
		}
		return b, nil
	})
}

// ParseWith returns a parser for a single value with the given options.
// Leading and trailing whitespace are not consumed; use jstep.ParseDocument
// for a complete document.
func ParseWith(opts jstep.ParseOptions) jstep.Parser[Value] { return jstep.ParseValue(Form, opts) }

// Parse parses a complete document from r and returns its value.
func Parse(r io.Reader) (Value, error) {
	return jstep.Decode(r, ParseWith(jstep.ParseOptions{}), 0)
}

// ParseString parses a complete document from s and returns its value.
func ParseString(s string) (Value, error) {
	return jstep.ParseText(ParseWith(jstep.ParseOptions{}), s)
}
