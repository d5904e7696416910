// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jstep implements an incremental parser and writer for JSON text,
// extended with bare identifier keys, hexadecimal integers, and optionally
// bare words as values.
//
// # Parsing
//
// A Parser is a continuation: a value that is pending, done, or failed.
// Feeding an Input to a pending parser consumes as much of the input as is
// available and returns the next continuation. When the input runs out
// before the value is complete, the parser suspends and resumes where it
// left off the next time it is fed:
//
//	var buf jstep.Buffer
//	p := jstep.ParseDocument(jstep.ParseValue(jstep.Any, jstep.ParseOptions{}))
//	for chunk := range chunks {
//	   buf.Write(chunk)
//	   p = p.Feed(&buf)
//	}
//	buf.Close()
//	v, err := jstep.Finish(p, &buf)
//
// The result of splitting the input into chunks does not depend on where the
// splits fall. Syntax errors have concrete type *SyntaxError and carry the
// position of the offending character. An error reported by the input itself
// is passed through unchanged.
//
// # Forms
//
// Parsers do not construct values themselves. Each production is given a
// form that builds values of the caller's choosing:
//
//	Form        | Production                     | Methods
//	----------- | ------------------------------ | --------------------------------
//	NumberForm  | 12, -1.5e3, 0x1F               | FromInteger, FromDecimal, ...
//	IdentForm   | true, false, null, words       | FromIdent
//	StringForm  | "text"                         | Start, Append, Finish
//	ArrayForm   | [ ... ]                        | Start, Append, Finish, Element
//	ObjectForm  | { key: ... }                   | Start, Key, Field, Finish
//	ValueForm   | any value                      | all of the above
//
// The package provides forms for native Go types (Strings, Int, Uint64s,
// Float64s, BigInts, Bools, Slice, Array, Map, Record) and for the dynamic
// type any (Any). Package ast provides a form for a generic syntax tree.
//
// An error reported by a form is returned as a *BuildError carrying the
// position where the rejected value began.
//
// # Writing
//
// A Writer is the output counterpart of a Parser. Emitting a pending writer
// to an Output writes as much text as the output accepts, and returns the
// next continuation. A Shape describes how to write values of a type, and
// most forms are also shapes:
//
//	text, err := jstep.Format(jstep.Map(nil, jstep.Int[int]{}), m, jstep.Pretty)
//
// WriteOptions select the layout of the output. Arrays and objects may omit
// items according to a FilterMode.
//
// # Streams
//
// A Decoder is an io.Writer that feeds the bytes written to it to a parser,
// and an Encoder is an io.Reader that yields the output of a writer. Decode
// and Encode connect these to an io.Reader and io.Writer respectively.
package jstep
