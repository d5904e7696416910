// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jstep

import (
	"strings"

	"github.com/creachadair/mds/value"
)

// ParseOptions control optional extensions of the input grammar.
// A zero value accepts standard JSON plus bare identifier keys.
type ParseOptions struct {
	// Exprs enables bare words other than true, false, and null as values.
	Exprs bool
}

// WithExprs returns a copy of o with Exprs set to ok.
func (o ParseOptions) WithExprs(ok bool) ParseOptions { o.Exprs = ok; return o }

// WriteOptions control the style of output. A zero value writes compact
// output with quoted keys.
type WriteOptions struct {
	// Whitespace adds a single space after each "," and ":".
	Whitespace bool

	// Indent, if present, writes one item per line with nested items
	// indented by the given string for each level.
	Indent value.Maybe[string]

	// LineSep, if present, is the line separator used between items.
	// If Indent is present and LineSep is not, "\n" is used.
	LineSep value.Maybe[string]

	// IdentKeys writes object keys that are valid identifiers, other than
	// reserved words, without quotation marks.
	IdentKeys bool

	depth int // nesting level of the current aggregate
}

var (
	// Compact is the default style: no whitespace, quoted keys.
	Compact = WriteOptions{}

	// Spaced adds a space after each separator.
	Spaced = WriteOptions{Whitespace: true}

	// Pretty writes one item per line indented by two spaces.
	Pretty = WriteOptions{Whitespace: true, Indent: value.Just("  ")}
)

// WithWhitespace returns a copy of o with Whitespace set to ok.
func (o WriteOptions) WithWhitespace(ok bool) WriteOptions { o.Whitespace = ok; return o }

// WithIndent returns a copy of o indenting nested items by s.
func (o WriteOptions) WithIndent(s string) WriteOptions { o.Indent = value.Just(s); return o }

// WithoutIndent returns a copy of o with no indentation.
func (o WriteOptions) WithoutIndent() WriteOptions { o.Indent = value.Absent[string](); return o }

// WithLineSep returns a copy of o separating items with sep.
func (o WriteOptions) WithLineSep(sep string) WriteOptions { o.LineSep = value.Just(sep); return o }

// WithIdentKeys returns a copy of o with IdentKeys set to ok.
func (o WriteOptions) WithIdentKeys(ok bool) WriteOptions { o.IdentKeys = ok; return o }

// nested returns a copy of o for the items of an aggregate.
func (o WriteOptions) nested() WriteOptions { o.depth++; return o }

// multiline reports whether items are written one per line.
func (o WriteOptions) multiline() bool { return o.Indent.Present() || o.LineSep.Present() }

// lineBreak returns the text that begins a new line at the given depth.
func (o WriteOptions) lineBreak(depth int) string {
	return o.LineSep.Or("\n").Get() + strings.Repeat(o.Indent.Get(), depth)
}

// itemSep returns the text between two items of an aggregate.
func (o WriteOptions) itemSep() string {
	if o.multiline() {
		return "," + o.lineBreak(o.depth+1)
	} else if o.Whitespace {
		return ", "
	}
	return ","
}

// colon returns the text between a key and its value.
func (o WriteOptions) colon() string {
	if o.Whitespace {
		return ": "
	}
	return ":"
}
