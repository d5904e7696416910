// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jstep

// A NumberForm constructs values of type T from numeric literals. The parser
// calls exactly one method per literal.
type NumberForm[T any] interface {
	// FromInteger is called for a decimal integer that fits in an int64.
	FromInteger(v int64) (T, error)

	// FromHexadecimal is called for a literal 0x..., with the number of hex
	// digits written.
	FromHexadecimal(v uint64, digits int) (T, error)

	// FromBigInteger is called for a decimal integer that overflows an int64.
	// The text includes a leading "-" if the literal is negative.
	FromBigInteger(text string) (T, error)

	// FromDecimal is called for a literal with a fraction or exponent.
	FromDecimal(text string) (T, error)
}

// An IdentForm constructs values of type T from bare identifiers, including
// the constants true, false, and null.
type IdentForm[T any] interface {
	FromIdent(name string) (T, error)
}

// A StringForm constructs values of type T from string literals by way of a
// builder of type B.
type StringForm[B, T any] interface {
	Start() B
	Append(b B, c rune) B
	Finish(b B) (T, error)
}

// An ArrayForm constructs values of type T from arrays whose elements have
// type E, by way of a builder of type B.
type ArrayForm[E, B, T any] interface {
	Start() B
	Append(b B, elem E) B
	Finish(b B) (T, error)

	// Element returns a new parser for the next element.
	Element() Parser[E]
}

// An ObjectForm constructs values of type T from objects, by way of a
// builder of type B.
type ObjectForm[B, T any] interface {
	Start() B
	Finish(b B) (T, error)

	// Key returns a new parser for the next key. ParseKey is a suitable
	// default.
	Key() Parser[string]

	// Field returns a parser for the value of the member with the given key,
	// whose result is b updated with that value. To reject a key, return a
	// parser made by Fail.
	Field(b B, key string) Parser[B]
}

// A ValueForm constructs values of type T from any value literal.
type ValueForm[T any] interface {
	NumberForm[T]
	IdentForm[T]

	// StringParser returns a new parser for a string value.
	StringParser() Parser[T]

	// ArrayParser returns a new parser for an array value.
	ArrayParser(opts ParseOptions) Parser[T]

	// ObjectParser returns a new parser for an object value.
	ObjectParser(opts ParseOptions) Parser[T]
}
