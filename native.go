// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jstep

import (
	"cmp"
	"math"
	"math/big"
	"slices"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"golang.org/x/exp/constraints"
)

// A TextBuilder accumulates the characters of a string literal. A high
// surrogate followed by a low surrogate is combined into a single rune; any
// other surrogate is replaced by U+FFFD.
type TextBuilder struct {
	buf strings.Builder
	hi  rune // pending high surrogate, or 0
}

// Append adds c to the text.
func (t *TextBuilder) Append(c rune) {
	if t.hi != 0 {
		if c >= 0xDC00 && c <= 0xDFFF {
			t.buf.WriteRune(utf16.DecodeRune(t.hi, c))
			t.hi = 0
			return
		}
		t.buf.WriteRune(utf8.RuneError)
		t.hi = 0
	}
	if c >= 0xD800 && c < 0xDC00 {
		t.hi = c
		return
	}
	t.buf.WriteRune(c) // a lone low surrogate is written as U+FFFD
}

// String returns the accumulated text.
func (t *TextBuilder) String() string {
	if t.hi != 0 {
		t.buf.WriteRune(utf8.RuneError)
		t.hi = 0
	}
	return t.buf.String()
}

// Strings is a form and shape for string values. As an IdentForm it accepts
// any identifier as its own name, which makes it suitable for object keys.
var Strings textForm

type textForm struct{}

func (textForm) Start() *TextBuilder                        { return new(TextBuilder) }
func (textForm) Append(b *TextBuilder, c rune) *TextBuilder { b.Append(c); return b }
func (textForm) Finish(b *TextBuilder) (string, error)      { return b.String(), nil }
func (textForm) FromIdent(name string) (string, error)      { return name, nil }
func (textForm) Writer(v string, _ WriteOptions) Writer     { return WriteString(v) }
func (textForm) Keep(v string, mode FilterMode) bool        { return mode.Admits(false, v == "", false) }
func (textForm) Parser() Parser[string]                     { return ParseString(Strings) }

// Int is a form and shape for signed integers of type T. It rejects values
// that do not fit in T, and literals with a fraction or exponent.
type Int[T constraints.Signed] struct{}

func (Int[T]) FromInteger(v int64) (T, error) {
	if t := T(v); int64(t) == v {
		return t, nil
	}
	var zero T
	return zero, errors.Newf("integer %d out of range for %T", v, zero)
}

func (f Int[T]) FromHexadecimal(v uint64, _ int) (T, error) {
	if v > math.MaxInt64 {
		var zero T
		return zero, errors.Newf("integer %#x out of range for %T", v, zero)
	}
	return f.FromInteger(int64(v))
}

func (Int[T]) FromBigInteger(text string) (T, error) {
	var zero T
	return zero, errors.Newf("integer %s out of range for %T", text, zero)
}

func (Int[T]) FromDecimal(text string) (T, error) {
	var zero T
	return zero, errors.Newf("value %s is not an integer", text)
}

func (Int[T]) Writer(v T, _ WriteOptions) Writer { return WriteInt(int64(v)) }
func (Int[T]) Keep(v T, mode FilterMode) bool    { return mode.Admits(false, v == 0, false) }
func (f Int[T]) Parser() Parser[T]               { return ParseNumber[T](f) }

// Uint64s is a form and shape for uint64 values.
var Uint64s uintForm

type uintForm struct{}

func (uintForm) FromInteger(v int64) (uint64, error) {
	if v < 0 {
		return 0, errors.Newf("integer %d out of range for uint64", v)
	}
	return uint64(v), nil
}

func (uintForm) FromHexadecimal(v uint64, _ int) (uint64, error) { return v, nil }

func (uintForm) FromBigInteger(text string) (uint64, error) {
	v, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return 0, errors.Newf("integer %s out of range for uint64", text)
	}
	return v, nil
}

func (uintForm) FromDecimal(text string) (uint64, error) {
	return 0, errors.Newf("value %s is not an integer", text)
}

func (uintForm) Writer(v uint64, _ WriteOptions) Writer { return WriteUint(v) }
func (uintForm) Keep(v uint64, mode FilterMode) bool    { return mode.Admits(false, v == 0, false) }
func (uintForm) Parser() Parser[uint64]                 { return ParseNumber(Uint64s) }

// Float64s is a form and shape for float64 values.
//
// A hexadecimal literal is the bit pattern of a float: up to 8 digits are
// read as an IEEE 754 binary32 value and converted, more are read as a
// binary64 value. Writing a float always produces decimal text.
var Float64s floatForm

type floatForm struct{}

func (floatForm) FromInteger(v int64) (float64, error) { return float64(v), nil }

func (floatForm) FromHexadecimal(v uint64, digits int) (float64, error) {
	if digits <= 8 {
		return float64(math.Float32frombits(uint32(v))), nil
	}
	return math.Float64frombits(v), nil
}

func (floatForm) FromBigInteger(text string) (float64, error) { return parseFloat(text) }
func (floatForm) FromDecimal(text string) (float64, error)    { return parseFloat(text) }

func (floatForm) Writer(v float64, _ WriteOptions) Writer { return WriteFloat(v) }
func (floatForm) Keep(v float64, mode FilterMode) bool    { return mode.Admits(false, v == 0, false) }
func (floatForm) Parser() Parser[float64]                 { return ParseNumber(Float64s) }

func parseFloat(text string) (float64, error) {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrNotFinite, "value %s", text)
	}
	return v, nil
}

// BigInts is a form and shape for arbitrary-precision integers. A nil value
// is written as null.
var BigInts bigForm

type bigForm struct{}

func (bigForm) FromInteger(v int64) (*big.Int, error) { return big.NewInt(v), nil }

func (bigForm) FromHexadecimal(v uint64, _ int) (*big.Int, error) {
	return new(big.Int).SetUint64(v), nil
}

func (bigForm) FromBigInteger(text string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return nil, errors.Newf("invalid integer %q", text)
	}
	return v, nil
}

func (bigForm) FromDecimal(text string) (*big.Int, error) {
	return nil, errors.Newf("value %s is not an integer", text)
}

func (bigForm) Writer(v *big.Int, _ WriteOptions) Writer { return WriteBigInt(v) }
func (bigForm) Parser() Parser[*big.Int]                 { return ParseNumber(BigInts) }

func (bigForm) Keep(v *big.Int, mode FilterMode) bool {
	return mode.Admits(v == nil, v == nil || v.Sign() == 0, false)
}

// Bools is a form and shape for the constants true and false.
var Bools boolForm

type boolForm struct{}

func (boolForm) FromIdent(name string) (bool, error) {
	switch name {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, errors.Newf("%q is not a Boolean", name)
}

func (boolForm) Writer(v bool, _ WriteOptions) Writer {
	if v {
		return writeLiteral("true")
	}
	return writeLiteral("false")
}

func (boolForm) Keep(v bool, mode FilterMode) bool { return mode.Admits(false, !v, false) }
func (boolForm) Parser() Parser[bool]              { return ParseIdent(Bools, ParseOptions{}) }

// SliceForm is an array form and shape for slices of E.
type SliceForm[E any] struct {
	Elem  func() Parser[E] // parser for each element
	Shape Shape[E]         // shape for writing elements
	Mode  FilterMode       // filter for writing elements
}

// Slice returns a SliceForm that parses elements with elem and writes them
// with shape.
func Slice[E any](elem func() Parser[E], shape Shape[E]) SliceForm[E] {
	return SliceForm[E]{Elem: elem, Shape: shape}
}

func (SliceForm[E]) Start() []E                             { return []E{} }
func (SliceForm[E]) Append(b []E, elem E) []E               { return append(b, elem) }
func (SliceForm[E]) Finish(b []E) ([]E, error)              { return b, nil }
func (s SliceForm[E]) Element() Parser[E]                   { return s.Elem() }
func (s SliceForm[E]) Parser(opts ParseOptions) Parser[[]E] { return ParseArray(s, opts) }

func (s SliceForm[E]) Writer(v []E, opts WriteOptions) Writer {
	if v == nil {
		return writeLiteral("null")
	}
	return WriteArray(s.Shape, SliceItems(v), s.Mode, opts)
}

func (SliceForm[E]) Keep(v []E, mode FilterMode) bool {
	return mode.Admits(v == nil, false, len(v) == 0)
}

// FixedForm is an array form for arrays of exactly N elements, collected in
// a slice of length N.
type FixedForm[E any] struct {
	N    int
	Elem func() Parser[E]
}

// Array returns a FixedForm for arrays of n elements parsed by elem.
func Array[E any](n int, elem func() Parser[E]) FixedForm[E] {
	return FixedForm[E]{N: n, Elem: elem}
}

func (f FixedForm[E]) Start() []E             { return make([]E, 0, f.N) }
func (FixedForm[E]) Append(b []E, elem E) []E { return append(b, elem) }
func (f FixedForm[E]) Element() Parser[E]     { return f.Elem() }

func (f FixedForm[E]) Finish(b []E) ([]E, error) {
	if len(b) != f.N {
		return nil, errors.Newf("got %d elements, want %d", len(b), f.N)
	}
	return b, nil
}

// MapForm is an object form and shape for maps from string keys to V. When a
// key is repeated, the last value wins. Maps are written in key order.
type MapForm[V any] struct {
	Value func() Parser[V] // parser for each member value
	Shape Shape[V]         // shape for writing member values
	Mode  FilterMode       // filter for writing member values
}

// Map returns a MapForm that parses values with value and writes them with
// shape.
func Map[V any](value func() Parser[V], shape Shape[V]) MapForm[V] {
	return MapForm[V]{Value: value, Shape: shape}
}

func (MapForm[V]) Start() map[string]V                             { return make(map[string]V) }
func (MapForm[V]) Finish(b map[string]V) (map[string]V, error)     { return b, nil }
func (MapForm[V]) Key() Parser[string]                             { return ParseKey() }
func (m MapForm[V]) Parser(opts ParseOptions) Parser[map[string]V] { return ParseObject(m, opts) }

func (m MapForm[V]) Field(b map[string]V, key string) Parser[map[string]V] {
	return Apply(m.Value(), func(v V) (map[string]V, error) {
		b[key] = v
		return b, nil
	})
}

func (m MapForm[V]) Writer(v map[string]V, opts WriteOptions) Writer {
	if v == nil {
		return writeLiteral("null")
	}
	fields := make([]Field[V], 0, len(v))
	for key, val := range v {
		fields = append(fields, Field[V]{Key: key, Value: val, Mode: m.Mode})
	}
	slices.SortFunc(fields, func(a, b Field[V]) int { return cmp.Compare(a.Key, b.Key) })
	return WriteObject(m.Shape, SliceItems(fields), opts)
}

func (MapForm[V]) Keep(v map[string]V, mode FilterMode) bool {
	return mode.Admits(v == nil, false, len(v) == 0)
}

// Record is an object form for a record type T, typically a pointer to a
// struct, whose members have different types. Each key is parsed by the
// matching entry of Fields; other keys are rejected with ErrUnsupportedKey.
type Record[T any] struct {
	New    func() T
	Fields map[string]func(T) Parser[T]
}

func (r Record[T]) Start() T                           { return r.New() }
func (Record[T]) Finish(b T) (T, error)                { return b, nil }
func (Record[T]) Key() Parser[string]                  { return ParseKey() }
func (r Record[T]) Parser(opts ParseOptions) Parser[T] { return ParseObject(r, opts) }

func (r Record[T]) Field(b T, key string) Parser[T] {
	f, ok := r.Fields[key]
	if !ok {
		return Fail[T](errors.Wrapf(ErrUnsupportedKey, "key %q", key))
	}
	return f(b)
}

// Member returns a field parser for a Record that parses a value with p and
// stores it into the record with set.
func Member[T, V any](p func() Parser[V], set func(T, V)) func(T) Parser[T] {
	return func(rec T) Parser[T] {
		return Apply(p(), func(v V) (T, error) {
			set(rec, v)
			return rec, nil
		})
	}
}
