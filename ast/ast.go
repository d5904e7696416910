// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ast defines a generic value model for the jstep grammar, a form
// that constructs values from source text, and a shape that writes them.
package ast

import (
	"cmp"
	"fmt"
	"math"
	"math/big"
	"slices"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/creachadair/jstep"
	"github.com/samber/lo"
)

// A Value is an arbitrary value.
type Value interface {
	// JSON returns the compact text encoding of the value.
	JSON() string

	isValue()
}

// An Object is a collection of key-value members.
type Object []*Member

// Find returns the member of o with the given key, or nil. If o has more
// than one member with that key, Find returns the last, as with repeated
// keys in parsed text.
func (o Object) Find(key string) *Member {
	for i := len(o) - 1; i >= 0; i-- {
		if o[i].Key == key {
			return o[i]
		}
	}
	return nil
}

// Keys returns the keys of o in order.
func (o Object) Keys() []string {
	return lo.Map(o, func(m *Member, _ int) string { return m.Key })
}

// Len reports the number of members in o.
func (o Object) Len() int { return len(o) }

// Sort sorts the members of o by key.
func (o Object) Sort() {
	slices.SortStableFunc(o, func(a, b *Member) int { return cmp.Compare(a.Key, b.Key) })
}

// JSON satisfies the Value interface.
func (o Object) JSON() string { return compact(o) }

func (Object) isValue() {}

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

// Field constructs an object member with the given key and value.
func Field(key string, value Value) *Member { return &Member{Key: key, Value: value} }

// An Array is a sequence of values.
type Array []Value

// Len reports the number of elements in a.
func (a Array) Len() int { return len(a) }

// JSON satisfies the Value interface.
func (a Array) JSON() string { return compact(a) }

func (Array) isValue() {}

// A String is a string value.
type String string

// Len reports the length of s in bytes.
func (s String) Len() int { return len(s) }

// JSON satisfies the Value interface.
func (s String) JSON() string { return jstep.Quote(string(s)) }

func (String) isValue() {}

// A Bool is a Boolean constant, true or false.
type Bool bool

// JSON satisfies the Value interface.
func (b Bool) JSON() string { return strconv.FormatBool(bool(b)) }

func (Bool) isValue() {}

// Null represents the null constant.
type Null struct{}

// JSON satisfies the Value interface.
func (Null) JSON() string { return "null" }

func (Null) isValue() {}

// A Word is a bare identifier other than true, false, and null. Words occur
// only when parsing with expressions enabled.
type Word string

// JSON satisfies the Value interface.
func (w Word) JSON() string { return string(w) }

func (Word) isValue() {}

// Kind classifies the literal form of a Number.
type Kind byte

const (
	Integer    Kind = iota + 1 // decimal integer within int64
	Hex                        // hexadecimal integer
	BigInteger                 // decimal integer beyond int64
	Decimal                    // fraction or exponent
)

func (k Kind) String() string {
	switch k {
	case Integer:
		return "integer"
	case Hex:
		return "hex"
	case BigInteger:
		return "big integer"
	case Decimal:
		return "decimal"
	}
	return "Kind(invalid)"
}

// A Number is a numeric value. It retains the literal form it was parsed
// from, which is also the form it is written in.
type Number struct {
	kind Kind
	text string
	i    int64  // Integer
	u    uint64 // Hex
}

// Int constructs an Integer number with value v.
func Int(v int64) Number { return Number{kind: Integer, i: v, text: strconv.FormatInt(v, 10)} }

// Float constructs a Decimal number with value v. It panics if v is not
// finite.
func Float(v float64) Number {
	text, err := jstep.FormatFloat(v)
	if err != nil {
		panic(err)
	}
	return Number{kind: Decimal, text: text}
}

// HexNumber constructs a Hex number with value v written with the given
// number of digits.
func HexNumber(v uint64, digits int) Number {
	return Number{kind: Hex, u: v, text: fmt.Sprintf("0x%0*X", max(digits, 1), v)}
}

// Kind reports the literal form of n.
func (n Number) Kind() Kind { return n.kind }

// Text returns the literal text of n.
func (n Number) Text() string { return n.text }

// JSON satisfies the Value interface.
func (n Number) JSON() string { return n.text }

func (Number) isValue() {}

// IsZero reports whether the value of n is zero.
func (n Number) IsZero() bool {
	switch n.kind {
	case Integer:
		return n.i == 0
	case Hex:
		return n.u == 0
	case Decimal:
		f, err := n.Float64()
		return err == nil && f == 0
	}
	return false
}

// Int64 returns the value of n as an int64. It reports an error if n is not
// an integer or is out of range.
func (n Number) Int64() (int64, error) {
	switch n.kind {
	case Integer:
		return n.i, nil
	case Hex:
		if n.u > math.MaxInt64 {
			return 0, errors.Newf("value %s out of range for int64", n.text)
		}
		return int64(n.u), nil
	case BigInteger:
		return 0, errors.Newf("value %s out of range for int64", n.text)
	}
	return 0, errors.Newf("value %s is not an integer", n.text)
}

// Float64 returns the value of n as a float64. Large integers may lose
// precision.
func (n Number) Float64() (float64, error) {
	switch n.kind {
	case Integer:
		return float64(n.i), nil
	case Hex:
		return float64(n.u), nil
	}
	v, err := strconv.ParseFloat(n.text, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "value %s", n.text)
	}
	return v, nil
}

// BigInt returns the value of n as a *big.Int. It reports an error if n is
// not an integer.
func (n Number) BigInt() (*big.Int, error) {
	switch n.kind {
	case Integer:
		return big.NewInt(n.i), nil
	case Hex:
		return new(big.Int).SetUint64(n.u), nil
	case BigInteger:
		v, ok := new(big.Int).SetString(n.text, 10)
		if ok {
			return v, nil
		}
	}
	return nil, errors.Newf("value %s is not an integer", n.text)
}

// ToValue converts a plain Go value into a Value. It accepts nil, Booleans,
// strings, integers, floats, *big.Int, slices of any or Value, maps from
// strings to any or Value, and values that are already a Value. Map keys are
// sorted. ToValue panics for any other type.
func ToValue(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null{}
	case Value:
		return t
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case int:
		return Int(int64(t))
	case int32:
		return Int(int64(t))
	case int64:
		return Int(t)
	case uint64:
		if t <= math.MaxInt64 {
			return Int(int64(t))
		}
		return Number{kind: BigInteger, text: strconv.FormatUint(t, 10)}
	case float64:
		return Float(t)
	case *big.Int:
		if t.IsInt64() {
			return Int(t.Int64())
		}
		return Number{kind: BigInteger, text: t.String()}
	case []Value:
		return Array(t)
	case []any:
		return Array(lo.Map(t, func(e any, _ int) Value { return ToValue(e) }))
	case map[string]Value:
		return sortedObject(t, func(v Value) Value { return v })
	case map[string]any:
		return sortedObject(t, ToValue)
	}
	panic(fmt.Sprintf("unsupported type %T", v))
}

func sortedObject[V any](m map[string]V, conv func(V) Value) Object {
	keys := lo.Keys(m)
	slices.Sort(keys)
	return Object(lo.Map(keys, func(k string, _ int) *Member { return Field(k, conv(m[k])) }))
}
