// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstep

import "strings"

type numStep byte

const (
	numSign      numStep = iota // optional leading "-"
	numFirst                    // first integer digit
	numZero                     // after a leading "0"
	numInt                      // more integer digits
	numFracFirst                // first digit after "."
	numFrac                     // more fraction digits
	numExpSign                  // optional exponent sign after "e"
	numExpFirst                 // first exponent digit
	numExp                      // more exponent digits
	numHexFirst                 // first digit after "0x"
	numHex                      // more hex digits
)

// maxHexDigits is the most hex digits that fit in a uint64.
const maxHexDigits = 16

// ParseNumber returns a parser for a numeric literal whose value is
// constructed by f. Exactly one method of f is called for each literal:
//
//	Literal form            | Method
//	----------------------- | ---------------
//	-?(0|[1-9][0-9]*)       | FromInteger, or FromBigInteger if it overflows int64
//	0x[0-9a-fA-F]+          | FromHexadecimal
//	with fraction/exponent  | FromDecimal
//
// A digit following a leading zero is an error, as is a sign on a
// hexadecimal literal.
func ParseNumber[T any](f NumberForm[T]) Parser[T] {
	return &numberParser[T]{form: f, sign: 1}
}

type numberParser[T any] struct {
	pending[T]
	form  NumberForm[T]
	step  numStep
	start Position

	sign int64           // 1 or -1
	acc  int64           // integer value, while it fits
	big  bool            // acc has overflowed
	text strings.Builder // literal text, except a hex prefix

	hex    uint64 // hex value
	digits int    // hex digit count
}

func (p *numberParser[T]) Feed(in Input) Parser[T] {
	for {
		if !in.Ready() {
			if stalled(in) {
				return p
			} else if err := in.Err(); err != nil {
				return Fail[T](err)
			}
			switch p.step {
			case numZero, numInt, numFrac, numExp, numHex:
				return p.finish()
			}
			return Fail[T](expected(in, p.want()))
		}

		ch := in.Head()
		switch p.step {
		case numSign:
			p.start = in.Pos()
			if ch != '-' && !isDigit(ch) {
				return Fail[T](expected(in, "number"))
			} else if ch == '-' {
				p.sign = -1
				p.text.WriteByte('-')
				in.Step()
			}
			p.step = numFirst

		case numFirst:
			if ch == '0' {
				p.step = numZero
			} else if isDigit(ch) {
				p.acc = p.sign * int64(ch-'0')
				p.step = numInt
			} else {
				return Fail[T](expected(in, "digit"))
			}
			p.text.WriteRune(ch)
			in.Step()

		case numZero:
			switch {
			case ch == 'x':
				if p.sign < 0 {
					return Fail[T](syntaxErrorf(p.start, "negative hexadecimal literal"))
				}
				in.Step()
				p.step = numHexFirst
			case isDigit(ch):
				return Fail[T](syntaxErrorf(in.Pos(), "extra leading zeroes"))
			case ch == '.', ch == 'e', ch == 'E':
				p.fracOrExp(in, ch)
			default:
				return p.finish()
			}

		case numInt:
			if isDigit(ch) {
				p.digit(ch)
				in.Step()
			} else if ch == '.' || ch == 'e' || ch == 'E' {
				p.fracOrExp(in, ch)
			} else {
				return p.finish()
			}

		case numFracFirst, numExpFirst:
			if !isDigit(ch) {
				return Fail[T](expected(in, "digit"))
			}
			p.text.WriteRune(ch)
			in.Step()
			p.step++ // to numFrac or numExp

		case numFrac:
			if isDigit(ch) {
				p.text.WriteRune(ch)
				in.Step()
			} else if ch == 'e' || ch == 'E' {
				p.fracOrExp(in, ch)
			} else {
				return p.finish()
			}

		case numExpSign:
			if ch == '+' || ch == '-' {
				p.step = numExpFirst
			} else if isDigit(ch) {
				p.step = numExp
			} else {
				return Fail[T](expected(in, "sign or digit"))
			}
			p.text.WriteRune(ch)
			in.Step()

		case numExp:
			if !isDigit(ch) {
				return p.finish()
			}
			p.text.WriteRune(ch)
			in.Step()

		case numHexFirst, numHex:
			if !isHexDigit(ch) {
				if p.step == numHexFirst {
					return Fail[T](expected(in, "hex digit"))
				}
				return p.finish()
			} else if p.digits == maxHexDigits {
				return Fail[T](syntaxErrorf(p.start, "hexadecimal literal too long"))
			}
			p.hex = p.hex<<4 | hexValue(ch)
			p.digits++
			in.Step()
			p.step = numHex
		}
	}
}

// fracOrExp consumes ch, which is "." or an exponent marker.
func (p *numberParser[T]) fracOrExp(in Input, ch rune) {
	p.text.WriteRune(ch)
	in.Step()
	if ch == '.' {
		p.step = numFracFirst
	} else {
		p.step = numExpSign
	}
}

// digit accumulates another integer digit, checking for overflow.
func (p *numberParser[T]) digit(ch rune) {
	p.text.WriteRune(ch)
	if p.big {
		return
	}
	m := p.acc * 10
	if m/10 != p.acc {
		p.big = true
		return
	}
	n := m + p.sign*int64(ch-'0')
	if (p.sign > 0 && n < m) || (p.sign < 0 && n > m) {
		p.big = true
		return
	}
	p.acc = n
}

func (p *numberParser[T]) want() string {
	switch p.step {
	case numSign:
		return "number"
	case numExpSign:
		return "sign or digit"
	case numHexFirst:
		return "hex digit"
	default:
		return "digit"
	}
}

func (p *numberParser[T]) finish() Parser[T] {
	var v T
	var err error
	switch p.step {
	case numZero:
		v, err = p.form.FromInteger(0)
	case numInt:
		if p.big {
			v, err = p.form.FromBigInteger(p.text.String())
		} else {
			v, err = p.form.FromInteger(p.acc)
		}
	case numHex:
		v, err = p.form.FromHexadecimal(p.hex, p.digits)
	default:
		v, err = p.form.FromDecimal(p.text.String())
	}
	if err != nil {
		return Fail[T](buildError(p.start, err))
	}
	return Return(v)
}
