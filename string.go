// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstep

type strStep byte

const (
	strOpen   strStep = iota // opening quote
	strBody                  // plain characters
	strEscape                // after "\"
	strHex                   // digits of a \u escape
)

// ParseString returns a parser for a quoted string literal, whose characters
// are accumulated by f. Each \uXXXX escape is appended as a single code unit;
// surrogate pairs are not combined by the parser.
func ParseString[B, T any](f StringForm[B, T]) Parser[T] {
	return &stringParser[B, T]{form: f}
}

type stringParser[B, T any] struct {
	pending[T]
	form  StringForm[B, T]
	step  strStep
	start Position
	b     B

	code rune // partial \u escape
	n    int  // hex digits read
}

var unescape = [...]rune{
	'"':  '"',
	'\'': '\'',
	'/':  '/',
	'\\': '\\',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
}

func (p *stringParser[B, T]) Feed(in Input) Parser[T] {
	for {
		if !in.Ready() {
			if stalled(in) {
				return p
			} else if err := in.Err(); err != nil {
				return Fail[T](err)
			} else if p.step == strOpen {
				return Fail[T](expected(in, "string"))
			}
			return Fail[T](truncated(p.start, "unclosed string"))
		}

		ch := in.Head()
		switch p.step {
		case strOpen:
			if ch != '"' {
				return Fail[T](expected(in, "string"))
			}
			p.start = in.Pos()
			p.b = p.form.Start()
			in.Step()
			p.step = strBody

		case strBody:
			if ch == '"' {
				in.Step()
				v, err := p.form.Finish(p.b)
				if err != nil {
					return Fail[T](buildError(p.start, err))
				}
				return Return(v)
			} else if ch == '\\' {
				p.step = strEscape
			} else if ch < ' ' {
				return Fail[T](syntaxErrorf(in.Pos(), "unescaped control %q in string", ch))
			} else {
				p.b = p.form.Append(p.b, ch)
			}
			in.Step()

		case strEscape:
			if ch == 'u' {
				p.code, p.n = 0, 0
				p.step = strHex
			} else if int(ch) < len(unescape) && unescape[ch] != 0 {
				p.b = p.form.Append(p.b, unescape[ch])
				p.step = strBody
			} else {
				return Fail[T](syntaxErrorf(in.Pos(), "invalid %q after escape", ch))
			}
			in.Step()

		case strHex:
			if !isHexDigit(ch) {
				return Fail[T](expected(in, "hex digit"))
			}
			p.code = p.code<<4 | rune(hexValue(ch))
			p.n++
			in.Step()
			if p.n == 4 {
				p.b = p.form.Append(p.b, p.code)
				p.step = strBody
			}
		}
	}
}

// ParseKey returns a parser for an object key, which may be either a quoted
// string or a bare identifier. Reserved words are accepted as keys.
func ParseKey() Parser[string] { return new(keyParser) }

type keyParser struct{ pending[string] }

func (k *keyParser) Feed(in Input) Parser[string] {
	if !in.Ready() {
		if stalled(in) {
			return k
		}
		return Fail[string](expected(in, "key"))
	}
	if ch := in.Head(); ch == '"' {
		return ParseString(Strings).Feed(in)
	} else if isIdentStart(ch) {
		return ParseIdent(Strings, ParseOptions{Exprs: true}).Feed(in)
	}
	return Fail[string](expected(in, "key"))
}
