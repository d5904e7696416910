// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstep

type arrStep byte

const (
	arrOpen      arrStep = iota // "["
	arrFirst                    // "]" or the first element
	arrElem                     // inside an element
	arrAfterElem                // "," or "]"
	arrNext                     // an element after ","
)

// ParseArray returns a parser for an array literal whose elements are
// parsed by f.Element and collected by f.
func ParseArray[E, B, T any](f ArrayForm[E, B, T], opts ParseOptions) Parser[T] {
	return &arrayParser[E, B, T]{form: f, opts: opts}
}

type arrayParser[E, B, T any] struct {
	pending[T]
	form  ArrayForm[E, B, T]
	opts  ParseOptions
	step  arrStep
	start Position
	b     B
	elem  Parser[E]
}

func (p *arrayParser[E, B, T]) Feed(in Input) Parser[T] {
	for {
		if p.step == arrElem {
			p.elem = p.elem.Feed(in)
			if err := p.elem.Err(); err != nil {
				return Fail[T](err)
			} else if !p.elem.Done() {
				return p
			}
			p.b = p.form.Append(p.b, p.elem.Value())
			p.elem = nil
			p.step = arrAfterElem
			continue
		}

		if p.step != arrOpen {
			skipSpace(in)
		}
		if !in.Ready() {
			if stalled(in) {
				return p
			}
			return Fail[T](expected(in, p.want()))
		}

		switch ch := in.Head(); p.step {
		case arrOpen:
			if ch != '[' {
				return Fail[T](expected(in, `"["`))
			}
			p.start = in.Pos()
			p.b = p.form.Start()
			in.Step()
			p.step = arrFirst

		case arrFirst:
			if ch == ']' {
				in.Step()
				return p.finish()
			}
			p.elem = p.form.Element()
			p.step = arrElem

		case arrAfterElem:
			if ch == ']' {
				in.Step()
				return p.finish()
			} else if ch != ',' {
				return Fail[T](expected(in, `","`, `"]"`))
			}
			in.Step()
			p.step = arrNext

		case arrNext:
			p.elem = p.form.Element()
			p.step = arrElem
		}
	}
}

func (p *arrayParser[E, B, T]) want() string {
	switch p.step {
	case arrOpen:
		return `"["`
	case arrAfterElem:
		return `"," or "]"`
	default:
		return "value"
	}
}

func (p *arrayParser[E, B, T]) finish() Parser[T] {
	v, err := p.form.Finish(p.b)
	if err != nil {
		return Fail[T](buildError(p.start, err))
	}
	return Return(v)
}
