// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jstep

import (
	"bytes"
	"math"
	"math/big"
	"strconv"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/creachadair/jstep/internal/escape"
)

// WriteIdent returns a writer for the bare identifier name. It fails if name
// is not a valid identifier.
func WriteIdent(name string) Writer {
	if !IsIdent(name) {
		return writeFailed{buildError(Position{}, errors.Newf("invalid identifier %q", name))}
	}
	return writeLiteral(name)
}

// WriteNumber returns a writer for a pre-rendered numeric literal. The text
// is written as given.
func WriteNumber(text string) Writer { return writeLiteral(text) }

// WriteInt returns a writer for the decimal text of v.
func WriteInt(v int64) Writer { return writeLiteral(strconv.FormatInt(v, 10)) }

// WriteUint returns a writer for the decimal text of v.
func WriteUint(v uint64) Writer { return writeLiteral(strconv.FormatUint(v, 10)) }

// WriteBigInt returns a writer for the decimal text of v. A nil v is written
// as null.
func WriteBigInt(v *big.Int) Writer {
	if v == nil {
		return writeLiteral("null")
	}
	return writeLiteral(v.String())
}

// WriteFloat returns a writer for the shortest decimal text that parses back
// to v. It fails with ErrNotFinite if v is infinite or NaN.
func WriteFloat(v float64) Writer {
	text, err := FormatFloat(v)
	if err != nil {
		return writeFailed{buildError(Position{}, err)}
	}
	return writeLiteral(text)
}

// FormatFloat renders v as the shortest decimal text that parses back to v.
// Exponential notation is used for very small and very large magnitudes.
// Integral values are written with a trailing ".0" so that they read back
// as decimals, including the sign of negative zero.
func FormatFloat(v float64) (string, error) {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return "", errors.Wrapf(ErrNotFinite, "value %v", v)
	}
	fmt := byte('f')
	if abs := math.Abs(v); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		fmt = 'e'
	}
	buf := strconv.AppendFloat(nil, v, fmt, -1, 64)
	if fmt == 'e' {
		// Clean up e-09 to e-9.
		if n := len(buf); n >= 4 && buf[n-4] == 'e' && buf[n-3] == '-' && buf[n-2] == '0' {
			buf[n-2] = buf[n-1]
			buf = buf[:n-1]
		}
	} else if !bytes.ContainsAny(buf, ".eE") {
		buf = append(buf, ".0"...)
	}
	return string(buf), nil
}

// WriteString returns a writer for s as a quoted string literal. Double
// quotes, backslashes, and control characters are escaped; everything else
// is written as itself. Invalid UTF-8 is written as the replacement rune.
func WriteString(s string) Writer {
	return &stringWriter{s: s, pendingText: pendingText{text: `"`}}
}

type stringWriter struct {
	writing
	pendingText
	s string
	i int // offset in s of the next rune; len(s)+1 after the close quote
}

func (w *stringWriter) Emit(out Output) Writer {
	for {
		if ok, err := w.flush(out); err != nil {
			return writeFailed{err}
		} else if !ok {
			return w
		}

		if w.i > len(w.s) {
			return wroteAll{}
		} else if w.i == len(w.s) {
			w.set(`"`)
			w.i++
			continue
		}

		r, n := utf8.DecodeRuneInString(w.s[w.i:])
		if esc := escape.Rune(r); esc != "" {
			w.set(esc)
		} else if !out.Ready() {
			if err := outErr(out); err != nil {
				return writeFailed{err}
			}
			return w
		} else {
			out.Put(r)
		}
		w.i += n
	}
}

// WriteKey returns a writer for an object key. If opts.IdentKeys is set and
// key is an identifier other than a reserved word, it is written bare;
// otherwise it is quoted.
func WriteKey(key string, opts WriteOptions) Writer {
	if opts.IdentKeys && IsIdent(key) && !IsReserved(key) {
		return writeLiteral(key)
	}
	return WriteString(key)
}
