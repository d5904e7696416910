// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of string literals.
package escape

import (
	"unicode/utf16"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"go4.org/mem"
)

// Unquote decodes a byte slice containing the encoding of a string literal.
// The input must have the enclosing double quotation marks already removed.
//
// Escape sequences are replaced with their unescaped equivalents. A \u
// escape for a high surrogate followed by one for a low surrogate decodes as
// a single rune; any other surrogate decodes as the Unicode replacement rune.
// Unquote reports an error for an invalid or incomplete escape sequence.
func Unquote(src mem.RO) ([]byte, error) {
	dec := make([]byte, 0, src.Len())
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		return mem.Append(dec, src), nil
	}

	var hi rune // pending high surrogate
	flush := func() {
		if hi != 0 {
			dec = utf8.AppendRune(dec, utf8.RuneError)
			hi = 0
		}
	}
	for src.Len() != 0 {
		if i > 0 {
			flush()
			dec = mem.Append(dec, src.SliceTo(i))
		}
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return nil, errors.New("incomplete escape sequence")
		}
		r, n := mem.DecodeRune(src)
		src = src.SliceFrom(max(n, 1))

		if r == 'u' {
			if src.Len() < 4 {
				return nil, errors.New("incomplete Unicode escape")
			}
			v, err := parseHex(src.SliceTo(4))
			if err != nil {
				return nil, err
			}
			src = src.SliceFrom(4)
			switch c := rune(v); {
			case hi != 0 && utf16.IsSurrogate(c) && c >= 0xDC00:
				dec = utf8.AppendRune(dec, utf16.DecodeRune(hi, c))
				hi = 0
			case utf16.IsSurrogate(c) && c < 0xDC00:
				flush()
				hi = c
			default:
				flush()
				dec = utf8.AppendRune(dec, c) // an unpaired low surrogate encodes as U+FFFD
			}
		} else {
			flush()
			switch r {
			case '"', '\'', '/', '\\':
				dec = append(dec, byte(r))
			case 'b':
				dec = append(dec, '\b')
			case 'f':
				dec = append(dec, '\f')
			case 'n':
				dec = append(dec, '\n')
			case 'r':
				dec = append(dec, '\r')
			case 't':
				dec = append(dec, '\t')
			default:
				return nil, errors.Newf("invalid escape %q", r)
			}
		}

		i = mem.IndexByte(src, '\\')
		if i < 0 {
			if src.Len() != 0 {
				flush()
			}
			dec = mem.Append(dec, src)
			break
		}
	}
	flush()
	return dec, nil
}

func parseHex(data mem.RO) (int64, error) {
	var v int64
	for i := 0; i < data.Len(); i++ {
		b := data.At(i)
		v <<= 4
		if '0' <= b && b <= '9' {
			v += int64(b - '0')
		} else if 'a' <= b && b <= 'f' {
			v += int64(b - 'a' + 10)
		} else if 'A' <= b && b <= 'F' {
			v += int64(b - 'A' + 10)
		} else {
			return 0, errors.Newf("invalid hex digit %q", b)
		}
	}
	return v, nil
}
