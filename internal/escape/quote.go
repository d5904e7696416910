// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

var controlEsc = [...]string{
	'\b': `\b`,
	'\f': `\f`,
	'\n': `\n`,
	'\r': `\r`,
	'\t': `\t`,
}

const hexDigit = "0123456789ABCDEF"

// Rune returns the escape sequence for r inside a quoted string, or "" if r
// is written as itself. Only the double quote, the backslash, and control
// characters below U+0020 are escaped.
func Rune(r rune) string {
	switch {
	case r == '"':
		return `\"`
	case r == '\\':
		return `\\`
	case r >= ' ':
		return ""
	case int(r) < len(controlEsc) && controlEsc[r] != "":
		return controlEsc[r]
	}
	return `\u00` + string([]byte{hexDigit[r>>4], hexDigit[r&15]})
}

// Quote encodes a string to escape characters for inclusion in a string
// literal. The enclosing quotation marks are not added.
func Quote(src mem.RO) []byte {
	buf := make([]byte, 0, src.Len())
	for src.Len() != 0 {
		r, n := mem.DecodeRune(src)
		if n == 0 {
			n = 1
		}
		if r < utf8.RuneSelf {
			if esc := Rune(r); esc != "" {
				buf = append(buf, esc...)
			} else {
				buf = append(buf, byte(r))
			}
		} else {
			buf = utf8.AppendRune(buf, r)
		}
		src = src.SliceFrom(n)
	}
	return buf
}
