// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstep

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/creachadair/jstep/internal/escape"
	"go4.org/mem"
)

// Quote encodes src as a string literal. The contents are escaped as by
// WriteString and double quotation marks are added.
func Quote(src string) string {
	return `"` + string(escape.Quote(mem.S(src))) + `"`
}

// Unquote decodes a string literal. Double quotation marks are removed, and
// escape sequences are replaced with their unescaped equivalents.
//
// Surrogate pairs written as \u escapes are combined; unpaired surrogates
// are replaced by the Unicode replacement rune. Unquote reports an error for
// an invalid or incomplete escape sequence.
func Unquote(src string) ([]byte, error) {
	if len(src) < 2 || !strings.HasPrefix(src, `"`) || !strings.HasSuffix(src, `"`) {
		return nil, errors.New("missing quotations")
	}
	return escape.Unquote(mem.S(src[1 : len(src)-1]))
}
