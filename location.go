// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstep

import "fmt"

// A Position describes a location in source text.
type Position struct {
	Offset int // byte offset, 0-based
	Line   int // line number, 1-based
	Column int // byte offset of column in line, 0-based
}

// String renders the position as "line:column".
func (p Position) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Column) }

// advance returns the position following the rune r of n bytes.
func (p Position) advance(r rune, n int) Position {
	p.Offset += n
	if r == '\n' {
		p.Line++
		p.Column = 0
	} else {
		p.Column += n
	}
	return p
}

var startPos = Position{Line: 1}
