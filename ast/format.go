// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"io"
	"strings"

	"github.com/creachadair/jstep"
)

// A Formatter writes values as text.
type Formatter struct {
	// Options control the layout of the output.
	Options jstep.WriteOptions

	// Filter selects the array elements and object members written.
	Filter jstep.FilterMode
}

// Writer returns a writer for v.
func (f Formatter) Writer(v Value) jstep.Writer { return Shape{Filter: f.Filter}.Writer(v, f.Options) }

// Format writes the text of v to w.
func (f Formatter) Format(w io.Writer, v Value) error { return jstep.Encode(w, f.Writer(v)) }

// String returns the text of v. If v cannot be written, String returns the
// error text instead.
func (f Formatter) String(v Value) string {
	var buf strings.Builder
	if err := f.Format(&buf, v); err != nil {
		return "!ERROR: " + err.Error()
	}
	return buf.String()
}

func compact(v Value) string { return Formatter{}.String(v) }

// Shape is the jstep.Shape of a Value. Array elements and object members
// are filtered by Filter.
type Shape struct {
	Filter jstep.FilterMode
}

// Writer satisfies the jstep.Shape interface.
func (s Shape) Writer(v Value, opts jstep.WriteOptions) jstep.Writer {
	switch t := v.(type) {
	case nil, Null:
		return jstep.WriteIdent("null")
	case Bool:
		return jstep.Bools.Writer(bool(t), opts)
	case String:
		return jstep.WriteString(string(t))
	case Number:
		return jstep.WriteNumber(t.text)
	case Word:
		return jstep.WriteIdent(string(t))
	case Array:
		return jstep.WriteArray(s, jstep.SliceItems(t), s.Filter, opts)
	case Object:
		return jstep.WriteObject(s, s.members(t), opts)
	}
	panic("unknown value type")
}

func (s Shape) members(o Object) jstep.Items[jstep.Field[Value]] {
	i := 0
	return jstep.ItemsFunc[jstep.Field[Value]](func() (jstep.Field[Value], bool) {
		if i >= len(o) {
			return jstep.Field[Value]{}, false
		}
		m := o[i]
		i++
		return jstep.Field[Value]{Key: m.Key, Value: m.Value, Mode: s.Filter}, true
	})
}

// Keep satisfies the jstep.Shape interface.
func (Shape) Keep(v Value, mode jstep.FilterMode) bool {
	switch t := v.(type) {
	case nil, Null:
		return mode.Admits(true, true, false)
	case Bool:
		return mode.Admits(false, !bool(t), false)
	case String:
		return mode.Admits(false, t == "", false)
	case Number:
		return mode.Admits(false, t.IsZero(), false)
	case Array:
		return mode.Admits(false, false, len(t) == 0)
	case Object:
		return mode.Admits(false, false, len(t) == 0)
	}
	return true
}
