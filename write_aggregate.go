// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jstep

type aggStep byte

const (
	aggOpen  aggStep = iota // open bracket
	aggNext                 // select the next item to write
	aggKey                  // object key
	aggValue                // item value
	aggClose                // close bracket
)

// frame tracks the layout of the items of one array or object.
type frame struct {
	writing
	pendingText
	opts WriteOptions
	step aggStep
	n    int    // items started
	sub  Writer // the key or value in progress
}

// sep returns the text preceding the next item.
func (f *frame) sep() string {
	if f.n == 0 {
		if f.opts.multiline() {
			return f.opts.lineBreak(f.opts.depth + 1)
		}
		return ""
	}
	return f.opts.itemSep()
}

// closer returns the text that ends the aggregate, given its bracket.
func (f *frame) closer(bracket string) string {
	if f.n != 0 && f.opts.multiline() {
		return f.opts.lineBreak(f.opts.depth) + bracket
	}
	return bracket
}

// emitSub advances the current sub-writer. It reports whether the sub-writer
// finished, or the error that ended it.
func (f *frame) emitSub(out Output) (bool, error) {
	f.sub = f.sub.Emit(out)
	if err := f.sub.Err(); err != nil {
		return false, err
	} else if !f.sub.Done() {
		return false, nil
	}
	f.sub = nil
	return true, nil
}

// WriteArray returns a writer for an array whose elements are drawn from
// items and written with shape. Elements that shape does not keep under mode
// are skipped.
func WriteArray[E any](shape Shape[E], items Items[E], mode FilterMode, opts WriteOptions) Writer {
	return &arrayWriter[E]{frame: frame{opts: opts}, shape: shape, items: items, mode: mode}
}

type arrayWriter[E any] struct {
	frame
	shape Shape[E]
	items Items[E]
	mode  FilterMode
}

func (w *arrayWriter[E]) Emit(out Output) Writer {
	for {
		if ok, err := w.flush(out); err != nil {
			return writeFailed{err}
		} else if !ok {
			return w
		}

		switch w.step {
		case aggOpen:
			w.set("[")
			w.step = aggNext

		case aggNext:
			v, ok := w.nextKept()
			if !ok {
				w.set(w.closer("]"))
				w.step = aggClose
				continue
			}
			w.set(w.sep())
			w.sub = w.shape.Writer(v, w.opts.nested())
			w.n++
			w.step = aggValue

		case aggValue:
			if ok, err := w.emitSub(out); err != nil {
				return writeFailed{err}
			} else if !ok {
				return w
			}
			w.step = aggNext

		case aggClose:
			return wroteAll{}
		}
	}
}

func (w *arrayWriter[E]) nextKept() (E, bool) {
	for {
		v, ok := w.items.Next()
		if !ok || w.shape.Keep(v, w.mode) {
			return v, ok
		}
	}
}

// WriteObject returns a writer for an object whose members are drawn from
// fields, with values written by shape. A field whose value shape does not
// keep under the field's mode is skipped.
func WriteObject[V any](shape Shape[V], fields Items[Field[V]], opts WriteOptions) Writer {
	return &objectWriter[V]{frame: frame{opts: opts}, shape: shape, fields: fields}
}

type objectWriter[V any] struct {
	frame
	shape  Shape[V]
	fields Items[Field[V]]
	cur    Field[V]
}

func (w *objectWriter[V]) Emit(out Output) Writer {
	for {
		if ok, err := w.flush(out); err != nil {
			return writeFailed{err}
		} else if !ok {
			return w
		}

		switch w.step {
		case aggOpen:
			w.set("{")
			w.step = aggNext

		case aggNext:
			f, ok := w.nextKept()
			if !ok {
				w.set(w.closer("}"))
				w.step = aggClose
				continue
			}
			w.set(w.sep())
			w.cur = f
			w.sub = WriteKey(f.Key, w.opts)
			w.n++
			w.step = aggKey

		case aggKey:
			if ok, err := w.emitSub(out); err != nil {
				return writeFailed{err}
			} else if !ok {
				return w
			}
			w.set(w.opts.colon())
			w.sub = w.shape.Writer(w.cur.Value, w.opts.nested())
			w.step = aggValue

		case aggValue:
			if ok, err := w.emitSub(out); err != nil {
				return writeFailed{err}
			} else if !ok {
				return w
			}
			var zero Field[V]
			w.cur = zero
			w.step = aggNext

		case aggClose:
			return wroteAll{}
		}
	}
}

func (w *objectWriter[V]) nextKept() (Field[V], bool) {
	for {
		f, ok := w.fields.Next()
		if !ok || w.shape.Keep(f.Value, f.Mode) {
			return f, ok
		}
	}
}
