// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jstep

import (
	"io"

	"github.com/cockroachdb/errors"
)

// DefaultChunkSize is the buffer size used by Decode and Encode when the
// caller does not specify one.
const DefaultChunkSize = 4096

// A Decoder is an io.Writer that feeds the data written to it to a parser
// for a complete document. Each call to Write advances the parse as far as
// the data allow.
type Decoder[T any] struct {
	buf Buffer
	p   Parser[T]
}

// NewDecoder constructs a Decoder for a document whose value is parsed by p.
func NewDecoder[T any](p Parser[T]) *Decoder[T] {
	return &Decoder[T]{p: ParseDocument(p)}
}

// Write feeds data to the parser. It reports an error if the parse has
// failed, or if the decoder was closed.
func (d *Decoder[T]) Write(data []byte) (int, error) {
	if err := d.p.Err(); err != nil {
		return 0, err
	}
	n, err := d.buf.Write(data)
	if err != nil {
		return 0, err
	}
	d.p = d.p.Feed(&d.buf)
	return n, d.p.Err()
}

// Close marks the end of the input and completes the parse.
func (d *Decoder[T]) Close() error {
	d.buf.Close()
	d.p = d.p.Feed(&d.buf)
	return d.p.Err()
}

// Fail ends the input with err, which the parse reports verbatim.
func (d *Decoder[T]) Fail(err error) {
	d.buf.Fail(err)
	d.p = d.p.Feed(&d.buf)
}

// Result reports the value of a completed parse. It reports ErrPending if
// the parse has not finished.
func (d *Decoder[T]) Result() (T, error) {
	if err := d.p.Err(); err != nil {
		var zero T
		return zero, err
	} else if !d.p.Done() {
		var zero T
		return zero, ErrPending
	}
	return d.p.Value(), nil
}

// Decode parses a complete document from r using p, reading chunkSize bytes
// at a time. If chunkSize ≤ 0, DefaultChunkSize is used. An error reading r
// is reported verbatim.
func Decode[T any](r io.Reader, p Parser[T], chunkSize int) (T, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	d := NewDecoder(p)
	buf := make([]byte, chunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if _, werr := d.Write(buf[:n]); werr != nil {
				var zero T
				return zero, werr
			}
		}
		if err == io.EOF {
			d.Close()
			return d.Result()
		} else if err != nil {
			d.Fail(err)
			return d.Result()
		}
	}
}

// An Encoder is an io.Reader that yields the output of a writer, holding at
// most about one chunk of output in memory at a time.
type Encoder struct {
	w   Writer
	out *OutBuffer
}

// NewEncoder constructs an Encoder that drains w in chunks of about
// chunkSize bytes. If chunkSize ≤ 0, DefaultChunkSize is used.
func NewEncoder(w Writer, chunkSize int) *Encoder {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Encoder{w: w, out: NewOutBuffer(chunkSize)}
}

// Read satisfies the io.Reader interface. It reports io.EOF once all the
// output has been read, or the error that ended the writer.
func (e *Encoder) Read(p []byte) (int, error) {
	for {
		if e.out.Len() != 0 {
			n := copy(p, e.out.Bytes())
			e.out.Discard(n)
			return n, nil
		} else if e.w.Done() {
			return 0, io.EOF
		} else if err := e.w.Err(); err != nil {
			return 0, err
		}
		e.w = e.w.Emit(e.out)
	}
}

// WriteTo satisfies the io.WriterTo interface. It copies all remaining
// output to w.
func (e *Encoder) WriteTo(w io.Writer) (int64, error) {
	var nw int64
	for {
		if e.out.Len() != 0 {
			n, err := w.Write(e.out.Bytes())
			nw += int64(n)
			e.out.Discard(n)
			if err != nil {
				return nw, err
			}
			continue
		} else if e.w.Done() {
			return nw, nil
		} else if err := e.w.Err(); err != nil {
			return nw, err
		}
		e.w = e.w.Emit(e.out)
	}
}

// Encode copies the output of wr to w.
func Encode(w io.Writer, wr Writer) error {
	_, err := NewEncoder(wr, DefaultChunkSize).WriteTo(w)
	return err
}

// FormatText returns the complete output of w as a string.
func FormatText(w Writer) (string, error) {
	var out OutBuffer
	w = w.Emit(&out)
	if err := w.Err(); err != nil {
		return "", err
	} else if !w.Done() {
		return "", errors.AssertionFailedf("writer did not finish with unbounded output")
	}
	return out.String(), nil
}

// Format returns the text of v written with shape s and opts.
func Format[T any](s Shape[T], v T, opts WriteOptions) (string, error) {
	return FormatText(s.Writer(v, opts))
}
