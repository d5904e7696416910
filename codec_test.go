// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jstep_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/creachadair/jstep"
	"github.com/google/go-cmp/cmp"
)

func TestDecoder(t *testing.T) {
	d := jstep.NewDecoder(parseAny(jstep.ParseOptions{}))
	for _, chunk := range []string{`{"a": [1,`, ` 2], "b"`, `: "x\u00`, `e9"}  `} {
		if _, err := io.WriteString(d, chunk); err != nil {
			t.Fatalf("Write %q: unexpected error: %v", chunk, err)
		}
		if _, err := d.Result(); !errors.Is(err, jstep.ErrPending) {
			t.Errorf("Result before close: got %v, want %v", err, jstep.ErrPending)
		}
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Close: unexpected error: %v", err)
	}
	got, err := d.Result()
	if err != nil {
		t.Fatalf("Result: unexpected error: %v", err)
	}
	want := map[string]any{"a": []any{int64(1), int64(2)}, "b": "xé"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Result (-want, +got):\n%s", diff)
	}

	if _, err := d.Write([]byte("more")); err == nil {
		t.Error("Write after close: got nil, want error")
	}
}

func TestDecoderSyntaxError(t *testing.T) {
	d := jstep.NewDecoder(parseAny(jstep.ParseOptions{}))
	if _, err := d.Write([]byte(`[1, 2`)); err != nil {
		t.Fatalf("Write: unexpected error: %v", err)
	}
	_, err := d.Write([]byte(` 3]`))
	var serr *jstep.SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("Write: got %v, want syntax error", err)
	}
	if serr.Pos.Column != 6 {
		t.Errorf("Column: got %d, want 6", serr.Pos.Column)
	}
	if _, rerr := d.Result(); rerr != err {
		t.Errorf("Result: got %v, want %v", rerr, err)
	}
}

func TestDecode(t *testing.T) {
	const input = `[true, {"k": "v"}, -1.5, null]`
	want := []any{true, map[string]any{"k": "v"}, -1.5, nil}
	readers := map[string]func() io.Reader{
		"Whole":   func() io.Reader { return strings.NewReader(input) },
		"OneByte": func() io.Reader { return iotest.OneByteReader(strings.NewReader(input)) },
		"Half":    func() io.Reader { return iotest.HalfReader(strings.NewReader(input)) },
		"DataErr": func() io.Reader { return iotest.DataErrReader(strings.NewReader(input)) },
	}
	for name, newReader := range readers {
		t.Run(name, func(t *testing.T) {
			for _, size := range []int{0, 1, 3, 16} {
				got, err := jstep.Decode(newReader(), parseAny(jstep.ParseOptions{}), size)
				if err != nil {
					t.Fatalf("Decode size %d: unexpected error: %v", size, err)
				}
				if diff := cmp.Diff(want, got); diff != "" {
					t.Errorf("Decode size %d (-want, +got):\n%s", size, diff)
				}
			}
		})
	}

	t.Run("ReadError", func(t *testing.T) {
		bad := errors.New("disk on fire")
		r := io.MultiReader(strings.NewReader(`[1, 2`), iotest.ErrReader(bad))
		_, err := jstep.Decode(r, parseAny(jstep.ParseOptions{}), 0)
		if err != bad {
			t.Errorf("Decode: got %v, want %v", err, bad)
		}
	})

	t.Run("Truncated", func(t *testing.T) {
		_, err := jstep.Decode(strings.NewReader(`{"a": [`), parseAny(jstep.ParseOptions{}), 0)
		if !errors.Is(err, jstep.ErrTruncated) {
			t.Errorf("Decode: got %v, want %v", err, jstep.ErrTruncated)
		}
	})
}

func TestEncoder(t *testing.T) {
	v := map[string]any{"list": []any{1, 2, 3}, "name": "héllo"}
	want, err := jstep.Format[any](jstep.Any, v, jstep.Spaced)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}

	t.Run("Read", func(t *testing.T) {
		for _, size := range []int{1, 2, 7, 0} {
			e := jstep.NewEncoder(jstep.Any.Writer(v, jstep.Spaced), size)
			got, err := io.ReadAll(iotest.OneByteReader(e))
			if err != nil {
				t.Fatalf("ReadAll size %d: unexpected error: %v", size, err)
			}
			if string(got) != want {
				t.Errorf("ReadAll size %d: got %q, want %q", size, got, want)
			}
		}
	})

	t.Run("TestReader", func(t *testing.T) {
		e := jstep.NewEncoder(jstep.Any.Writer(v, jstep.Spaced), 4)
		if err := iotest.TestReader(e, []byte(want)); err != nil {
			t.Error(err)
		}
	})

	t.Run("WriteTo", func(t *testing.T) {
		var buf bytes.Buffer
		n, err := jstep.NewEncoder(jstep.Any.Writer(v, jstep.Spaced), 3).WriteTo(&buf)
		if err != nil {
			t.Fatalf("WriteTo: unexpected error: %v", err)
		}
		if n != int64(len(want)) || buf.String() != want {
			t.Errorf("WriteTo: got %d bytes %q, want %q", n, buf.String(), want)
		}
	})

	t.Run("WriterError", func(t *testing.T) {
		e := jstep.NewEncoder(jstep.WriteFloat(-1/zero()), 0)
		if _, err := io.ReadAll(e); !errors.Is(err, jstep.ErrNotFinite) {
			t.Errorf("ReadAll: got %v, want %v", err, jstep.ErrNotFinite)
		}
	})

	t.Run("SinkError", func(t *testing.T) {
		bad := errors.New("pipe closed")
		e := jstep.NewEncoder(jstep.WriteString(strings.Repeat("x", 100)), 8)
		_, err := e.WriteTo(iotest.TruncateWriter(failWriter{bad}, 0))
		if err != nil {
			t.Errorf("WriteTo truncating writer: unexpected error: %v", err)
		}

		e = jstep.NewEncoder(jstep.WriteString("abc"), 8)
		if _, err := e.WriteTo(failWriter{bad}); err != bad {
			t.Errorf("WriteTo: got %v, want %v", err, bad)
		}
	})
}

func zero() float64 { return 0 }

type failWriter struct{ err error }

func (f failWriter) Write([]byte) (int, error) { return 0, f.err }

func TestEncode(t *testing.T) {
	var buf strings.Builder
	if err := jstep.Encode(&buf, jstep.WriteArray(jstep.Strings, jstep.SliceItems([]string{"a", "b"}), jstep.FilterAlways, jstep.Pretty)); err != nil {
		t.Fatalf("Encode: unexpected error: %v", err)
	}
	if got, want := buf.String(), "[\n  \"a\",\n  \"b\"\n]"; got != want {
		t.Errorf("Encode: got %q, want %q", got, want)
	}
}
