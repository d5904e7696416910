// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package cursor_test

import (
	"errors"
	"testing"

	"github.com/creachadair/jstep/ast"
	"github.com/creachadair/jstep/ast/cursor"
	"github.com/google/go-cmp/cmp"
)

const testJSON = `{
  "list": [
    {
      "x": 1
    },
    {
      "x": 2
    }
  ],
  "y": {
    hello: "there"
  },
  "o": [
    "hi",
    "yourself"
  ],
  "xyz": {
    "p": true,
    "d": true,
    "q": false
  },
  "a b": 1,
  "true": 2
}`

var numberOpt = cmp.AllowUnexported(ast.Number{})

func mustParse(t *testing.T) ast.Value {
	t.Helper()
	v, err := ast.ParseString(testJSON)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return v
}

func TestCursor(t *testing.T) {
	v := mustParse(t)
	root := v.(ast.Object)

	tests := []struct {
		name string
		path []any
		want ast.Value
		fail bool
	}{
		{"NilInput", nil, v, false},
		{"NilElement", []any{nil}, v, false},
		{"NoMatch", []any{"nonesuch"}, v, true},
		{"WrongType", []any{11.5}, v, true},
		{"ObjIndex", []any{1}, root.Find("y").Value, false},
		{"ObjIndexRange", []any{10}, v, true},
		{"StringKey", []any{ast.String("a b")}, ast.Int(1), false},

		{"ArrayPos", []any{"list", 1},
			root.Find("list").Value.(ast.Array)[1],
			false,
		},
		{"ArrayNeg", []any{"list", -1},
			root.Find("list").Value.(ast.Array)[1],
			false,
		},
		{"ArrayRange", []any{"o", 25},
			root.Find("o").Value,
			true,
		},
		{"ArrayKey", []any{"o", "x"},
			root.Find("o").Value,
			true,
		},
		{"ObjPath", []any{"xyz", "d"},
			root.Find("xyz").Value.(ast.Object).Find("d").Value,
			false,
		},
		{"BareKey", []any{"y", "hello"}, ast.String("there"), false},
		{"Deep", []any{"list", 0, "x"}, ast.Int(1), false},

		{"FuncArray", []any{"o", testPathFunc}, ast.ToValue(2), false},
		{"FuncObj", []any{"xyz", testPathFunc}, ast.ToValue(3), false},
		{"FuncWrong", []any{"xyz", "d", testPathFunc},
			root.Find("xyz").Value.(ast.Object).Find("d").Value,
			true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := cursor.New(v).Down(tc.path...)
			err := c.Err()
			if err != nil {
				if tc.fail {
					t.Logf("Got expected error: %v", err)
				} else {
					t.Fatalf("Down %+v: unexpected error: %v", tc.path, err)
				}
			} else if tc.fail {
				t.Fatalf("Down %+v: got %s, wanted error", tc.path, c.Value().JSON())
			}
			got := c.Value()
			if diff := cmp.Diff(tc.want, got, numberOpt); diff != "" {
				t.Errorf("Down %+v: wrong result (-want, +got):\n%s", tc.path, diff)
			}
		})
	}
}

func TestCursorErrors(t *testing.T) {
	v := mustParse(t)
	tests := []struct {
		path []any
		want error
		loc  string
		msg  string
	}{
		{[]any{"nonesuch"}, cursor.ErrNotFound, "$", `at $: key "nonesuch": not found`},
		{[]any{"list", 0, "nope"}, cursor.ErrNotFound, "$.list[0]", `at $.list[0]: key "nope": not found`},
		{[]any{"list", 2}, cursor.ErrOutOfRange, "$.list", `at $.list: array index 2 (n=2): index out of range`},
		{[]any{-7}, cursor.ErrOutOfRange, "$", `at $: member index -7 (n=6): index out of range`},
		{[]any{"o", "x"}, cursor.ErrWrongType, "$.o", `at $.o: cannot select key "x" from ast.Array: wrong type`},
		{[]any{"y", "hello", 0}, cursor.ErrWrongType, "$.y.hello", `at $.y.hello: cannot index ast.String: wrong type`},
		{[]any{true}, cursor.ErrWrongType, "$", `at $: invalid path element bool: wrong type`},
	}
	for _, tc := range tests {
		c := cursor.New(v).Down(tc.path...)
		err := c.Err()
		if !errors.Is(err, tc.want) {
			t.Errorf("Down %+v: got error %v, want %v", tc.path, err, tc.want)
			continue
		}
		var cerr *cursor.Error
		if !errors.As(err, &cerr) {
			t.Fatalf("Down %+v: got %T, want *cursor.Error", tc.path, err)
		}
		if cerr.Location != tc.loc || c.Location() != tc.loc {
			t.Errorf("Down %+v: location %q (cursor at %q), want %q", tc.path, cerr.Location, c.Location(), tc.loc)
		}
		if got := err.Error(); got != tc.msg {
			t.Errorf("Down %+v: error %q, want %q", tc.path, got, tc.msg)
		}
	}

	// A function's own error is reported unchanged.
	c := cursor.New(v).Down("xyz", "d", testPathFunc)
	if err := c.Err(); err == nil || err.Error() != "at $.xyz.d: not a thing with length" {
		t.Errorf("Down func: got %v", err)
	}
}

func TestLocation(t *testing.T) {
	v := mustParse(t)
	tests := []struct {
		path []any
		want string
	}{
		{nil, "$"},
		{[]any{"list", 1, "x"}, "$.list[1].x"},
		{[]any{"list", -2}, "$.list[0]"},
		{[]any{"y", "hello"}, "$.y.hello"},
		{[]any{1}, "$.y"},
		{[]any{"xyz", -1}, "$.xyz.q"},
		{[]any{"a b"}, `$["a b"]`},
		{[]any{-1}, `$["true"]`},
		{[]any{"o", testPathFunc}, "$.o()"},
	}
	for _, tc := range tests {
		c := cursor.New(v).Down(tc.path...)
		if err := c.Err(); err != nil {
			t.Fatalf("Down %+v: unexpected error: %v", tc.path, err)
		}
		if got := c.Location(); got != tc.want {
			t.Errorf("Down %+v: location %q, want %q", tc.path, got, tc.want)
		}
	}
}

func TestRepeatedKey(t *testing.T) {
	obj := ast.Object{
		ast.Field("k", ast.Int(1)),
		ast.Field("j", ast.Int(2)),
		ast.Field("k", ast.Int(3)),
	}
	got, err := cursor.Path[ast.Number](obj, "k")
	if err != nil {
		t.Fatalf("Path: unexpected error: %v", err)
	}
	if n, _ := got.Int64(); n != 3 {
		t.Errorf("Path k: got %v, want 3", got.JSON())
	}

	// The parsed form agrees.
	v, err := ast.ParseString(`{"k": 1, "j": 2, "k": 3}`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got, err := cursor.Path[ast.Number](v, "k"); err != nil || got.JSON() != "3" {
		t.Errorf("Path parsed k: got %v, %v; want 3", got.JSON(), err)
	}
}

func TestCursorMoves(t *testing.T) {
	v := mustParse(t)
	c := cursor.New(v)
	if !c.AtOrigin() {
		t.Error("New cursor is not at its origin")
	}
	c.Down("list", 0, "x")
	if c.AtOrigin() {
		t.Error("Cursor is at its origin after Down")
	}
	if got := len(c.Path()); got != 4 {
		t.Errorf("Path length: got %d, want 4", got)
	}
	if got := c.Up().Value(); got.JSON() != `{"x":1}` {
		t.Errorf("Up: got %s, want {\"x\":1}", got.JSON())
	}
	if got := c.Steps(); len(got) != 2 || got[0].Label != ".list" || got[1].Label != "[0]" {
		t.Errorf("Steps: got %+v, want .list, [0]", got)
	}
	c.Reset()
	if !c.AtOrigin() {
		t.Error("Reset did not return to the origin")
	}
	if diff := cmp.Diff(c.Origin(), c.Value(), numberOpt); diff != "" {
		t.Errorf("Value after Reset (-want, +got):\n%s", diff)
	}
	if c.Location() != "$" {
		t.Errorf("Location after Reset: got %q, want $", c.Location())
	}
}

func TestPath(t *testing.T) {
	v := mustParse(t)

	s, err := cursor.Path[ast.String](v, "o", -1)
	if err != nil {
		t.Fatalf("Path: unexpected error: %v", err)
	} else if s != "yourself" {
		t.Errorf("Path: got %q, want yourself", s)
	}

	if got, err := cursor.Path[ast.Number](v, "o", 0); !errors.Is(err, cursor.ErrWrongType) {
		t.Errorf("Path: got %v, %v; want %v", got, err, cursor.ErrWrongType)
	} else if want := "at $.o[0]: have ast.String, want ast.Number: wrong type"; err.Error() != want {
		t.Errorf("Path error: got %q, want %q", err.Error(), want)
	}
	if got, err := cursor.Path[ast.Bool](v, "nonesuch"); err == nil {
		t.Errorf("Path: got %v, wanted error", got)
	}
}

func testPathFunc(v ast.Value) (ast.Value, error) {
	switch t := v.(type) {
	case ast.Array:
		return ast.ToValue(len(t)), nil
	case ast.Object:
		return ast.ToValue(len(t)), nil
	default:
		return nil, errors.New("not a thing with length")
	}
}
