// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast_test

import (
	"archive/zip"
	"bytes"
	"flag"
	"io"
	"net/http"
	"os"
	"path"
	"strings"
	"testing"

	"github.com/creachadair/jstep"
	"github.com/creachadair/jstep/ast"
)

// The compliance cases are those of "Parsing JSON is a Minefield",
// https://seriot.ch/projects/parsing_json.html. Affirmative (y_*) cases must
// parse, negative (n_*) cases must not, and indeterminate (i_*) cases are
// not checked.
var (
	doCompliance = flag.Bool("compliance-test", false,
		"Run the JSON compliance suite")
	complianceRepo = flag.String("compliance-test-repo", "https://github.com/nst/JSONTestSuite",
		"Compliance suite repository URL")
	complianceCache = flag.String("compliance-test-cache", "hard-test-suite.zip",
		"Local copy of the compliance suite archive")
)

// extensions lists negative cases that parse because the grammar is wider
// than JSON. The \' string escape is also accepted, but the suite has no
// negative case for it.
var extensions = map[string]string{
	"n_object_unquoted_key":       "bare identifier keys",
	"n_object_repeated_null_null": "bare identifier keys, including reserved words",
	"n_number_hex_1_digit":        "hexadecimal integers",
	"n_number_hex_2_digits":       "hexadecimal integers",
}

type suiteCase struct {
	Name string // base name without extension, e.g. "y_array_empty"
	Kind string // "y", "n", or "i"
	Data []byte
}

// loadSuite returns the parsing cases of the compliance suite, fetching the
// archive if no local copy exists.
func loadSuite(t *testing.T) []suiteCase {
	t.Helper()

	data, err := os.ReadFile(*complianceCache)
	if os.IsNotExist(err) {
		data = fetchArchive(t, *complianceRepo+"/archive/refs/heads/master.zip")
		if err := os.WriteFile(*complianceCache, data, 0644); err != nil {
			t.Logf("Caching archive: %v (continuing)", err)
		}
	} else if err != nil {
		t.Fatalf("Read archive: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("Open archive: %v", err)
	}
	var out []suiteCase
	for _, f := range zr.File {
		dir, base := path.Split(f.Name)
		if !strings.HasSuffix(dir, "/test_parsing/") || path.Ext(base) != ".json" {
			continue
		}
		name := strings.TrimSuffix(base, ".json")
		kind, _, _ := strings.Cut(name, "_")
		out = append(out, suiteCase{Name: name, Kind: kind, Data: readZipFile(t, f)})
	}
	if len(out) == 0 {
		t.Fatal("Archive has no parsing cases")
	}
	return out
}

func fetchArchive(t *testing.T, url string) []byte {
	t.Helper()
	t.Logf("Fetching %q ...", url)
	rsp, err := http.Get(url)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	defer rsp.Body.Close()
	if rsp.StatusCode != http.StatusOK {
		t.Fatalf("Fetch failed: %s", rsp.Status)
	}
	data, err := io.ReadAll(rsp.Body)
	if err != nil {
		t.Fatalf("Read response: %v", err)
	}
	return data
}

func readZipFile(t *testing.T, f *zip.File) []byte {
	t.Helper()
	rc, err := f.Open()
	if err != nil {
		t.Fatalf("Open %q: %v", f.Name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("Read %q: %v", f.Name, err)
	}
	return data
}

// parseChunked parses data a few bytes at a time.
func parseChunked(data []byte) (ast.Value, error) {
	return jstep.Decode(bytes.NewReader(data), ast.ParseWith(jstep.ParseOptions{}), 3)
}

func TestCompliance(t *testing.T) {
	if !*doCompliance {
		t.Skip("Skipping compliance test because --compliance-test is false")
	}

	var nYes, nNo, nExt int
	for _, tc := range loadSuite(t) {
		switch tc.Kind {
		case "y":
			nYes++
			t.Run(tc.Name, func(t *testing.T) {
				v, err := ast.Parse(bytes.NewReader(tc.Data))
				if err != nil {
					t.Fatalf("Parse: unexpected error: %v", err)
				}
				c, err := parseChunked(tc.Data)
				if err != nil {
					t.Fatalf("Parse chunked: unexpected error: %v", err)
				}
				if got, want := c.JSON(), v.JSON(); got != want {
					t.Errorf("Chunked result: got %s, want %s", got, want)
				}
			})

		case "n":
			nNo++
			why, ok := extensions[tc.Name]
			if ok {
				nExt++
			}
			t.Run(tc.Name, func(t *testing.T) {
				v, err := ast.Parse(bytes.NewReader(tc.Data))
				switch {
				case ok && err != nil:
					t.Errorf("Parse: got error %v, want success (%s)", err, why)
				case !ok && err == nil:
					t.Errorf("Parse: got %s, want error", v.JSON())
				case err != nil:
					if _, cerr := parseChunked(tc.Data); cerr == nil {
						t.Errorf("Parse chunked: got success, want error like %v", err)
					}
				}
			})

		case "i":
			// not checked
		default:
			t.Logf("Skipped unrecognized case %q", tc.Name)
		}
	}
	t.Logf("Checked %d affirmative and %d negative cases (%d accepted as extensions)", nYes, nNo, nExt)
}
