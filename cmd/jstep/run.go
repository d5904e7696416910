// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/creachadair/jstep"
	"github.com/creachadair/jstep/ast"
	"github.com/puzpuzpuz/xsync/v4"
	"github.com/samber/lo"
	"github.com/tailscale/hujson"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// config carries the settings shared by all subcommands.
type config struct {
	verbose bool
	jobs    int
	chunk   int
	exprs   bool
	hujson  bool

	log *zap.Logger
}

func (c *config) logger() *zap.Logger {
	if c.log == nil {
		return zap.NewNop()
	}
	return c.log
}

// open returns a reader for the named file, or stdin for "-".
func open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

// decode parses a complete document from r.
func (c *config) decode(r io.Reader) (ast.Value, error) {
	p := ast.ParseWith(jstep.ParseOptions{}.WithExprs(c.exprs))
	if !c.hujson {
		return jstep.Decode(r, p, c.chunk)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, errors.Wrap(err, "standardize")
	}
	return jstep.Decode(bytes.NewReader(std), p, c.chunk)
}

// decodeFile parses the named file.
func (c *config) decodeFile(path string) (ast.Value, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return c.decode(f)
}

// result is the outcome of processing one file.
type result struct {
	output []byte
	err    error
}

// eachFile calls fn for each distinct path, running up to c.jobs calls
// concurrently, and returns the results in the order the paths were given.
// Errors reported by fn are recorded in the results, not returned.
func (c *config) eachFile(ctx context.Context, paths []string, fn func(path string) result) ([]string, []result, error) {
	paths = lo.Uniq(paths)
	done := xsync.NewMap[string, result]()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(c.jobs, 1))
	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res := fn(path)
			done.Store(path, res)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	out := make([]result, len(paths))
	for i, path := range paths {
		out[i], _ = done.Load(path)
	}
	return paths, out, nil
}
