// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bytes"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/creachadair/jstep"
	"github.com/creachadair/jstep/ast"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type fmtFlags struct {
	indent    string
	lineSep   string
	space     bool
	identKeys bool
	filter    string
	sortKeys  bool
	write     bool
}

func (f *fmtFlags) options(cmd *cobra.Command) jstep.WriteOptions {
	opts := jstep.Compact.WithWhitespace(f.space).WithIdentKeys(f.identKeys)
	if cmd.Flags().Changed("indent") {
		opts = opts.WithIndent(f.indent)
	}
	if cmd.Flags().Changed("line-sep") {
		opts = opts.WithLineSep(f.lineSep)
	}
	return opts
}

func parseFilter(s string) (jstep.FilterMode, error) {
	for _, m := range []jstep.FilterMode{
		jstep.FilterAlways, jstep.FilterDefined, jstep.FilterTruthy, jstep.FilterDistinct,
	} {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return 0, errors.Newf("unknown filter mode %q", s)
}

// sortKeys sorts the members of every object in v by key.
func sortKeys(v ast.Value) {
	switch t := v.(type) {
	case ast.Object:
		t.Sort()
		for _, m := range t {
			sortKeys(m.Value)
		}
	case ast.Array:
		for _, e := range t {
			sortKeys(e)
		}
	}
}

func newFmtCmd(cfg *config) *cobra.Command {
	var flags fmtFlags
	cmd := &cobra.Command{
		Use:   "fmt FILE...",
		Short: "Reformat the value in each file",
		Long: `Parse each file and write its value in a uniform style.

By default the output is printed to stdout. Use -w to replace the contents
of each file in place. Without --indent or --line-sep the output is written
on a single line.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.write && len(args) == 1 && args[0] == "-" {
				return errors.New("-w requires a file argument")
			}
			mode, err := parseFilter(flags.filter)
			if err != nil {
				return err
			}
			f := ast.Formatter{Options: flags.options(cmd), Filter: mode}
			log := cfg.logger()

			paths, results, err := cfg.eachFile(cmd.Context(), args, func(path string) result {
				v, err := cfg.decodeFile(path)
				if err != nil {
					return result{err: err}
				}
				if flags.sortKeys {
					sortKeys(v)
				}
				var buf bytes.Buffer
				if _, err := jstep.NewEncoder(f.Writer(v), cfg.chunk).WriteTo(&buf); err != nil {
					return result{err: err}
				}
				buf.WriteByte('\n')
				log.Debug("formatted", zap.String("file", path), zap.Int("bytes", buf.Len()))
				return result{output: buf.Bytes()}
			})
			if err != nil {
				return err
			}

			var nbad int
			for i, res := range results {
				if res.err != nil {
					nbad++
					log.Error("format failed", zap.String("file", paths[i]), zap.Error(res.err))
					cmd.PrintErrf("%s: %v\n", paths[i], res.err)
					continue
				}
				if flags.write && paths[i] != "-" {
					if err := os.WriteFile(paths[i], res.output, 0644); err != nil {
						return errors.Wrapf(err, "write %s", paths[i])
					}
					continue
				}
				if _, err := cmd.OutOrStdout().Write(res.output); err != nil {
					return err
				}
			}
			if nbad != 0 {
				return errors.Newf("%d of %d files could not be formatted", nbad, len(paths))
			}
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&flags.indent, "indent", "", "indent nested items by this string, one item per line")
	fs.StringVar(&flags.lineSep, "line-sep", "\n", "separate items by this string")
	fs.BoolVar(&flags.space, "space", false, "add a space after each comma and colon")
	fs.BoolVar(&flags.identKeys, "ident-keys", false, "write identifier keys without quotes")
	fs.StringVar(&flags.filter, "filter", "always", "omit items: always, defined, truthy, distinct")
	fs.BoolVar(&flags.sortKeys, "sort-keys", false, "sort object members by key")
	fs.BoolVarP(&flags.write, "write", "w", false, "replace the contents of each file")
	return cmd
}
