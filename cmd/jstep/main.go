// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Program jstep checks and reformats JSON text, reading its input in chunks
// through the incremental parser.
//
// Usage:
//
//	jstep check [flags] FILE...
//	jstep fmt [flags] FILE...
//
// A FILE named "-" reads standard input.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := new(config)
	root := &cobra.Command{
		Use:          "jstep",
		Short:        "Check and format JSON text",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			zc := zap.NewProductionConfig()
			if cfg.verbose {
				zc = zap.NewDevelopmentConfig()
			}
			zc.OutputPaths = []string{"stderr"}
			log, err := zc.Build()
			if err != nil {
				return err
			}
			cfg.log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if cfg.log != nil {
				cfg.log.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.BoolVarP(&cfg.verbose, "verbose", "v", false, "enable verbose logging")
	pf.IntVarP(&cfg.jobs, "jobs", "j", 4, "maximum number of files processed concurrently")
	pf.IntVar(&cfg.chunk, "chunk", 4096, "read and write in chunks of this many bytes")
	pf.BoolVar(&cfg.exprs, "exprs", false, "accept bare words other than true, false, and null")
	pf.BoolVar(&cfg.hujson, "hujson", false, "accept comments and trailing commas (JWCC)")

	root.AddCommand(newCheckCmd(cfg))
	root.AddCommand(newFmtCmd(cfg))
	return root
}
