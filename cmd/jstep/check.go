// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newCheckCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE...",
		Short: "Report whether each file holds a single valid value",
		Long: `Parse each file and report whether it holds a single valid value.

For each invalid file, the position and description of the first error is
printed. The command fails if any file is invalid.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := cfg.logger()
			paths, results, err := cfg.eachFile(cmd.Context(), args, func(path string) result {
				_, err := cfg.decodeFile(path)
				if err != nil {
					log.Debug("check failed", zap.String("file", path), zap.Error(err))
				} else {
					log.Debug("check ok", zap.String("file", path))
				}
				return result{err: err}
			})
			if err != nil {
				return err
			}

			var nbad int
			for i, res := range results {
				if res.err != nil {
					nbad++
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", paths[i], res.err)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", paths[i])
				}
			}
			if nbad != 0 {
				return errors.Newf("%d of %d files are invalid", nbad, len(paths))
			}
			return nil
		},
	}
}
