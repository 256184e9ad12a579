// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	gitpkg "github.com/petar-djukic/comment-doctor/internal/git"
	"github.com/petar-djukic/comment-doctor/internal/logging"
	"github.com/petar-djukic/comment-doctor/pkg/doctor"
)

// newFixCmd creates the "fix" command.
func newFixCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix [paths...]",
		Short: "Promote declaration comments in place",
		Long: "Fix rewrites every plain comment directly above a declaration into a doc comment.\n" +
			"Paths default to the work directory; directories are searched recursively.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd, v, args, false)
		},
	}

	cmd.Flags().Bool("dry-run", false, "Report promotions without writing files")
	cmd.Flags().Bool("diff", false, "Print a diff for every changed file")
	cmd.Flags().Bool("commit", false, "Commit the rewritten files to git")
	cmd.Flags().Bool("dirty-commit", false, "With --commit, commit uncommitted changes first instead of failing")
	for _, name := range []string{"dry-run", "diff", "commit", "dirty-commit"} {
		_ = v.BindPFlag(name, cmd.Flags().Lookup(name))
	}
	return cmd
}

// newCheckCmd creates the "check" command.
func newCheckCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "check [paths...]",
		Short: "Report files with comments to promote",
		Long:  "Check lists files that fix would change and exits with status 1 if there are any. No file is written.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd, v, args, true)
		},
	}
}

// runDoctor runs fix or check over args.
func runDoctor(cmd *cobra.Command, v *viper.Viper, args []string, check bool) error {
	logger, err := logging.New(logging.Config{
		Level:  v.GetString("log-level"),
		Format: v.GetString("log-format"),
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	cfg := doctor.Config{
		WorkDir:     v.GetString("workdir"),
		Check:       check,
		Verify:      v.GetBool("verify"),
		Concurrency: v.GetInt("concurrency"),
		Strategy:    v.GetString("strategy"),
		Extensions:  v.GetStringSlice("ext"),
		NoGitignore: v.GetBool("no-gitignore"),
		Logger:      logger,
	}
	if !check {
		cfg.DryRun = v.GetBool("dry-run")
		cfg.Diff = v.GetBool("diff")
		cfg.Commit = v.GetBool("commit")
		cfg.DirtyCommit = v.GetBool("dirty-commit")
	}

	d, err := doctor.New(cfg)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	result, runErr := d.Run(ctx, args)
	out := cmd.OutOrStdout()
	if v.GetBool("json") {
		printJSON(out, result)
	} else {
		printSummary(out, result, summaryMode(cfg))
	}

	if runErr != nil {
		return runErr
	}
	if !result.Success {
		return fmt.Errorf("%d file(s) failed", len(result.Errors))
	}
	return nil
}

// newUndoCmd creates the "undo" command.
func newUndoCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Revert the last comment-doctor commit",
		Long:  "Undo performs a soft reset of the last commit if it was made by comment-doctor. The promoted files stay staged.",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := gitpkg.Open(gitpkg.Config{WorkDir: v.GetString("workdir")})
			if err != nil {
				return fmt.Errorf("opening repository: %w", err)
			}

			if err := repo.Undo(); err != nil {
				return fmt.Errorf("undo failed: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Reverted last comment-doctor commit.")
			return nil
		},
	}
}
