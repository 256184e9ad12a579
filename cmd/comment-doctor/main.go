// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Command comment-doctor promotes plain "//" comments that sit directly above
// Zig and Rust declarations to "///" doc comments.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd(viper.New()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Flags, COMMENT_DOCTOR_* environment
// variables and an optional .comment-doctor.yaml are all read through v.
func newRootCmd(v *viper.Viper) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "comment-doctor",
		Short: "Promote declaration comments to doc comments",
		Long: "comment-doctor finds plain // comments placed directly above declarations in Zig and Rust\n" +
			"sources and turns them into /// doc comments, leaving every other byte unchanged.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(v)
		},
	}

	// Global flags.
	flags := rootCmd.PersistentFlags()
	flags.String("workdir", ".", "Base directory for relative paths and git")
	flags.Int("concurrency", 0, "Files processed in parallel (0 = number of CPUs)")
	flags.StringSlice("ext", nil, "File extensions to process (default: all supported)")
	flags.String("strategy", "descend", "Declaration traversal: descend or flat")
	flags.Bool("no-gitignore", false, "Do not honor .gitignore files")
	flags.Bool("verify", false, "Re-analyze each rewrite before writing it")
	flags.Bool("json", false, "Print the result as JSON")
	flags.String("log-level", "warn", "Log level: debug, info, warn or error")
	flags.String("log-format", "text", "Log format: text or json")

	// Bind flags to viper.
	for _, name := range []string{
		"workdir", "concurrency", "ext", "strategy", "no-gitignore",
		"verify", "json", "log-level", "log-format",
	} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}

	// Env vars: COMMENT_DOCTOR_WORKDIR, COMMENT_DOCTOR_LOG_LEVEL, etc.
	v.SetEnvPrefix("COMMENT_DOCTOR")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	rootCmd.AddCommand(newFixCmd(v))
	rootCmd.AddCommand(newCheckCmd(v))
	rootCmd.AddCommand(newUndoCmd(v))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// loadConfig reads .comment-doctor.yaml from the work directory, if present.
func loadConfig(v *viper.Viper) error {
	v.SetConfigName(".comment-doctor")
	v.SetConfigType("yaml")
	v.AddConfigPath(v.GetString("workdir"))
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// newVersionCmd creates the "version" command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print comment-doctor version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "comment-doctor %s\n", version)
		},
	}
}
