// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package doctor is the public interface of comment-doctor. It promotes plain
// "//" comments that sit directly above Zig and Rust declarations to "///"
// doc comments.
package doctor

import (
	"context"
	"errors"
	"log/slog"
)

// Error types for the Doctor API.
var (
	ErrInvalidConfig = errors.New("invalid config")
	// ErrWouldChange is returned by Run in check mode when at least one file
	// has comments to promote. The Result is still returned.
	ErrWouldChange = errors.New("files would change")
)

// Config configures a Doctor instance.
type Config struct {
	WorkDir     string       // Base for relative paths and git (required)
	DryRun      bool         // Report promotions without writing
	Check       bool         // Report pending files and fail with ErrWouldChange
	Diff        bool         // Include a line diff per changed file
	Verify      bool         // Re-analyze each rewrite before persisting it
	Commit      bool         // Commit rewritten files to git
	DirtyCommit bool         // Commit pre-existing changes first instead of failing
	Concurrency int          // Files processed in parallel (default GOMAXPROCS)
	Strategy    string       // Declaration traversal: "descend" (default) or "flat"
	Extensions  []string     // File extensions to process (default: all supported)
	NoGitignore bool         // Do not honor .gitignore under directory arguments
	Logger      *slog.Logger // Structured logger (default: discard)
}

// FileResult is the outcome for one file.
type FileResult struct {
	Path    string   // Path relative to WorkDir
	Edits   int      // Markers promoted (or pending)
	Changed bool     // The file has (or had) comments to promote
	Written bool     // The file was rewritten
	Diff    string   // Line diff, when Config.Diff is set
	Issues  []string // Verification issues, when Config.Verify is set
	Error   string   // Failure, if any
}

// Result holds the outcome of a Doctor.Run invocation.
type Result struct {
	Files     []FileResult // One entry per processed file, sorted by path
	Changed   []string     // Paths that have (or had) comments to promote
	Skipped   []string     // Explicit arguments with an unsupported extension
	Errors    []string     // Per-file failures
	Commit    string       // Promotion commit hash, when Config.Commit is set
	Comments  int          // Comment units scanned
	Promoted  int          // Comment units attached to a declaration
	Unchanged int          // Plain comment units left alone
	Success   bool         // True if no file failed
}

// Doctor promotes comments across a set of files.
type Doctor interface {
	// Run expands paths (default: WorkDir) into source files, promotes every
	// plain comment directly above a declaration, and returns the result.
	// A file that fails is recorded in Result.Errors and does not stop the
	// others.
	Run(ctx context.Context, paths []string) (*Result, error)
}
