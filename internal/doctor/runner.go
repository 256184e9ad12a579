// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package doctor implements the orchestrator that promotes comments across
// a set of files: it expands path arguments, analyzes each file on a bounded
// worker pool, writes or previews the rewrites, and optionally commits them.
package doctor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/petar-djukic/comment-doctor/internal/analysis"
	gitpkg "github.com/petar-djukic/comment-doctor/internal/git"
	"github.com/petar-djukic/comment-doctor/internal/locate"
	"github.com/petar-djukic/comment-doctor/internal/logging"
	"github.com/petar-djukic/comment-doctor/internal/rewrite"
	"github.com/petar-djukic/comment-doctor/internal/structure"
	"github.com/petar-djukic/comment-doctor/internal/verify"
)

var (
	// ErrUnsupported is recorded for files with no registered parser.
	ErrUnsupported = errors.New("unsupported file type")
	// ErrVerifyFailed is recorded when a rewrite fails verification. The
	// file is left untouched.
	ErrVerifyFailed = errors.New("rewrite failed verification")
)

// Mode selects what happens to files that need promotion.
type Mode int

const (
	ModeWrite  Mode = iota // rewrite files in place
	ModeDryRun             // report what would change
	ModeCheck              // report pending files; callers treat any as failure
)

func (m Mode) String() string {
	switch m {
	case ModeWrite:
		return "write"
	case ModeDryRun:
		return "dry-run"
	case ModeCheck:
		return "check"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// FileError records a failure for a single file.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e FileError) Unwrap() error {
	return e.Err
}

// FileResult is the outcome for one file.
type FileResult struct {
	Path    string         // Absolute path
	Rel     string         // Path relative to the work directory, for display
	Stats   analysis.Stats // Comment and edit counts
	Changed bool           // The file needs (or received) promotions
	Written bool           // The rewrite was persisted
	Diff    string         // Line diff, when requested
	Issues  []verify.Issue // Verification issues, when requested
	Err     error          // Failure, if any
}

// RunResult holds the outcome of Runner.Run.
type RunResult struct {
	Files   []FileResult
	Skipped []string // Explicit arguments with a disabled extension
	Commit  string   // Hash of the promotion commit, if one was made
}

// Changed returns the display paths of files that need or received
// promotions.
func (r *RunResult) Changed() []string {
	var out []string
	for _, f := range r.Files {
		if f.Changed && f.Err == nil {
			out = append(out, f.Rel)
		}
	}
	return out
}

// Written returns the absolute paths of files that were rewritten.
func (r *RunResult) Written() []string {
	var out []string
	for _, f := range r.Files {
		if f.Written {
			out = append(out, f.Path)
		}
	}
	return out
}

// Errors returns the per-file failures.
func (r *RunResult) Errors() []FileError {
	var out []FileError
	for _, f := range r.Files {
		if f.Err != nil {
			out = append(out, FileError{Path: f.Rel, Err: f.Err})
		}
	}
	return out
}

// Totals sums the statistics of every file.
func (r *RunResult) Totals() analysis.Stats {
	var t analysis.Stats
	for _, f := range r.Files {
		t.Units += f.Stats.Units
		t.DocUnits += f.Stats.DocUnits
		t.Attached += f.Stats.Attached
		t.Unattached += f.Stats.Unattached
		t.Edits += f.Stats.Edits
	}
	return t
}

// Deps configures a Runner.
type Deps struct {
	WorkDir      string          // Base for relative arguments and git (default: current directory)
	Mode         Mode            // What to do with pending promotions
	Diff         bool            // Render a diff per changed file
	Verify       bool            // Verify each rewrite before persisting it
	Commit       bool            // Commit rewritten files (ModeWrite only)
	DirtyCommit  bool            // Commit pre-existing changes first instead of failing
	Concurrency  int             // Worker count (default GOMAXPROCS)
	Strategy     locate.Strategy // Declaration traversal strategy
	Extensions   []string        // Enabled extensions (default: every registered one)
	UseGitignore bool            // Honor .gitignore files under directory arguments
	Logger       *slog.Logger    // Logger (default: discard)
}

// Runner orchestrates promotion across files.
type Runner struct {
	deps Deps
	log  *slog.Logger
}

// NewRunner creates a Runner with the given dependencies.
func NewRunner(deps Deps) *Runner {
	log := deps.Logger
	if log == nil {
		log = logging.Discard()
	}
	if len(deps.Extensions) == 0 {
		deps.Extensions = structure.Extensions()
	}
	return &Runner{deps: deps, log: log}
}

// Run processes every file that paths expand to. Files are independent: a
// failure in one is recorded in its FileResult and never stops the others.
// The returned error is reserved for failures that affect the whole run:
// bad arguments, no files, git problems, or cancellation. When commits are
// enabled, files written before a cancellation are still committed and
// result.Commit is set alongside the cancellation error.
func (r *Runner) Run(ctx context.Context, paths []string) (*RunResult, error) {
	workDir, err := r.workDir()
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		paths = []string{workDir}
	}
	args := make([]string, len(paths))
	for i, p := range paths {
		if !filepath.IsAbs(p) {
			p = filepath.Join(workDir, p)
		}
		args[i] = p
	}

	coll, err := CollectFiles(args, r.deps.Extensions, r.deps.UseGitignore)
	if err != nil {
		return nil, err
	}
	result := &RunResult{Skipped: coll.Skipped}
	for _, s := range coll.Skipped {
		r.log.Warn("skipping file", "path", s, "reason", "extension not enabled")
	}
	if len(coll.Files) == 0 {
		return result, ErrNoFiles
	}

	var repo *gitpkg.Repo
	if r.deps.Commit && r.deps.Mode == ModeWrite {
		repo, err = gitpkg.Open(gitpkg.Config{WorkDir: workDir, DirtyCommit: r.deps.DirtyCommit})
		if err != nil {
			return result, err
		}
		if err := repo.HandleDirty(); err != nil {
			return result, fmt.Errorf("handling dirty files: %w", err)
		}
	}

	jobs := r.deps.Concurrency
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Each task writes only its own slot.
	result.Files = make([]FileResult, len(coll.Files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(coll.Files)))
	for i, path := range coll.Files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				result.Files[i] = FileResult{Path: path, Rel: relPath(workDir, path), Err: err}
				return nil
			}
			result.Files[i] = r.processFile(gctx, workDir, path)
			return nil
		})
	}
	_ = g.Wait()

	// Files already rewritten are committed even when the run was cancelled.
	var commitErr error
	if repo != nil {
		commitErr = r.commitWritten(repo, result)
	}
	if err := ctx.Err(); err != nil {
		return result, errors.Join(err, commitErr)
	}
	return result, commitErr
}

// commitWritten records every file the run rewrote in one commit.
func (r *Runner) commitWritten(repo *gitpkg.Repo, result *RunResult) error {
	written := result.Written()
	if len(written) == 0 {
		return nil
	}
	hash, err := repo.Commit(written)
	if err != nil {
		return fmt.Errorf("committing promotions: %w", err)
	}
	result.Commit = hash.String()
	r.log.Info("committed promotions", "files", len(written), "commit", result.Commit)
	return nil
}

func (r *Runner) processFile(ctx context.Context, workDir, path string) FileResult {
	res := FileResult{Path: path, Rel: relPath(workDir, path)}
	log := r.log.With("path", res.Rel)

	parser, ok := structure.ForPath(path)
	if !ok {
		res.Err = fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
		log.Warn("skipping file", "reason", res.Err)
		return res
	}

	src, err := os.ReadFile(path)
	if err != nil {
		res.Err = fmt.Errorf("reading: %w", err)
		log.Error("read failed", "error", err)
		return res
	}

	a, err := analysis.Analyze(ctx, src, parser, r.deps.Strategy)
	if a != nil {
		res.Stats = a.Stats()
	}
	if err != nil {
		res.Err = err
		if errors.Is(err, structure.ErrMalformed) {
			log.Warn("skipping file", "reason", err, "comments", res.Stats.Units)
		} else {
			log.Error("analysis failed", "error", err)
		}
		return res
	}
	log.Debug("scanned", "language", parser.Name(), "comments", res.Stats.Units,
		"declarations", len(a.Decls), "attached", res.Stats.Attached)

	if a.Plan.Empty() {
		return res
	}
	res.Changed = true

	out, err := rewrite.Apply(src, a.Plan)
	if err != nil {
		res.Err = err
		log.Error("applying plan failed", "error", err)
		return res
	}
	if r.deps.Diff {
		res.Diff = rewrite.Diff(res.Rel, src, out)
	}
	if r.deps.Verify {
		vr := verify.Check(ctx, parser, src, out)
		res.Issues = vr.Issues
		if !vr.OK() {
			res.Err = fmt.Errorf("%w: %d issue(s)", ErrVerifyFailed, len(vr.Issues))
			log.Error("verification failed", "issues", verify.Format(res.Rel, vr.Issues))
			return res
		}
	}

	if r.deps.Mode != ModeWrite {
		log.Info("would promote", "mode", r.deps.Mode, "edits", res.Stats.Edits)
		return res
	}
	if err := rewrite.WriteFile(path, out); err != nil {
		res.Err = fmt.Errorf("writing: %w", err)
		log.Error("write failed", "error", err)
		return res
	}
	res.Written = true
	log.Info("promoted", "edits", res.Stats.Edits, "attached", res.Stats.Attached)
	return res
}

func (r *Runner) workDir() (string, error) {
	dir := r.deps.WorkDir
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving work directory: %w", err)
	}
	return abs, nil
}

func relPath(base, path string) string {
	if rel, err := filepath.Rel(base, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}
