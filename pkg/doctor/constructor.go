// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"

	internaldoctor "github.com/petar-djukic/comment-doctor/internal/doctor"
	"github.com/petar-djukic/comment-doctor/internal/locate"
	"github.com/petar-djukic/comment-doctor/internal/structure"
)

// New validates the config and returns a ready-to-use Doctor. It does not
// touch any file; that happens in Run.
func New(cfg Config) (Doctor, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	strategy, _ := locate.ParseStrategy(cfg.Strategy)

	mode := internaldoctor.ModeWrite
	switch {
	case cfg.Check:
		mode = internaldoctor.ModeCheck
	case cfg.DryRun:
		mode = internaldoctor.ModeDryRun
	}

	runner := internaldoctor.NewRunner(internaldoctor.Deps{
		WorkDir:      cfg.WorkDir,
		Mode:         mode,
		Diff:         cfg.Diff,
		Verify:       cfg.Verify,
		Commit:       cfg.Commit,
		DirtyCommit:  cfg.DirtyCommit,
		Concurrency:  cfg.Concurrency,
		Strategy:     strategy,
		Extensions:   cfg.Extensions,
		UseGitignore: !cfg.NoGitignore,
		Logger:       cfg.Logger,
	})
	return &doctorAdapter{runner: runner, check: cfg.Check}, nil
}

// doctorAdapter adapts internal/doctor.Runner to the public Doctor interface.
type doctorAdapter struct {
	runner *internaldoctor.Runner
	check  bool
}

func (a *doctorAdapter) Run(ctx context.Context, paths []string) (*Result, error) {
	ir, err := a.runner.Run(ctx, paths)
	if ir == nil {
		return &Result{}, err
	}
	res := convert(ir)
	if err != nil {
		return res, err
	}
	if a.check && len(res.Changed) > 0 {
		return res, fmt.Errorf("%w: %d file(s)", ErrWouldChange, len(res.Changed))
	}
	return res, nil
}

func convert(ir *internaldoctor.RunResult) *Result {
	res := &Result{
		Changed: ir.Changed(),
		Skipped: ir.Skipped,
		Commit:  ir.Commit,
	}
	for _, f := range ir.Files {
		fr := FileResult{
			Path:    f.Rel,
			Edits:   f.Stats.Edits,
			Changed: f.Changed,
			Written: f.Written,
			Diff:    f.Diff,
		}
		for _, is := range f.Issues {
			fr.Issues = append(fr.Issues, is.String())
		}
		if f.Err != nil {
			fr.Error = f.Err.Error()
		}
		res.Files = append(res.Files, fr)
	}
	for _, fe := range ir.Errors() {
		res.Errors = append(res.Errors, fe.Error())
	}

	t := ir.Totals()
	res.Comments = t.Units
	res.Promoted = t.Attached
	res.Unchanged = t.Unattached
	res.Success = len(res.Errors) == 0
	return res
}

// validateConfig checks required fields and incompatible options.
func validateConfig(cfg Config) error {
	if cfg.WorkDir == "" {
		return errors.New("WorkDir is required")
	}
	if info, err := os.Stat(cfg.WorkDir); err != nil || !info.IsDir() {
		return fmt.Errorf("WorkDir %q does not exist or is not a directory", cfg.WorkDir)
	}
	if cfg.Check && cfg.DryRun {
		return errors.New("Check and DryRun are mutually exclusive")
	}
	if cfg.Commit && (cfg.Check || cfg.DryRun) {
		return errors.New("Commit requires write mode")
	}
	if cfg.Concurrency < 0 {
		return fmt.Errorf("Concurrency must not be negative, got %d", cfg.Concurrency)
	}
	if _, err := locate.ParseStrategy(cfg.Strategy); err != nil {
		return err
	}
	for _, ext := range cfg.Extensions {
		if _, ok := structure.ForExtension(ext); !ok {
			return fmt.Errorf("unsupported extension %q (supported: %v)", ext, structure.Extensions())
		}
	}
	return nil
}
