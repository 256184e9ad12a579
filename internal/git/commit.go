// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package git

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const (
	authorName  = "comment-doctor"
	authorEmail = "noreply@comment-doctor"
)

// HandleDirty checks for uncommitted changes and either commits them
// separately or returns ErrDirtyWorkTree, depending on Config.DirtyCommit.
func (r *Repo) HandleDirty() error {
	dirty, err := r.IsDirty()
	if err != nil {
		return err
	}
	if !dirty {
		return nil
	}
	if !r.cfg.DirtyCommit {
		return ErrDirtyWorkTree
	}

	wt, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}
	if _, err := wt.Add("."); err != nil {
		return fmt.Errorf("staging dirty files: %w", err)
	}
	if _, err := wt.Commit(dirtyCommitMsg, &gogit.CommitOptions{Author: signature()}); err != nil {
		return fmt.Errorf("committing dirty files: %w", err)
	}
	return nil
}

// Commit stages files and commits them with a promotion message. Paths may
// be absolute or relative to the work tree root. It returns the new commit
// hash, or the zero hash when files is empty.
func (r *Repo) Commit(files []string) (plumbing.Hash, error) {
	if len(files) == 0 {
		return plumbing.ZeroHash, nil
	}

	wt, err := r.repo.Worktree()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("getting worktree: %w", err)
	}
	root := wt.Filesystem.Root()

	rel := make([]string, 0, len(files))
	for _, f := range files {
		p, err := relativeTo(root, f)
		if err != nil {
			return plumbing.ZeroHash, err
		}
		if _, err := wt.Add(p); err != nil {
			return plumbing.ZeroHash, fmt.Errorf("staging %s: %w", p, err)
		}
		rel = append(rel, p)
	}

	hash, err := wt.Commit(GenerateMessage(rel), &gogit.CommitOptions{Author: signature()})
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("committing: %w", err)
	}
	return hash, nil
}

// Undo reverts the last commit if it was made by comment-doctor. It resets
// softly to the parent, so the promoted files stay staged.
func (r *Repo) Undo() error {
	ok, err := r.IsDoctorCommit()
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotDoctorCommit
	}

	head, err := r.repo.Head()
	if err != nil {
		return fmt.Errorf("getting HEAD: %w", err)
	}
	commit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return fmt.Errorf("getting commit: %w", err)
	}
	if commit.NumParents() == 0 {
		return errors.New("cannot undo: HEAD is the initial commit")
	}
	parent, err := commit.Parent(0)
	if err != nil {
		return fmt.Errorf("getting parent commit: %w", err)
	}

	wt, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}
	if err := wt.Reset(&gogit.ResetOptions{Commit: parent.Hash, Mode: gogit.SoftReset}); err != nil {
		return fmt.Errorf("resetting to parent: %w", err)
	}
	return nil
}

func signature() *object.Signature {
	return &object.Signature{Name: authorName, Email: authorEmail, When: time.Now()}
}

// relativeTo returns path relative to root in slash form.
func relativeTo(root, path string) (string, error) {
	if !filepath.IsAbs(path) {
		return filepath.ToSlash(filepath.Clean(path)), nil
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", fmt.Errorf("resolving %s against %s: %w", path, root, err)
	}
	return filepath.ToSlash(rel), nil
}
