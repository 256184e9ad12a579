// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package git commits promoted files and undoes the last promotion commit.
package git

import (
	"errors"
	"fmt"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const (
	// Trailer marks commits made by comment-doctor. Undo refuses any HEAD
	// commit without it.
	Trailer        = "Promoted-By: comment-doctor"
	dirtyCommitMsg = "chore: save uncommitted changes before comment promotion"
)

// ErrNotDoctorCommit is returned when undo targets a commit not made by
// comment-doctor.
var ErrNotDoctorCommit = errors.New("not a comment-doctor commit")

// ErrDirtyWorkTree is returned when uncommitted changes exist and
// DirtyCommit is false.
var ErrDirtyWorkTree = errors.New("uncommitted changes exist")

// ErrNoGit is returned when the working directory is not a git repository.
var ErrNoGit = errors.New("not a git repository")

// Config configures git integration behavior.
type Config struct {
	WorkDir     string // Repository working directory
	DirtyCommit bool   // Commit dirty files before promoting instead of failing
}

// Repo wraps a go-git repository for the operations we need.
type Repo struct {
	repo *gogit.Repository
	cfg  Config
}

// Open opens the git repository containing the configured work directory.
// Returns ErrNoGit if there is none.
func Open(cfg Config) (*Repo, error) {
	r, err := gogit.PlainOpenWithOptions(cfg.WorkDir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoGit, err)
	}
	return &Repo{repo: r, cfg: cfg}, nil
}

// Root returns the repository's work tree root.
func (r *Repo) Root() (string, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}
	return wt.Filesystem.Root(), nil
}

// IsDirty returns true if the working tree has uncommitted changes, staged
// or not, including untracked files.
func (r *Repo) IsDirty() (bool, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("getting worktree: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("getting status: %w", err)
	}

	return !status.IsClean(), nil
}

// IsDoctorCommit reports whether HEAD carries the comment-doctor trailer.
func (r *Repo) IsDoctorCommit() (bool, error) {
	msg, err := r.lastCommitMessage()
	if err != nil {
		return false, err
	}
	return strings.Contains(msg, Trailer), nil
}

// lastCommitMessage returns the message of the HEAD commit.
func (r *Repo) lastCommitMessage() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD: %w", err)
	}
	commit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return "", fmt.Errorf("getting commit: %w", err)
	}
	return commit.Message, nil
}

// commitCount returns the total number of commits reachable from HEAD.
func (r *Repo) commitCount() (int, error) {
	iter, err := r.repo.Log(&gogit.LogOptions{})
	if err != nil {
		return 0, err
	}
	count := 0
	err = iter.ForEach(func(*object.Commit) error {
		count++
		return nil
	})
	return count, err
}
