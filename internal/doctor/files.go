// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package doctor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// ErrNoFiles is returned when the arguments expand to no source files.
var ErrNoFiles = errors.New("no source files found")

// skipDirs contains directory names that are never descended into below a
// directory argument.
var skipDirs = map[string]bool{
	".git":         true,
	".zig-cache":   true,
	"node_modules": true,
	"target":       true,
	"testdata":     true,
	"vendor":       true,
	"zig-cache":    true,
	"zig-out":      true,
}

// Collection is the outcome of expanding path arguments.
type Collection struct {
	Files   []string // Absolute paths of enabled source files, sorted
	Skipped []string // Explicit file arguments whose extension is not enabled
}

// CollectFiles expands paths into the source files to process. Directory
// arguments are walked, skipping build output and vendored trees, and,
// when useGitignore is set, anything the directory's .gitignore files
// exclude. File arguments are taken as given if their extension is in exts
// and reported as skipped otherwise. A missing argument is an error.
func CollectFiles(paths, exts []string, useGitignore bool) (*Collection, error) {
	enabled := make(map[string]bool, len(exts))
	for _, ext := range exts {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		enabled[strings.ToLower(ext)] = true
	}
	match := func(path string) bool {
		return enabled[strings.ToLower(filepath.Ext(path))]
	}

	c := &Collection{}
	seen := make(map[string]bool)
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			c.Files = append(c.Files, path)
		}
	}

	for _, arg := range paths {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", arg, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}

		if !info.IsDir() {
			if match(abs) {
				add(abs)
			} else {
				c.Skipped = append(c.Skipped, arg)
			}
			continue
		}

		files, err := walkDir(abs, match, useGitignore)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			add(f)
		}
	}

	slices.Sort(c.Files)
	return c, nil
}

func walkDir(root string, match func(string) bool, useGitignore bool) ([]string, error) {
	var ignore gitignore.Matcher
	if useGitignore {
		patterns, err := gitignore.ReadPatterns(osfs.New(root), nil)
		if err != nil {
			return nil, fmt.Errorf("reading .gitignore under %s: %w", root, err)
		}
		ignore = gitignore.NewMatcher(patterns)
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible entries
		}
		if path == root {
			return nil
		}
		if d.IsDir() && skipDirs[d.Name()] {
			return filepath.SkipDir
		}

		if ignore != nil {
			rel, relErr := filepath.Rel(root, path)
			if relErr == nil && ignore.Match(strings.Split(filepath.ToSlash(rel), "/"), d.IsDir()) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if d.Type().IsRegular() && match(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return files, nil
}
