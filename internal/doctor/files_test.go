// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package doctor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectFiles(t *testing.T) {
	exts := []string{".zig", "rs"}

	tests := []struct {
		name      string
		files     []string
		gitignore string
		use       bool
		want      []string
	}{
		{
			name:  "nested sources",
			files: []string{"a.zig", "src/b.rs", "src/deep/c.zig", "README.md"},
			want:  []string{"a.zig", "src/b.rs", "src/deep/c.zig"},
		},
		{
			name:  "build and vendor directories",
			files: []string{"a.zig", "zig-out/b.zig", ".zig-cache/c.zig", "target/d.rs", "vendor/e.rs", "node_modules/f.zig"},
			want:  []string{"a.zig"},
		},
		{
			name:  "extension case",
			files: []string{"A.ZIG", "b.Rs"},
			want:  []string{"A.ZIG", "b.Rs"},
		},
		{
			name:      "gitignore honored",
			files:     []string{"a.zig", "gen/b.zig", "c_test.zig"},
			gitignore: "gen/\n*_test.zig\n",
			use:       true,
			want:      []string{"a.zig"},
		},
		{
			name:      "gitignore disabled",
			files:     []string{"a.zig", "gen/b.zig"},
			gitignore: "gen/\n",
			use:       false,
			want:      []string{"a.zig", "gen/b.zig"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, f := range tt.files {
				writeFile(t, dir, f, "const x = 1;\n")
			}
			if tt.gitignore != "" {
				writeFile(t, dir, ".gitignore", tt.gitignore)
			}

			c, err := CollectFiles([]string{dir}, exts, tt.use)
			require.NoError(t, err)

			want := make([]string, len(tt.want))
			for i, w := range tt.want {
				want[i] = filepath.Join(dir, filepath.FromSlash(w))
			}
			assert.Equal(t, want, c.Files)
			assert.Empty(t, c.Skipped)
		})
	}
}

func TestCollectFiles_ExplicitFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "zig-out/gen.zig", "const g = 1;\n")
	writeFile(t, dir, "notes.txt", "notes\n")
	gen := filepath.Join(dir, "zig-out", "gen.zig")
	notes := filepath.Join(dir, "notes.txt")

	// An explicit file is taken even under a skipped directory.
	c, err := CollectFiles([]string{gen, notes, gen}, []string{".zig"}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{gen}, c.Files)
	assert.Equal(t, []string{notes}, c.Skipped)
}

func TestCollectFiles_OverlappingArguments(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/a.zig", "const a = 1;\n")
	writeFile(t, dir, "b.zig", "const b = 1;\n")

	c, err := CollectFiles([]string{filepath.Join(dir, "src"), dir}, []string{".zig"}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "b.zig"), filepath.Join(dir, "src", "a.zig")}, c.Files)
}

func TestCollectFiles_MissingPath(t *testing.T) {
	_, err := CollectFiles([]string{filepath.Join(t.TempDir(), "nope")}, []string{".zig"}, false)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
