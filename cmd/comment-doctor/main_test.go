// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gitpkg "github.com/petar-djukic/comment-doctor/internal/git"
	"github.com/petar-djukic/comment-doctor/pkg/doctor"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// execute runs the CLI with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(viper.New())
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "comment-doctor "+version+"\n", out)
}

func TestFix(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.zig", "// A.\nconst a = 1;\n")

	out, err := execute(t, "fix", "--workdir", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "promoted a.zig (1)")
	assert.Contains(t, out, "1 file(s) scanned, 1 comment(s) promoted, 0 left unchanged")
	assert.Equal(t, "/// A.\nconst a = 1;\n", readFile(t, dir, "a.zig"))
}

func TestFix_DryRunDiff(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.zig", "// A.\nconst a = 1;\n")

	out, err := execute(t, "fix", "--workdir", dir, "--dry-run", "--diff")
	require.NoError(t, err)

	assert.Contains(t, out, "--- a/a.zig\n")
	assert.Contains(t, out, "+/// A.\n")
	assert.Contains(t, out, "would promote a.zig (1)")
	assert.Equal(t, "// A.\nconst a = 1;\n", readFile(t, dir, "a.zig"))
}

func TestCheck(t *testing.T) {
	t.Run("pending", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.zig", "// A.\nconst a = 1;\n")

		out, err := execute(t, "check", "--workdir", dir)
		assert.ErrorIs(t, err, doctor.ErrWouldChange)
		assert.Contains(t, out, "would promote a.zig")
		assert.Equal(t, "// A.\nconst a = 1;\n", readFile(t, dir, "a.zig"))
	})

	t.Run("clean", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.zig", "/// A.\nconst a = 1;\n")

		_, err := execute(t, "check", "--workdir", dir)
		assert.NoError(t, err)
	})
}

func TestFix_FileErrorFailsRun(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.zig", "const S = struct {\n")

	out, err := execute(t, "fix", "--workdir", dir)
	require.Error(t, err)
	assert.Contains(t, out, "error bad.zig")
	assert.Contains(t, out, "1 error(s)")
}

func TestFix_JSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.rs", "// A.\nconst A: u8 = 1;\n")

	out, err := execute(t, "fix", "--workdir", dir, "--json")
	require.NoError(t, err)

	var res doctor.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, []string{"a.rs"}, res.Changed)
	assert.True(t, res.Success)
}

func TestFix_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.zig", "// A.\nconst a = 1;\n")
	writeFile(t, dir, "b.rs", "// B.\nconst B: u8 = 1;\n")
	writeFile(t, dir, ".comment-doctor.yaml", "ext:\n  - rs\n")

	_, err := execute(t, "fix", "--workdir", dir)
	require.NoError(t, err)

	assert.Equal(t, "// A.\nconst a = 1;\n", readFile(t, dir, "a.zig"))
	assert.Equal(t, "/// B.\nconst B: u8 = 1;\n", readFile(t, dir, "b.rs"))
}

func TestFix_InvalidFlags(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "fix", "--workdir", dir, "--strategy", "sideways")
	assert.ErrorIs(t, err, doctor.ErrInvalidConfig)

	_, err = execute(t, "fix", "--workdir", dir, "--log-level", "loud")
	assert.Error(t, err)
}

func TestFixCommitThenUndo(t *testing.T) {
	dir := t.TempDir()
	r, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := r.Worktree()
	require.NoError(t, err)
	writeFile(t, dir, "a.zig", "// A.\nconst a = 1;\n")
	_, err = wt.Add("a.zig")
	require.NoError(t, err)
	initial, err := wt.Commit("initial commit", &gogit.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "test@test.com", When: time.Now()},
	})
	require.NoError(t, err)

	out, err := execute(t, "fix", "--workdir", dir, "--commit")
	require.NoError(t, err)
	assert.Contains(t, out, "committed ")

	head, err := r.Head()
	require.NoError(t, err)
	commit, err := r.CommitObject(head.Hash())
	require.NoError(t, err)
	assert.Contains(t, commit.Message, gitpkg.Trailer)

	out, err = execute(t, "undo", "--workdir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Reverted")

	head, err = r.Head()
	require.NoError(t, err)
	assert.Equal(t, initial, head.Hash())
	assert.Equal(t, "/// A.\nconst a = 1;\n", readFile(t, dir, "a.zig"))

	_, err = execute(t, "undo", "--workdir", dir)
	assert.ErrorIs(t, err, gitpkg.ErrNotDoctorCommit)
}

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, rel), []byte(content), 0o644))
}

func readFile(t *testing.T, dir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, rel))
	require.NoError(t, err)
	return string(data)
}
