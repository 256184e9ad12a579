// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package structure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForPath(t *testing.T) {
	tests := []struct {
		path string
		want string
		ok   bool
	}{
		{"src/main.zig", "zig", true},
		{"lib.rs", "rust", true},
		{"LIB.RS", "rust", true},
		{"README.md", "", false},
		{"Makefile", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			p, ok := ForPath(tt.path)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, p.Name())
			}
		})
	}
}

func TestForExtension(t *testing.T) {
	p, ok := ForExtension("zig")
	require.True(t, ok)
	assert.Equal(t, "zig", p.Name())

	p, ok = ForExtension(".rs")
	require.True(t, ok)
	assert.Equal(t, "rust", p.Name())

	_, ok = ForExtension("go")
	assert.False(t, ok)
}

func TestExtensions(t *testing.T) {
	assert.Equal(t, []string{".rs", ".zig"}, Extensions())
}
