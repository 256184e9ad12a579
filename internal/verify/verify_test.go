// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package verify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/comment-doctor/internal/structure"
)

func TestCheck(t *testing.T) {
	before := "const a = 1;\n// hello\nconst x = 1;\n"

	tests := []struct {
		name      string
		after     string
		wantOK    bool
		wantLine  int
		wantInMsg string
	}{
		{
			name:   "promoted",
			after:  "const a = 1;\n/// hello\nconst x = 1;\n",
			wantOK: true,
		},
		{
			name:      "not promoted",
			after:     before,
			wantLine:  2,
			wantInMsg: `VarDecl "x"`,
		},
		{
			name:      "no longer parses",
			after:     "const a = 1;\n/// hello\nconst x = struct {\n",
			wantInMsg: "does not analyze",
		},
		{
			name:      "declaration added",
			after:     "const a = 1;\n/// hello\nconst x = 1;\nconst y = 2;\n",
			wantInMsg: "VarDecl count changed from 2 to 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Check(context.Background(), structure.Zig{}, []byte(before), []byte(tt.after))
			assert.Equal(t, tt.wantOK, res.OK())
			if tt.wantOK {
				return
			}
			require.NotEmpty(t, res.Issues)
			assert.Contains(t, res.Issues[0].Message, tt.wantInMsg)
			assert.Equal(t, tt.wantLine, res.Issues[0].Line)
		})
	}
}

func TestCheck_MisplacedDocComments(t *testing.T) {
	tests := []struct {
		name     string
		parser   structure.Parser
		before   string
		after    string
		wantLine int
	}{
		{
			name:     "zig block binding",
			parser:   structure.Zig{},
			before:   "fn f() void {\n    // local\n    const y = 1;\n    _ = y;\n}\n",
			after:    "fn f() void {\n    /// local\n    const y = 1;\n    _ = y;\n}\n",
			wantLine: 2,
		},
		{
			name:     "rust let binding",
			parser:   structure.Rust{},
			before:   "fn main() {\n    // local\n    let s = 1;\n    drop(s);\n}\n",
			after:    "fn main() {\n    /// local\n    let s = 1;\n    drop(s);\n}\n",
			wantLine: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Check(context.Background(), tt.parser, []byte(tt.before), []byte(tt.after))
			require.Len(t, res.Issues, 1)
			assert.Equal(t, "doc comment is not in a documentable position", res.Issues[0].Message)
			assert.Equal(t, tt.wantLine, res.Issues[0].Line)
			assert.Equal(t, 5, res.Issues[0].Column)
		})
	}
}

func TestCheck_ExistingMisplacedDocIsNotReported(t *testing.T) {
	before := "fn main() {\n    /// already here\n    let s = 1;\n    drop(s);\n}\n// top\nconst X: u8 = 1;\n"
	after := "fn main() {\n    /// already here\n    let s = 1;\n    drop(s);\n}\n/// top\nconst X: u8 = 1;\n"

	res := Check(context.Background(), structure.Rust{}, []byte(before), []byte(after))
	assert.True(t, res.OK(), "%v", res.Issues)
}

func TestCheck_Column(t *testing.T) {
	src := []byte("const S = struct {\n    // width\n    w: u8,\n};\n")

	res := Check(context.Background(), structure.Zig{}, src, src)
	require.Len(t, res.Issues, 1)
	assert.Equal(t, 2, res.Issues[0].Line)
	assert.Equal(t, 5, res.Issues[0].Column)
}

func TestFormat(t *testing.T) {
	issues := []Issue{
		{Offset: 10, Line: 3, Column: 5, Message: "first"},
		{Offset: 20, Line: 4, Message: "second"},
		{Offset: -1, Message: "third"},
	}

	want := "a.zig:3:5: first\na.zig:4: second\na.zig: third\n"
	assert.Equal(t, want, Format("a.zig", issues))
	assert.Empty(t, Format("a.zig", nil))
}
