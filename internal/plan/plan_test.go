// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package plan

import (
	"context"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/comment-doctor/internal/attach"
	"github.com/petar-djukic/comment-doctor/internal/comment"
	"github.com/petar-djukic/comment-doctor/internal/locate"
	"github.com/petar-djukic/comment-doctor/internal/structure"
	"github.com/petar-djukic/comment-doctor/pkg/types"
)

func planFor(t *testing.T, src string) types.EditPlan {
	t.Helper()
	tree, err := structure.Zig{}.Parse(context.Background(), []byte(src))
	require.NoError(t, err)
	decls, err := locate.Locate(tree, locate.Descend)
	require.NoError(t, err)
	atts := attach.Attach([]byte(src), comment.Scan([]byte(src)), decls)
	return Plan([]byte(src), atts)
}

// applyDescending applies the plan in the order given against a growing copy.
func applyDescending(src string, p types.EditPlan) string {
	out := []byte(src)
	for _, in := range p.Insertions {
		out = slices.Insert(out, in.Offset, []byte(in.Text)...)
	}
	return string(out)
}

// applyAscending applies the plan front to back, shifting each offset by the
// bytes inserted so far.
func applyAscending(src string, p types.EditPlan) string {
	ins := slices.Clone(p.Insertions)
	slices.Reverse(ins)
	out := []byte(src)
	shift := 0
	for _, in := range ins {
		out = slices.Insert(out, in.Offset+shift, []byte(in.Text)...)
		shift += len(in.Text)
	}
	return string(out)
}

func TestPlan(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		offsets []int
		want    string
	}{
		{
			name:    "scenario A",
			src:     "// hello\nconst x = 1;\n",
			offsets: []int{2},
			want:    "/// hello\nconst x = 1;\n",
		},
		{
			name:    "scenario B",
			src:     "// a\n// b\nconst x = 1;\n",
			offsets: []int{7, 2},
			want:    "/// a\n/// b\nconst x = 1;\n",
		},
		{
			name:    "scenario C",
			src:     "// orphan\n\nconst x = 1;\n",
			offsets: nil,
			want:    "// orphan\n\nconst x = 1;\n",
		},
		{
			name:    "scenario D",
			src:     "/// already doc\nconst x = 1;\n",
			offsets: nil,
			want:    "/// already doc\nconst x = 1;\n",
		},
		{
			name:    "indented block",
			src:     "const S = struct {\n    // first\n\t// second\n    a: u8,\n};\n",
			offsets: []int{35, 25},
			want:    "const S = struct {\n    /// first\n\t/// second\n    a: u8,\n};\n",
		},
		{
			name:    "several declarations",
			src:     "// one\nconst a = 1;\n// two\nconst b = 2;\n",
			offsets: []int{22, 2},
			want:    "/// one\nconst a = 1;\n/// two\nconst b = 2;\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := planFor(t, tt.src)

			var got []int
			for _, in := range p.Insertions {
				assert.Equal(t, Promotion, in.Text)
				got = append(got, in.Offset)
			}
			assert.Equal(t, tt.offsets, got)
			assert.Equal(t, tt.want, applyDescending(tt.src, p))
		})
	}
}

func TestPlan_EditOrdering(t *testing.T) {
	src := "// a\n// b\n// c\nconst x = 1;\nconst S = struct {\n    // f\n    f: u8,\n};\n"
	p := planFor(t, src)
	require.Equal(t, 4, p.Len())

	for i := 1; i < p.Len(); i++ {
		assert.Greater(t, p.Insertions[i-1].Offset, p.Insertions[i].Offset)
	}
	assert.Equal(t, applyAscending(src, p), applyDescending(src, p))
}

func TestPlan_Idempotent(t *testing.T) {
	src := "// a\n// b\nconst x = 1;\n"
	promoted := applyDescending(src, planFor(t, src))

	again := planFor(t, promoted)
	assert.True(t, again.Empty())
	assert.Zero(t, comment.Promotable(comment.Scan([]byte(promoted))))
}

func TestPlan_IgnoresUnattachedAndDocUnits(t *testing.T) {
	src := []byte("// plain\n/// doc\n")
	decl := &types.DeclarationRef{Kind: types.VarDecl, Offset: 17}
	atts := []types.Attachment{
		{Comment: types.CommentUnit{Start: 0, End: 9, Kind: types.Plain}},
		{Comment: types.CommentUnit{Start: 9, End: 17, Kind: types.DocComment}, Decl: decl},
	}

	assert.True(t, Plan(src, atts).Empty())
}

func TestPlan_EmptyCommentAtEOF(t *testing.T) {
	src := []byte("//")
	atts := []types.Attachment{{
		Comment: types.CommentUnit{Start: 0, End: 2, Kind: types.Plain},
		Decl:    &types.DeclarationRef{Kind: types.VarDecl, Offset: 2},
	}}

	p := Plan(src, atts)
	require.Equal(t, 1, p.Len())
	assert.Equal(t, 2, p.Insertions[0].Offset)
}

func TestPlan_DoesNotMutateSource(t *testing.T) {
	src := []byte("// hello\nconst x = 1;\n")
	orig := slices.Clone(src)
	atts := []types.Attachment{{
		Comment: types.CommentUnit{Start: 0, End: 9, Kind: types.Plain},
		Decl:    &types.DeclarationRef{Kind: types.VarDecl, Offset: 9},
	}}

	Plan(src, atts)
	assert.Equal(t, orig, src)
}
