// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package verify checks a rewritten buffer against its original: the result
// must still parse, declare the same things, hold no doc comment the grammar
// would reject, and need no further promotion.
package verify

import (
	"bytes"
	"context"
	"fmt"
	"slices"

	"github.com/petar-djukic/comment-doctor/internal/analysis"
	"github.com/petar-djukic/comment-doctor/internal/locate"
	"github.com/petar-djukic/comment-doctor/internal/structure"
	"github.com/petar-djukic/comment-doctor/pkg/types"
)

// Issue is one problem found in a rewritten buffer.
type Issue struct {
	Offset  int    // Byte offset in the rewritten buffer, -1 if unknown
	Line    int    // Line number (1-based, 0 if unknown)
	Column  int    // Column number (1-based, 0 if unknown)
	Message string // What went wrong
}

// Result holds the outcome of a check.
type Result struct {
	Issues []Issue
}

// OK reports whether the check found no issues.
func (r Result) OK() bool {
	return len(r.Issues) == 0
}

// Check re-analyzes after and compares it with before. It reports an issue
// when after no longer parses, when the number of declarations of any kind
// changed, when after holds a doc comment outside a documentable position
// that before did not, or when after still holds attached plain comments.
// after is expected to be before with the original's plan applied.
func Check(ctx context.Context, parser structure.Parser, before, after []byte) Result {
	var res Result

	orig, err := analysis.Analyze(ctx, before, parser, locate.Descend)
	if err != nil {
		res.Issues = append(res.Issues, Issue{Offset: -1, Message: fmt.Sprintf("original does not analyze: %v", err)})
		return res
	}
	next, err := analysis.Analyze(ctx, after, parser, locate.Descend)
	if err != nil {
		res.Issues = append(res.Issues, Issue{Offset: -1, Message: fmt.Sprintf("rewritten buffer does not analyze: %v", err)})
		return res
	}

	was, now := countKinds(orig.Decls), countKinds(next.Decls)
	for _, kind := range []types.DeclKind{types.ContainerDecl, types.ContainerField, types.VarDecl} {
		if was[kind] != now[kind] {
			res.Issues = append(res.Issues, Issue{
				Offset:  -1,
				Message: fmt.Sprintf("%s count changed from %d to %d", kind, was[kind], now[kind]),
			})
		}
	}

	for _, p := range newMisplacedDocs(orig, next) {
		line, col := position(after, p)
		res.Issues = append(res.Issues, Issue{
			Offset:  p,
			Line:    line,
			Column:  col,
			Message: "doc comment is not in a documentable position",
		})
	}

	for _, a := range next.Attachments {
		if !a.Attached() {
			continue
		}
		line, col := position(after, a.Comment.Start)
		res.Issues = append(res.Issues, Issue{
			Offset:  a.Comment.Start,
			Line:    line,
			Column:  col,
			Message: fmt.Sprintf("comment before %s %q is still not a doc comment", a.Decl.Kind, a.Decl.Name),
		})
	}
	return res
}

// newMisplacedDocs returns the misplaced doc comments of next that do not
// come from a misplaced doc comment already in orig.
func newMisplacedDocs(orig, next *analysis.Analysis) []int {
	nextDocs, ok := next.Tree.(structure.DocChecker)
	if !ok {
		return nil
	}
	var known []int
	if origDocs, ok := orig.Tree.(structure.DocChecker); ok {
		for _, b := range origDocs.MisplacedDocs() {
			known = append(known, shifted(orig.Plan, b))
		}
	}

	var out []int
	for _, p := range nextDocs.MisplacedDocs() {
		if !slices.Contains(known, p) {
			out = append(out, p)
		}
	}
	return out
}

// shifted maps an offset of the original buffer into the buffer produced by
// applying plan.
func shifted(plan types.EditPlan, offset int) int {
	out := offset
	for _, ins := range plan.Insertions {
		if ins.Offset <= offset {
			out += len(ins.Text)
		}
	}
	return out
}

func countKinds(decls []types.DeclarationRef) map[types.DeclKind]int {
	m := make(map[types.DeclKind]int)
	for _, d := range decls {
		m[d.Kind]++
	}
	return m
}

// position converts a byte offset into a 1-based line and column.
func position(src []byte, offset int) (line, col int) {
	offset = min(max(offset, 0), len(src))
	line = bytes.Count(src[:offset], []byte{'\n'}) + 1
	col = offset - bytes.LastIndexByte(src[:offset], '\n')
	return line, col
}
