// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package analysis runs the full promotion pipeline over one source buffer:
// lex comments, parse structure, locate declarations, resolve attachments
// and plan the edits.
package analysis

import (
	"context"
	"fmt"

	"github.com/petar-djukic/comment-doctor/internal/attach"
	"github.com/petar-djukic/comment-doctor/internal/comment"
	"github.com/petar-djukic/comment-doctor/internal/locate"
	"github.com/petar-djukic/comment-doctor/internal/plan"
	"github.com/petar-djukic/comment-doctor/internal/structure"
	"github.com/petar-djukic/comment-doctor/pkg/types"
)

// Analysis is the result of analyzing one buffer.
type Analysis struct {
	Comments    []types.CommentUnit    // Every comment unit, ascending
	Decls       []types.DeclarationRef // Every declaration, ascending
	Attachments []types.Attachment     // One per comment unit
	Plan        types.EditPlan         // Insertions promoting attached units
	Tree        structure.Tree         // Structural parse, nil when parsing failed
}

// Stats summarizes an analysis.
type Stats struct {
	Units      int // All comment units
	DocUnits   int // Units already in doc comment form
	Attached   int // Plain units attached to a declaration
	Unattached int // Plain units left alone
	Edits      int // Insertions in the plan
}

// Stats counts the analysis's units, attachments and edits.
func (a *Analysis) Stats() Stats {
	s := Stats{Units: len(a.Comments), Edits: a.Plan.Len()}
	for _, u := range a.Comments {
		if u.Kind != types.Plain {
			s.DocUnits++
		}
	}
	for _, att := range a.Attachments {
		if att.Attached() {
			s.Attached++
		}
	}
	s.Unattached = s.Units - s.DocUnits - s.Attached
	return s
}

// Analyze runs the pipeline over src. When the structural parse fails, the
// returned Analysis still holds the comment units and the error wraps the
// parser's error, so callers can use errors.Is(err, structure.ErrMalformed).
func Analyze(ctx context.Context, src []byte, parser structure.Parser, strategy locate.Strategy) (*Analysis, error) {
	a := &Analysis{Comments: comment.Scan(src)}

	tree, err := parser.Parse(ctx, src)
	if err != nil {
		return a, fmt.Errorf("parsing %s: %w", parser.Name(), err)
	}
	a.Tree = tree
	decls, err := locate.Locate(tree, strategy)
	if err != nil {
		return a, fmt.Errorf("locating declarations: %w", err)
	}

	a.Decls = decls
	a.Attachments = attach.Attach(src, a.Comments, decls)
	a.Plan = plan.Plan(src, a.Attachments)
	return a, nil
}
