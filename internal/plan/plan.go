// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package plan turns attached plain comment units into an edit plan that
// promotes their markers from "//" to "///".
package plan

import (
	"bytes"
	"cmp"
	"slices"

	"github.com/petar-djukic/comment-doctor/pkg/types"
)

// Promotion is the text inserted after each "//" marker.
const Promotion = "/"

// Plan returns one insertion per physical line of every attached plain unit,
// sorted by descending offset. Unattached units and existing doc comments
// produce nothing. src is never modified.
func Plan(src []byte, atts []types.Attachment) types.EditPlan {
	var ins []types.Insertion
	for _, a := range atts {
		if !a.Attached() || a.Comment.Kind != types.Plain {
			continue
		}
		ins = appendUnit(ins, src, a.Comment)
	}

	slices.SortFunc(ins, func(a, b types.Insertion) int {
		return cmp.Compare(b.Offset, a.Offset)
	})
	return types.EditPlan{Insertions: ins}
}

// appendUnit adds an insertion right after the marker of every line in u.
func appendUnit(ins []types.Insertion, src []byte, u types.CommentUnit) []types.Insertion {
	end := min(u.End, len(src))
	pos := u.Start
	for pos < end {
		m := pos
		for m < end && isHorizontalSpace(src[m]) {
			m++
		}
		if m+1 < end && src[m] == '/' && src[m+1] == '/' {
			ins = append(ins, types.Insertion{Offset: m + 2, Text: Promotion})
		}

		nl := bytes.IndexByte(src[pos:end], '\n')
		if nl < 0 {
			break
		}
		pos += nl + 1
	}
	return ins
}

func isHorizontalSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\v' || c == '\f'
}
