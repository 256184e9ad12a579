// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package attach correlates comment units with the declarations they
// immediately precede.
//
// A plain unit is attached to the first declaration whose leading offset is
// >= the unit's end, provided only horizontal whitespace separates them. The
// bound is inclusive rather than strictly greater because a unit's end is
// already one past its final newline: a declaration starting in column zero
// of the next line sits exactly at End. Either way the declaration must begin
// on the very next line. A blank line,
// another comment, or any code in between leaves the unit unattached; the
// resolver never looks past an intervening comment to a farther declaration.
package attach

import "github.com/petar-djukic/comment-doctor/pkg/types"

// Attach returns one attachment per comment unit, in the order of comments.
// Both comments and decls must be sorted by ascending offset. Units that are
// already doc comments are reported with no declaration. If two units claim
// the same declaration the later one wins and the earlier is reported
// unattached.
func Attach(src []byte, comments []types.CommentUnit, decls []types.DeclarationRef) []types.Attachment {
	atts := make([]types.Attachment, len(comments))
	claimed := make(map[int]int) // decl index -> attachment index

	j := 0
	for i, u := range comments {
		atts[i] = types.Attachment{Comment: u}
		if u.Kind != types.Plain {
			continue
		}

		// Skip to the first decl with Offset >= u.End.
		for j < len(decls) && decls[j].Offset < u.End {
			j++
		}
		if j == len(decls) || !adjacent(src, u.End, decls[j].Offset) {
			continue
		}

		if prev, ok := claimed[j]; ok {
			atts[prev].Decl = nil
		}
		d := decls[j]
		atts[i].Decl = &d
		claimed[j] = i
	}
	return atts
}

// Attached returns only the attachments that carry a declaration.
func Attached(atts []types.Attachment) []types.Attachment {
	var out []types.Attachment
	for _, a := range atts {
		if a.Attached() {
			out = append(out, a)
		}
	}
	return out
}

// adjacent reports whether src[from:to] holds nothing but horizontal
// whitespace.
func adjacent(src []byte, from, to int) bool {
	if from < 0 || to > len(src) || from > to {
		return false
	}
	for _, c := range src[from:to] {
		switch c {
		case ' ', '\t', '\r', '\v', '\f':
		default:
			return false
		}
	}
	return true
}
