// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package types defines shared types used across comment-doctor packages.
package types

import "bytes"

// CommentKind identifies the marker form of a comment unit.
type CommentKind int

const (
	Plain       CommentKind = iota // "//" line comment
	DocComment                     // "///" item documentation
	TopLevelDoc                    // "//!" documentation of the enclosing scope
)

// String returns the human-readable name of the comment kind.
func (k CommentKind) String() string {
	switch k {
	case Plain:
		return "Plain"
	case DocComment:
		return "DocComment"
	case TopLevelDoc:
		return "TopLevelDoc"
	default:
		return "Unknown"
	}
}

// CommentUnit is one logical comment: a single line comment, or a block of
// contiguous plain line comments merged together. Start and End are byte
// offsets into the source buffer, half-open. End points just past the final
// line's newline, or at the end of the buffer.
type CommentUnit struct {
	Start     int
	End       int
	Multiline bool        // true when two or more lines were merged
	Kind      CommentKind // marker form of the first line
}

// Len returns the number of bytes covered by the unit.
func (u CommentUnit) Len() int {
	return u.End - u.Start
}

// Text returns the unit's bytes within src.
func (u CommentUnit) Text(src []byte) []byte {
	return src[u.Start:u.End]
}

// Lines returns the number of physical lines covered by the unit.
func (u CommentUnit) Lines(src []byte) int {
	text := u.Text(src)
	n := bytes.Count(text, []byte{'\n'})
	if len(text) > 0 && text[len(text)-1] != '\n' {
		n++
	}
	return n
}
