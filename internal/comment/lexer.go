// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package comment finds line comments in raw source text and groups
// contiguous plain line comments into logical units.
//
// A "//" marker is taken to start a comment only when every byte before it on
// the same line is horizontal whitespace. This filters most markers embedded
// in string literals or trailing code, but it is a heuristic: the lexer does
// not track quoting, so a line that begins inside a multi-line literal is
// still read as a comment start.
package comment

import (
	"bytes"
	"iter"
	"slices"

	"github.com/petar-djukic/comment-doctor/pkg/types"
)

var marker = []byte("//")

// Scan returns every comment unit in src in ascending order of Start.
func Scan(src []byte) []types.CommentUnit {
	return slices.Collect(Units(src))
}

// Units lazily yields the comment units of src in ascending order of Start.
// Units never overlap.
func Units(src []byte) iter.Seq[types.CommentUnit] {
	return func(yield func(types.CommentUnit) bool) {
		pos := 0
		for pos < len(src) {
			idx := bytes.Index(src[pos:], marker)
			if idx < 0 {
				return
			}
			start := pos + idx
			if !startsLine(src, start) {
				pos = start + len(marker)
				continue
			}
			u := lexUnit(src, start)
			if !yield(u) {
				return
			}
			pos = u.End
		}
	}
}

// Promotable returns the number of plain units, the only kind that can be
// promoted.
func Promotable(units []types.CommentUnit) int {
	n := 0
	for _, u := range units {
		if u.Kind == types.Plain {
			n++
		}
	}
	return n
}

// lexUnit lexes the unit whose marker begins at start.
func lexUnit(src []byte, start int) types.CommentUnit {
	if kind, ok := docKind(src, start); ok {
		return types.CommentUnit{Start: start, End: lineEnd(src, start), Kind: kind}
	}

	u := types.CommentUnit{Start: start, Kind: types.Plain}
	nl := bytes.IndexByte(src[start:], '\n')
	if nl < 0 {
		u.End = len(src)
		return u
	}
	nl += start

	for {
		next, ok := continuation(src, nl)
		if !ok {
			break
		}
		u.Multiline = true
		more := bytes.IndexByte(src[next:], '\n')
		if more < 0 {
			u.End = len(src)
			return u
		}
		nl = next + more
	}
	u.End = nl + 1
	return u
}

// docKind classifies the marker at start as an existing doc comment.
func docKind(src []byte, start int) (types.CommentKind, bool) {
	i := start + len(marker)
	if i >= len(src) {
		return types.Plain, false
	}
	switch src[i] {
	case '/':
		return types.DocComment, true
	case '!':
		return types.TopLevelDoc, true
	}
	return types.Plain, false
}

// continuation probes the line after the newline at nl. It returns the offset
// of that line's "//" marker when the line is a plain comment continuation.
// Anything else, including a blank line or reaching the end of the buffer
// mid-probe, is not a continuation.
func continuation(src []byte, nl int) (int, bool) {
	i := nl + 1
	for i < len(src) && isHorizontalSpace(src[i]) {
		i++
	}
	if i+len(marker) >= len(src) {
		return 0, false
	}
	if src[i] != '/' || src[i+1] != '/' {
		return 0, false
	}
	if b := src[i+2]; b == '/' || b == '!' {
		return 0, false
	}
	return i, true
}

// startsLine reports whether only horizontal whitespace precedes offset on
// its line.
func startsLine(src []byte, offset int) bool {
	for i := offset - 1; i >= 0; i-- {
		switch {
		case src[i] == '\n':
			return true
		case !isHorizontalSpace(src[i]):
			return false
		}
	}
	return true
}

// lineEnd returns the offset just past the newline ending the line that
// contains offset, or len(src) when the line is unterminated.
func lineEnd(src []byte, offset int) int {
	nl := bytes.IndexByte(src[offset:], '\n')
	if nl < 0 {
		return len(src)
	}
	return offset + nl + 1
}

func isHorizontalSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\v', '\f':
		return true
	}
	return false
}
