// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package rewrite

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// diffContext is the number of unchanged lines shown around each change.
const diffContext = 2

type diffLine struct {
	op   diffmatchpatch.Operation
	text string
	old  int // 1-based line number in before, or of the next line for inserts
}

// Diff renders a line diff between before and after in a unified-like
// format. It returns "" when the buffers are equal.
func Diff(path string, before, after []byte) string {
	if bytes.Equal(before, after) {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(string(before), string(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var all []diffLine
	old := 1
	for _, d := range diffs {
		for _, text := range splitLines(d.Text) {
			all = append(all, diffLine{op: d.Type, text: text, old: old})
			if d.Type != diffmatchpatch.DiffInsert {
				old++
			}
		}
	}

	keep := make([]bool, len(all))
	for i, l := range all {
		if l.op == diffmatchpatch.DiffEqual {
			continue
		}
		for j := max(0, i-diffContext); j <= min(len(all)-1, i+diffContext); j++ {
			keep[j] = true
		}
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "--- a/%s\n+++ b/%s\n", path, path)
	prev := -2
	for i, l := range all {
		if !keep[i] {
			continue
		}
		if i != prev+1 {
			fmt.Fprintf(&buf, "@@ line %d @@\n", l.old)
		}
		switch l.op {
		case diffmatchpatch.DiffDelete:
			buf.WriteByte('-')
		case diffmatchpatch.DiffInsert:
			buf.WriteByte('+')
		default:
			buf.WriteByte(' ')
		}
		buf.WriteString(l.text)
		if !strings.HasSuffix(l.text, "\n") {
			buf.WriteByte('\n')
		}
		prev = i
	}
	return buf.String()
}

func splitLines(s string) []string {
	lines := strings.SplitAfter(s, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
