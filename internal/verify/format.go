// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package verify

import (
	"fmt"
	"strings"
)

// String renders the issue without a file name.
func (i Issue) String() string {
	switch {
	case i.Line > 0 && i.Column > 0:
		return fmt.Sprintf("%d:%d: %s", i.Line, i.Column, i.Message)
	case i.Line > 0:
		return fmt.Sprintf("%d: %s", i.Line, i.Message)
	default:
		return i.Message
	}
}

// Format renders issues one per line, each prefixed with path in the
// file:line:col form editors understand.
func Format(path string, issues []Issue) string {
	var buf strings.Builder
	for _, i := range issues {
		fmt.Fprintf(&buf, "%s: %s\n", path, i)
	}
	return buf.String()
}
