// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package git

import (
	"fmt"
	"slices"
	"strings"
)

// GenerateMessage builds the commit message for a promotion touching files:
// a conventional "docs:" subject, the sorted file list, and the trailer.
func GenerateMessage(files []string) string {
	noun := "files"
	if len(files) == 1 {
		noun = "file"
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "docs: promote doc comments in %d %s", len(files), noun)
	if len(files) > 0 {
		buf.WriteString("\n\nPromoted files:\n")
		for _, f := range slices.Sorted(slices.Values(files)) {
			fmt.Fprintf(&buf, "- %s\n", f)
		}
	} else {
		buf.WriteString("\n")
	}
	buf.WriteString("\n" + Trailer + "\n")
	return buf.String()
}
