// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package structure

import (
	"path/filepath"
	"slices"
	"strings"
)

// languages maps file extensions to their structural parser.
var languages = map[string]Parser{
	".zig": Zig{},
	".rs":  Rust{},
}

// ForPath returns the parser registered for the file's extension.
func ForPath(path string) (Parser, bool) {
	p, ok := languages[strings.ToLower(filepath.Ext(path))]
	return p, ok
}

// ForExtension returns the parser registered for ext, with or without its
// leading dot.
func ForExtension(ext string) (Parser, bool) {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	p, ok := languages[strings.ToLower(ext)]
	return p, ok
}

// Extensions returns every registered extension, sorted.
func Extensions() []string {
	exts := make([]string, 0, len(languages))
	for ext := range languages {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}
