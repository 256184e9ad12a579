// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package structure

import (
	"context"

	"github.com/alexaandru/go-sitter-forest/zig"
	tree_sitter "github.com/alexaandru/go-tree-sitter-bare"
)

// zigGrammar maps tree-sitter Zig nodes onto declaration shapes. Containers
// are expressions in Zig, so a container takes the name of the binding it
// initializes. Bindings inside a block are statements.
var zigGrammar = &grammar{
	name:     "zig",
	language: tree_sitter.NewLanguage(zig.GetLanguage()),
	decls: map[string]string{
		"struct_declaration":   TagContainerDecl,
		"enum_declaration":     TagContainerDecl,
		"union_declaration":    TagContainerDecl,
		"opaque_declaration":   TagContainerDecl,
		"container_field":      TagContainerField,
		"variable_declaration": TagVarDecl,
	},
	keywords: map[string]string{
		"struct_declaration": "struct",
		"enum_declaration":   "enum",
		"union_declaration":  "union",
		"opaque_declaration": "opaque",
	},
	scopes: map[string]bool{
		"function_declaration": true,
		"test_declaration":     true,
		"comptime_declaration": true,
	},
	locals: map[string]bool{"block": true, "block_expression": true},
	prefix: map[string]bool{
		"pub":         true,
		"export":      true,
		"extern":      true,
		"threadlocal": true,
		"inline":      true,
		"noinline":    true,
	},
	names: map[string]bool{"identifier": true},
	unnamed: map[string]bool{
		"struct_declaration": true,
		"enum_declaration":   true,
		"union_declaration":  true,
		"opaque_declaration": true,
	},
	comments: map[string]bool{"comment": true, "doc_comment": true, "container_doc_comment": true},
	documented: map[string]bool{
		"variable_declaration":        true,
		"function_declaration":        true,
		"container_field":             true,
		"test_declaration":            true,
		"comptime_declaration":        true,
		"using_namespace_declaration": true,
		"parameter":                   true,
	},
}

// Zig parses Zig source files with the tree-sitter Zig grammar.
type Zig struct{}

// Name returns the language name.
func (Zig) Name() string { return zigGrammar.name }

// Parse builds the structural tree of a Zig buffer.
func (Zig) Parse(ctx context.Context, src []byte) (Tree, error) {
	t, err := zigGrammar.parse(ctx, src)
	if err != nil {
		return nil, err
	}
	return t, nil
}
