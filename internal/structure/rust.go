// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package structure

import (
	"context"

	"github.com/alexaandru/go-sitter-forest/rust"
	tree_sitter "github.com/alexaandru/go-tree-sitter-bare"
)

// rustGrammar maps tree-sitter Rust items onto declaration shapes. Functions,
// impls, traits and modules are scopes. let bindings are statements and are
// never declarations.
var rustGrammar = &grammar{
	name:     "rust",
	language: tree_sitter.NewLanguage(rust.GetLanguage()),
	decls: map[string]string{
		"struct_item":       TagContainerDecl,
		"enum_item":         TagContainerDecl,
		"union_item":        TagContainerDecl,
		"field_declaration": TagContainerField,
		"enum_variant":      TagContainerField,
		"const_item":        TagVarDecl,
		"static_item":       TagVarDecl,
	},
	keywords: map[string]string{
		"struct_item": "struct",
		"enum_item":   "enum",
		"union_item":  "union",
	},
	scopes: map[string]bool{
		"function_item": true,
		"impl_item":     true,
		"trait_item":    true,
		"mod_item":      true,
	},
	prefix:   map[string]bool{"attribute_item": true},
	names:    map[string]bool{"identifier": true, "type_identifier": true, "field_identifier": true},
	comments: map[string]bool{"line_comment": true, "block_comment": true},
	documented: map[string]bool{
		"struct_item":              true,
		"enum_item":                true,
		"union_item":               true,
		"field_declaration":        true,
		"enum_variant":             true,
		"const_item":               true,
		"static_item":              true,
		"function_item":            true,
		"function_signature_item":  true,
		"impl_item":                true,
		"trait_item":               true,
		"mod_item":                 true,
		"type_item":                true,
		"associated_type":          true,
		"macro_definition":         true,
		"use_declaration":          true,
		"extern_crate_declaration": true,
		"foreign_mod_item":         true,
	},
}

// Rust parses Rust source files with the tree-sitter Rust grammar.
type Rust struct{}

// Name returns the language name.
func (Rust) Name() string { return rustGrammar.name }

// Parse builds the structural tree of a Rust buffer.
func (Rust) Parse(ctx context.Context, src []byte) (Tree, error) {
	t, err := rustGrammar.parse(ctx, src)
	if err != nil {
		return nil, err
	}
	return t, nil
}
