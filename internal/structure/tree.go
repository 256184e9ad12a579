// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package structure provides the structural parses that comment-doctor
// correlates comments against. Parsers wrap tree-sitter grammars and expose
// only the declaration-bearing nodes of a file and where their leading
// tokens start.
package structure

import (
	"context"
	"errors"
)

// ErrMalformed is returned when a source buffer cannot be structurally
// parsed. Callers still may use comment spans lexed from the same buffer.
var ErrMalformed = errors.New("malformed structural parse")

// ErrNodeRange is returned when a node id is outside the parse's node table.
var ErrNodeRange = errors.New("node id out of range")

// Shape tags for nodes that carry a declaration. Tree.Tag reports the
// grammar's own node type instead.
const (
	TagContainerDecl  = "container_decl"
	TagContainerField = "container_field"
	TagVarDecl        = "var_decl"
)

// NodeID identifies a node within one Tree.
type NodeID uint32

// ContainerDecl is the shape of an aggregate declaration.
type ContainerDecl struct {
	Keyword string   // struct, enum, union, opaque
	Name    string   // Declared name, empty when anonymous
	Members []NodeID // Fields and nested declarations, in source order
}

// ContainerField is the shape of a field or variant inside an aggregate.
type ContainerField struct {
	Name  string   // Empty for tuple-style fields
	Type  []NodeID // Structural nodes found in the type expression
	Value []NodeID // Structural nodes found in the default or tag value
}

// VarDecl is the shape of a named const or mutable binding.
type VarDecl struct {
	Name    string
	Mutable bool
	Type    []NodeID // Structural nodes found in the type annotation
	Init    []NodeID // Structural nodes found in the initializer
}

// Tree is a read-only structural view of one source snapshot.
type Tree interface {
	// Len returns the size of the node table. Ids run from 0 to Len()-1.
	Len() int

	// Roots returns the top-level nodes in source order.
	Roots() []NodeID

	// Tag returns the parser's raw kind tag for a node.
	Tag(id NodeID) string

	// LeadingOffset resolves the byte offset of the node's first token.
	LeadingOffset(id NodeID) (int, error)

	// Children returns every structural child of a node in source order.
	// Declaration nodes also expose their children through their shape.
	Children(id NodeID) []NodeID

	ContainerDecl(id NodeID) (ContainerDecl, bool)
	ContainerField(id NodeID) (ContainerField, bool)
	VarDecl(id NodeID) (VarDecl, bool)
}

// DocChecker is implemented by trees that know where their language
// accepts doc comments.
type DocChecker interface {
	// MisplacedDocs returns the offsets of doc comments that do not
	// precede a documentable node, ascending.
	MisplacedDocs() []int
}

// Parser produces a Tree from a source buffer. Implementations wrap
// ErrMalformed when the buffer is rejected.
type Parser interface {
	Name() string
	Parse(ctx context.Context, src []byte) (Tree, error)
}
