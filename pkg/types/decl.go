// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

// DeclKind identifies the category of a declaration-bearing node.
type DeclKind int

const (
	ContainerDecl  DeclKind = iota // struct, enum, union or opaque aggregate
	ContainerField                 // field or variant inside an aggregate
	VarDecl                        // named const or mutable binding
)

// String returns the human-readable name of the declaration kind.
func (k DeclKind) String() string {
	switch k {
	case ContainerDecl:
		return "ContainerDecl"
	case ContainerField:
		return "ContainerField"
	case VarDecl:
		return "VarDecl"
	default:
		return "Unknown"
	}
}

// DeclarationRef points at a declaration in one source snapshot.
type DeclarationRef struct {
	Node   uint32   // Opaque node id from the structural parse
	Kind   DeclKind // Declaration shape
	Offset int      // Byte offset of the declaration's leading token
	Name   string   // Declared name, empty for anonymous containers
}

// Attachment associates a comment unit with the declaration it documents.
// Decl is nil when the unit is unattached.
type Attachment struct {
	Comment CommentUnit
	Decl    *DeclarationRef
}

// Attached reports whether the unit documents a declaration.
func (a Attachment) Attached() bool {
	return a.Decl != nil
}
