// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package locate enumerates the declaration-bearing nodes of a structural
// parse together with the byte offsets of their leading tokens.
package locate

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/petar-djukic/comment-doctor/internal/structure"
	"github.com/petar-djukic/comment-doctor/pkg/types"
)

// ErrUnknownStrategy is returned by ParseStrategy for unrecognized names.
var ErrUnknownStrategy = errors.New("unknown locate strategy")

// Strategy selects how the tree is traversed.
type Strategy int

const (
	// Descend walks from the root declarations through container members,
	// field type and value expressions, variable type and initializer
	// expressions, and the contents of scopes. Only reachable nodes are
	// reported.
	Descend Strategy = iota
	// Flat visits every node in the tree's node table.
	Flat
)

func (s Strategy) String() string {
	switch s {
	case Descend:
		return "descend"
	case Flat:
		return "flat"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy maps a strategy name to its value.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "", "descend":
		return Descend, nil
	case "flat":
		return Flat, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// Locate returns every declaration in tree ordered by ascending offset. A
// node matches at most one shape, tested in the order container
// declaration, container field, variable declaration. Offset resolution
// errors from the tree are returned unchanged.
func Locate(tree structure.Tree, strategy Strategy) ([]types.DeclarationRef, error) {
	var (
		refs []types.DeclarationRef
		err  error
	)
	switch strategy {
	case Descend:
		refs, err = descend(tree)
	case Flat:
		refs, err = flat(tree)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownStrategy, strategy)
	}
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(refs, func(a, b types.DeclarationRef) int {
		return cmp.Compare(a.Offset, b.Offset)
	})
	return slices.CompactFunc(refs, func(a, b types.DeclarationRef) bool {
		return a.Offset == b.Offset
	}), nil
}

func descend(tree structure.Tree) ([]types.DeclarationRef, error) {
	var refs []types.DeclarationRef
	seen := make(map[structure.NodeID]bool)

	roots := tree.Roots()
	stack := make([]structure.NodeID, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, roots[i])
	}

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[id] {
			continue
		}
		seen[id] = true

		ref, children, ok := match(tree, id)
		if ok {
			off, err := tree.LeadingOffset(id)
			if err != nil {
				return nil, err
			}
			ref.Offset = off
			refs = append(refs, ref)
		} else {
			children = tree.Children(id)
		}
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return refs, nil
}

func flat(tree structure.Tree) ([]types.DeclarationRef, error) {
	var refs []types.DeclarationRef
	for i := range tree.Len() {
		id := structure.NodeID(i)
		ref, _, ok := match(tree, id)
		if !ok {
			continue
		}
		off, err := tree.LeadingOffset(id)
		if err != nil {
			return nil, err
		}
		ref.Offset = off
		refs = append(refs, ref)
	}
	return refs, nil
}

// match tests id against the three declaration shapes and returns the
// reference (without its offset) and the shape's child nodes.
func match(tree structure.Tree, id structure.NodeID) (types.DeclarationRef, []structure.NodeID, bool) {
	ref := types.DeclarationRef{Node: uint32(id)}
	if d, ok := tree.ContainerDecl(id); ok {
		ref.Kind, ref.Name = types.ContainerDecl, d.Name
		return ref, d.Members, true
	}
	if f, ok := tree.ContainerField(id); ok {
		ref.Kind, ref.Name = types.ContainerField, f.Name
		return ref, concat(f.Type, f.Value), true
	}
	if v, ok := tree.VarDecl(id); ok {
		ref.Kind, ref.Name = types.VarDecl, v.Name
		return ref, concat(v.Type, v.Init), true
	}
	return ref, nil, false
}

func concat(a, b []structure.NodeID) []structure.NodeID {
	if len(a) == 0 {
		return b
	}
	return append(slices.Clip(a), b...)
}
