// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package structure

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"fortio.org/safecast"
	tree_sitter "github.com/alexaandru/go-tree-sitter-bare"
)

// grammar describes how one tree-sitter language maps onto declaration
// shapes. Every set is keyed by tree-sitter node type.
type grammar struct {
	name     string
	language *tree_sitter.Language

	decls    map[string]string // node type to declaration shape tag
	keywords map[string]string // container node type to its keyword
	scopes   map[string]bool   // traversed and kept, but not declarations
	locals   map[string]bool   // bodies whose bindings are statements
	prefix   map[string]bool   // leading siblings that belong to the next node
	names    map[string]bool   // node types that carry a declared name
	unnamed  map[string]bool   // containers named only by their binding
	comments map[string]bool

	// documented lists the node types a doc comment may precede.
	documented map[string]bool
}

// parse runs tree-sitter over src and flattens the result into a node table
// holding only declarations and the scopes that can contain them.
func (g *grammar) parse(ctx context.Context, src []byte) (*sitterTree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parser := tree_sitter.NewParser()
	if !parser.SetLanguage(g.language) {
		return nil, fmt.Errorf("%w: %s grammar rejected", ErrMalformed, g.name)
	}
	parsed, err := parser.ParseString(ctx, nil, src)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if parsed == nil {
		return nil, fmt.Errorf("%w: empty %s parse", ErrMalformed, g.name)
	}
	defer parsed.Close()

	root := parsed.RootNode()
	if root.IsNull() {
		return nil, fmt.Errorf("%w: empty %s parse", ErrMalformed, g.name)
	}
	if root.HasError() {
		return nil, fmt.Errorf("%w: %s syntax error at offset %d", ErrMalformed, g.name, firstError(root))
	}
	return g.build(root, src)
}

type sitterNode struct {
	tag      string // declaration tag, or the tree-sitter type for scopes
	kind     string // tree-sitter node type
	offset   int
	name     string
	mutable  bool
	eq       int // offset of the "=" token, -1 when absent
	children []NodeID
}

type sitterTree struct {
	g         *grammar
	nodes     []sitterNode
	roots     []NodeID
	misplaced []int
}

type frame struct {
	node    tree_sitter.Node
	parent  int  // emitted ancestor, -1 at the top level
	lead    uint // start of the node including its prefix run
	local   bool // inside a body whose bindings are statements
	binding string
}

func (g *grammar) build(root tree_sitter.Node, src []byte) (*sitterTree, error) {
	t := &sitterTree{g: g}
	stack := []frame{{node: root, parent: -1, lead: root.StartByte()}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		parent, local, binding := f.parent, f.local, f.binding
		kind := f.node.Type()
		tag, isDecl := g.decls[kind]
		switch {
		case isDecl && tag == TagVarDecl && local:
			// Statement bindings are not declarations, but containers in
			// their initializers still are.
			binding = g.nameOf(f.node, src)
		case isDecl || g.scopes[kind]:
			if !isDecl {
				tag = kind
			}
			n, err := g.newNode(f, src, tag)
			if err != nil {
				return nil, err
			}
			if tag == TagContainerDecl {
				local = false
				if n.name == "" {
					n.name = binding
				}
			}
			binding = ""
			if tag == TagVarDecl {
				binding = n.name
			}
			id, err := t.add(n, parent)
			if err != nil {
				return nil, err
			}
			parent = int(id)
		case g.locals[kind]:
			local = true
			binding = ""
		}

		var kids []frame
		var run uint
		inRun := false
		siblings := children(f.node)
		for i, c := range siblings {
			ck := c.Type()
			lead := c.StartByte()
			if inRun {
				lead = run
			}
			if g.prefix[ck] {
				if !inRun {
					run, inRun = c.StartByte(), true
				}
			} else {
				inRun = false
			}
			if g.comments[ck] {
				if err := t.checkDoc(kind, siblings, i, local, src); err != nil {
					return nil, err
				}
				continue
			}
			kids = append(kids, frame{node: c, parent: parent, lead: lead, local: local, binding: binding})
		}
		for _, k := range slices.Backward(kids) {
			stack = append(stack, k)
		}
	}
	slices.Sort(t.misplaced)
	return t, nil
}

func (t *sitterTree) add(n sitterNode, parent int) (NodeID, error) {
	raw, err := safecast.Conv[uint32](len(t.nodes))
	if err != nil {
		return 0, fmt.Errorf("%w: node table overflow: %v", ErrMalformed, err)
	}
	id := NodeID(raw)
	t.nodes = append(t.nodes, n)
	if parent < 0 {
		t.roots = append(t.roots, id)
	} else {
		t.nodes[parent].children = append(t.nodes[parent].children, id)
	}
	return id, nil
}

func (g *grammar) newNode(f frame, src []byte, tag string) (sitterNode, error) {
	offset, err := safecast.Conv[int](f.lead)
	if err != nil {
		return sitterNode{}, fmt.Errorf("%w: offset out of range: %v", ErrMalformed, err)
	}
	n := sitterNode{tag: tag, kind: f.node.Type(), offset: offset, eq: -1}
	if !g.unnamed[n.kind] {
		n.name = g.nameOf(f.node, src)
	}
	for _, c := range children(f.node) {
		switch c.Type() {
		case "var", "mutable_specifier":
			n.mutable = true
		case "=":
			if n.eq < 0 {
				if n.eq, err = safecast.Conv[int](c.StartByte()); err != nil {
					return sitterNode{}, fmt.Errorf("%w: offset out of range: %v", ErrMalformed, err)
				}
			}
		}
	}
	return n, nil
}

// nameOf returns the text of the first direct child that carries a name.
func (g *grammar) nameOf(n tree_sitter.Node, src []byte) string {
	for _, c := range children(n) {
		if g.names[c.Type()] {
			return string(src[c.StartByte():c.EndByte()])
		}
	}
	return ""
}

// children returns the non-null children of n in source order.
func children(n tree_sitter.Node) []tree_sitter.Node {
	var out []tree_sitter.Node
	for i := range n.ChildCount() {
		if c := n.Child(i); !c.IsNull() {
			out = append(out, c)
		}
	}
	return out
}

// checkDoc records siblings[i] when it is a doc comment that does not
// precede a documentable node. A doc comment leading the children of a
// documentable parent belongs to that parent.
func (t *sitterTree) checkDoc(parent string, siblings []tree_sitter.Node, i int, local bool, src []byte) error {
	c := siblings[i]
	text := string(src[c.StartByte():c.EndByte()])
	if !strings.HasPrefix(text, "///") || strings.HasPrefix(text, "////") {
		return nil
	}

	placed := false
	if !local {
		placed = t.g.documented[parent] && t.leads(siblings[:i])
	}
	if !local && !placed {
		for _, next := range siblings[i+1:] {
			kind := next.Type()
			if t.g.comments[kind] || t.g.prefix[kind] {
				continue
			}
			placed = t.g.documented[kind]
			break
		}
	}
	if placed {
		return nil
	}
	offset, err := safecast.Conv[int](c.StartByte())
	if err != nil {
		return fmt.Errorf("%w: offset out of range: %v", ErrMalformed, err)
	}
	t.misplaced = append(t.misplaced, offset)
	return nil
}

// leads reports whether every node in prefix is a comment.
func (t *sitterTree) leads(prefix []tree_sitter.Node) bool {
	for _, n := range prefix {
		if !t.g.comments[n.Type()] {
			return false
		}
	}
	return true
}

// firstError returns the offset of the first error or missing node.
func firstError(root tree_sitter.Node) uint {
	stack := []tree_sitter.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.IsError() || n.IsMissing() {
			return n.StartByte()
		}
		kids := children(n)
		for _, c := range slices.Backward(kids) {
			if c.HasError() || c.IsMissing() {
				stack = append(stack, c)
			}
		}
	}
	return root.StartByte()
}

func (t *sitterTree) Len() int { return len(t.nodes) }

func (t *sitterTree) Roots() []NodeID { return t.roots }

// MisplacedDocs returns the offsets of doc comments that sit where the
// language does not accept them.
func (t *sitterTree) MisplacedDocs() []int { return t.misplaced }

func (t *sitterTree) get(id NodeID) (*sitterNode, bool) {
	if int(id) >= len(t.nodes) {
		return nil, false
	}
	return &t.nodes[id], true
}

func (t *sitterTree) Tag(id NodeID) string {
	n, ok := t.get(id)
	if !ok {
		return ""
	}
	return n.kind
}

func (t *sitterTree) LeadingOffset(id NodeID) (int, error) {
	n, ok := t.get(id)
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrNodeRange, id)
	}
	return n.offset, nil
}

func (t *sitterTree) Children(id NodeID) []NodeID {
	n, ok := t.get(id)
	if !ok {
		return nil
	}
	return n.children
}

// split divides a declaration's children at its "=" token.
func (t *sitterTree) split(n *sitterNode) (before, after []NodeID) {
	for _, c := range n.children {
		if n.eq >= 0 && t.nodes[c].offset > n.eq {
			after = append(after, c)
		} else {
			before = append(before, c)
		}
	}
	return before, after
}

func (t *sitterTree) ContainerDecl(id NodeID) (ContainerDecl, bool) {
	n, ok := t.get(id)
	if !ok || n.tag != TagContainerDecl {
		return ContainerDecl{}, false
	}
	return ContainerDecl{Keyword: t.g.keywords[n.kind], Name: n.name, Members: n.children}, true
}

func (t *sitterTree) ContainerField(id NodeID) (ContainerField, bool) {
	n, ok := t.get(id)
	if !ok || n.tag != TagContainerField {
		return ContainerField{}, false
	}
	typ, value := t.split(n)
	return ContainerField{Name: n.name, Type: typ, Value: value}, true
}

func (t *sitterTree) VarDecl(id NodeID) (VarDecl, bool) {
	n, ok := t.get(id)
	if !ok || n.tag != TagVarDecl {
		return VarDecl{}, false
	}
	typ, init := t.split(n)
	return VarDecl{Name: n.name, Mutable: n.mutable, Type: typ, Init: init}, true
}
