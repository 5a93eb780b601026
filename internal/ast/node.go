// Package ast builds strongly typed C syntax trees from frontend cursors.
//
// Build classifies every cursor through a single factory, validates the
// structure each recognized kind requires, and links every variable
// reference to its declaration. The resulting tree is owned by its
// TranslationUnit root and is read-only once Build returns.
package ast

import "github.com/xonecas/ctree/internal/cursor"

// Node is implemented by every tree node.
type Node interface {
	Kind() cursor.Kind
	// Parent is nil only for the TranslationUnit.
	Parent() Node
	// Children are the nodes built from the cursor's children, in source
	// order, with transparent wrappers already removed.
	Children() []Node
	Offset() int
	Location() cursor.Location

	base() *node
}

// node is embedded in all node types.
type node struct {
	kind     cursor.Kind
	parent   Node
	children []Node
	loc      cursor.Location
}

func newBase(c cursor.Cursor) node {
	return node{kind: c.Kind(), loc: c.Location()}
}

func (n *node) Kind() cursor.Kind         { return n.kind }
func (n *node) Parent() Node              { return n.parent }
func (n *node) Children() []Node          { return n.children }
func (n *node) Offset() int               { return n.loc.Offset }
func (n *node) Location() cursor.Location { return n.loc }
func (n *node) base() *node               { return n }

// adopt installs children and points each one back at self in the same step.
func (n *node) adopt(self Node, children []Node) {
	n.children = children
	for _, c := range children {
		c.base().parent = self
	}
}

// Generic stands in for any kind without a dedicated node type. Its children
// are still classified, so recognized descendants remain reachable.
type Generic struct {
	node
}

func newGeneric(c cursor.Cursor, tu *TranslationUnit) (Node, error) {
	g := &Generic{node: newBase(c)}
	kids, err := buildAll(c.Children(), tu)
	if err != nil {
		return nil, err
	}
	g.adopt(g, kids)
	return g, nil
}
