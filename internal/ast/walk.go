package ast

// Inspect traverses the tree rooted at n in depth-first order, calling f for
// each node. If f returns false, the children of that node are skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, c := range n.Children() {
		Inspect(c, f)
	}
}

// Collect returns every node of type T under n, n included, in source order.
func Collect[T Node](n Node) []T {
	var out []T
	Inspect(n, func(n Node) bool {
		if t, ok := n.(T); ok {
			out = append(out, t)
		}
		return true
	})
	return out
}

// Root follows parent links up to the top of the tree.
func Root(n Node) Node {
	for n != nil && n.Parent() != nil {
		n = n.Parent()
	}
	return n
}

// Enclosing returns the nearest ancestor of n of type T.
func Enclosing[T Node](n Node) (T, bool) {
	var zero T
	if n == nil {
		return zero, false
	}
	for p := n.Parent(); p != nil; p = p.Parent() {
		if t, ok := p.(T); ok {
			return t, true
		}
	}
	return zero, false
}
