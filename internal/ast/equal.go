package ast

// Equal reports whether two trees have the same shape, kinds, positions and
// attributes. Resolved references compare by the position of their
// declaration, so trees from two separate builds of one source are equal.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() || a.Location() != b.Location() || describe(a) != describe(b) {
		return false
	}
	ac, bc := a.Children(), b.Children()
	if len(ac) != len(bc) {
		return false
	}
	for i := range ac {
		if !Equal(ac[i], bc[i]) {
			return false
		}
	}
	return true
}
