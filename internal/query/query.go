// Package query holds predicates and collectors over ast trees.
package query

import "github.com/xonecas/ctree/internal/ast"

// IsFunctionCall reports whether n is a call to name. With typeName empty,
// only direct calls match. With typeName set, only member calls match, and
// the member's operand must have typeName, or a pointer to it, as its
// declared or canonical type.
func IsFunctionCall(n ast.Node, name, typeName string) bool {
	call, ok := n.(*ast.CallExpr)
	if !ok {
		return false
	}
	switch fn := call.Function.(type) {
	case *ast.DeclRefExpr:
		return typeName == "" && fn.Name == name
	case *ast.MemberRefExpr:
		if typeName == "" || fn.Name != name {
			return false
		}
		return fn.Type.Matches(typeName) || fn.Type.Matches(typeName+" *")
	}
	return false
}

// Calls returns every call under root in source order.
func Calls(root ast.Node) []*ast.CallExpr {
	return ast.Collect[*ast.CallExpr](root)
}

// FindCalls returns the calls under root that IsFunctionCall accepts.
func FindCalls(root ast.Node, name, typeName string) []*ast.CallExpr {
	var out []*ast.CallExpr
	for _, c := range Calls(root) {
		if IsFunctionCall(c, name, typeName) {
			out = append(out, c)
		}
	}
	return out
}

// Callee returns the name a call targets and whether it is a member call.
// Calls through other expressions return "".
func Callee(call *ast.CallExpr) (name string, member bool) {
	switch fn := call.Function.(type) {
	case *ast.DeclRefExpr:
		return fn.Name, false
	case *ast.MemberRefExpr:
		return fn.Name, true
	}
	return "", false
}
