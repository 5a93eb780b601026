package ast

import "github.com/xonecas/ctree/internal/cursor"

// DeclRefExpr is a use of a named entity. Decl is set when the entity is a
// variable declared in this translation unit.
type DeclRefExpr struct {
	node
	Name string
	Type VarType
	Decl *VarDecl
}

func newDeclRefExpr(c cursor.Cursor, tu *TranslationUnit) (Node, error) {
	ref := &DeclRefExpr{
		node: newBase(c),
		Name: c.Spelling(),
		Type: NewVarType(c.Type()),
	}
	kids, err := buildAll(c.Children(), tu)
	if err != nil {
		return nil, err
	}
	ref.adopt(ref, kids)
	tu.resolve(ref, c)
	return ref, nil
}

// Resolved reports whether the reference was linked to a declaration.
func (r *DeclRefExpr) Resolved() bool { return r.Decl != nil }

// MemberRefExpr is operand.Name or operand->Name. Type is the operand's type,
// which is what call-target matching compares against.
type MemberRefExpr struct {
	node
	Name     string
	Type     VarType
	Operator string // "." or "->"
	Operand  Node
}

func newMemberRefExpr(c cursor.Cursor, tu *TranslationUnit) (Node, error) {
	raw := c.Children()
	if len(raw) != 1 {
		return nil, malformed(c, "member reference should have 1 child, got %d", len(raw))
	}
	toks := c.Tokens()
	n := tokenCount(raw[0])
	if len(toks) <= n {
		return nil, malformed(c, "no operator token after operand (%d tokens)", len(toks))
	}
	op := toks[n].Spelling
	if op != "." && op != "->" {
		return nil, malformed(c, "expected . or -> after operand, got %q", op)
	}

	m := &MemberRefExpr{
		node:     newBase(c),
		Name:     c.Spelling(),
		Type:     NewVarType(raw[0].Type()),
		Operator: op,
	}
	kids, err := buildAll(raw, tu)
	if err != nil {
		return nil, err
	}
	m.Operand = kids[0]
	m.adopt(m, kids)
	return m, nil
}

// CallExpr is a function call. Function is usually a DeclRefExpr or a
// MemberRefExpr but any expression is accepted.
type CallExpr struct {
	node
	Function Node
	Args     []Node
}

func newCallExpr(c cursor.Cursor, tu *TranslationUnit) (Node, error) {
	raw := c.Children()
	if len(raw) == 0 {
		return nil, malformed(c, "call expression has no callee")
	}
	call := &CallExpr{node: newBase(c)}
	kids, err := buildAll(raw, tu)
	if err != nil {
		return nil, err
	}
	call.Function = kids[0]
	call.Args = kids[1:]
	call.adopt(call, kids)
	return call, nil
}

// CStyleCastExpr is (type)operand.
type CStyleCastExpr struct {
	node
	CastType VarType
	Operand  Node
}

// A cast to a named type carries a TYPE_REF child ahead of the operand.
func newCStyleCastExpr(c cursor.Cursor, tu *TranslationUnit) (Node, error) {
	raw := c.Children()
	var operand int
	switch {
	case len(raw) == 1:
		operand = 0
	case len(raw) == 2 && raw[0].Kind() == cursor.KindTypeRef:
		operand = 1
	default:
		return nil, malformed(c, "cast should have an operand optionally preceded by a type reference, got %d children", len(raw))
	}

	cast := &CStyleCastExpr{node: newBase(c), CastType: NewVarType(c.Type())}
	kids, err := buildAll(raw, tu)
	if err != nil {
		return nil, err
	}
	cast.Operand = kids[operand]
	cast.adopt(cast, kids)
	return cast, nil
}
