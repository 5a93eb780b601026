package ast

import "github.com/xonecas/ctree/internal/cursor"

// VarDecl is a variable declaration. Referrers lists every DeclRefExpr that
// resolved to it, in the order the references were built.
type VarDecl struct {
	node
	Name      string
	Type      VarType
	Init      Node
	Global    bool
	Storage   cursor.StorageClass
	Referrers []*DeclRefExpr
}

// The declaration is registered before its children are built so that an
// initializer referring to the variable itself resolves to it.
func newVarDecl(c cursor.Cursor, tu *TranslationUnit) (Node, error) {
	v := &VarDecl{
		node:    newBase(c),
		Name:    c.Spelling(),
		Type:    NewVarType(c.Type()),
		Storage: c.StorageClass(),
	}
	tu.register(v)

	kids, err := buildAll(c.Children(), tu)
	if err != nil {
		return nil, err
	}
	// Children also hold type references and array sizes; only an "="
	// in the declaration says the last child is an initializer.
	if hasToken(c, "=") && len(kids) > 0 {
		v.Init = kids[len(kids)-1]
	}
	v.adopt(v, kids)
	return v, nil
}

// ParmDecl is a function parameter.
type ParmDecl struct {
	node
	Name string
	Type VarType
}

func newParmDecl(c cursor.Cursor, tu *TranslationUnit) (Node, error) {
	p := &ParmDecl{node: newBase(c), Name: c.Spelling(), Type: NewVarType(c.Type())}
	kids, err := buildAll(c.Children(), tu)
	if err != nil {
		return nil, err
	}
	p.adopt(p, kids)
	return p, nil
}

// DeclStmt is a block-scope declaration of one or more variables.
type DeclStmt struct {
	node
	Decls []*VarDecl
}

func newDeclStmt(c cursor.Cursor, tu *TranslationUnit) (Node, error) {
	s := &DeclStmt{node: newBase(c)}
	kids, err := buildAll(c.Children(), tu)
	if err != nil {
		return nil, err
	}
	for i, k := range kids {
		v, ok := k.(*VarDecl)
		if !ok {
			return nil, malformed(c, "declaration statement child %d is %s, want VAR_DECL", i, k.Kind())
		}
		s.Decls = append(s.Decls, v)
	}
	s.adopt(s, kids)
	return s, nil
}

// FunctionDecl is a function prototype or definition. Body is nil for a
// prototype.
type FunctionDecl struct {
	node
	Name       string
	Type       VarType
	ResultType VarType
	Params     []*ParmDecl
	Body       *CompoundStmt
}

func newFunctionDecl(c cursor.Cursor, tu *TranslationUnit) (Node, error) {
	f := &FunctionDecl{
		node:       newBase(c),
		Name:       c.Spelling(),
		Type:       NewVarType(c.Type()),
		ResultType: NewVarType(c.ResultType()),
	}
	kids, err := buildAll(c.Children(), tu)
	if err != nil {
		return nil, err
	}
	for _, k := range kids {
		switch k := k.(type) {
		case *ParmDecl:
			f.Params = append(f.Params, k)
		case *CompoundStmt:
			if f.Body == nil {
				f.Body = k
			}
		}
	}
	f.adopt(f, kids)
	return f, nil
}

// IsDefinition reports whether the function has a body.
func (f *FunctionDecl) IsDefinition() bool { return f.Body != nil }
