package ast

import (
	"github.com/rs/zerolog/log"

	"github.com/xonecas/ctree/internal/cursor"
)

// TranslationUnit is the root of a tree and the registry used to resolve
// variable references while the tree is built.
type TranslationUnit struct {
	node
	Spelling string

	// Globals are the file-scope variables with no storage class or static.
	Globals []*VarDecl
	// FuncDecls are all file-scope function declarations in source order.
	FuncDecls []*FunctionDecl
	// FuncDefs is the subsequence of FuncDecls that have a body.
	FuncDefs []*FunctionDecl

	decls map[int]*VarDecl // declaration offset -> declaration
	order []*VarDecl
}

// Build classifies the whole cursor tree rooted at root. A structural
// violation anywhere aborts the build with a *NodeError.
func Build(root cursor.Cursor) (*TranslationUnit, error) {
	if root.Kind() != cursor.KindTranslationUnit {
		return nil, malformed(root, "root cursor is not a translation unit")
	}
	tu := &TranslationUnit{
		node:     newBase(root),
		Spelling: root.Spelling(),
		decls:    make(map[int]*VarDecl),
	}

	kids, err := buildAll(root.Children(), tu)
	if err != nil {
		return nil, err
	}
	for _, k := range kids {
		switch k := k.(type) {
		case *VarDecl:
			if k.Storage == cursor.StorageNone || k.Storage == cursor.StorageStatic {
				k.Global = true
				tu.Globals = append(tu.Globals, k)
			}
		case *FunctionDecl:
			tu.FuncDecls = append(tu.FuncDecls, k)
			if k.IsDefinition() {
				tu.FuncDefs = append(tu.FuncDefs, k)
			}
		}
	}
	tu.adopt(tu, kids)

	log.Debug().
		Str("unit", tu.Spelling).
		Int("globals", len(tu.Globals)).
		Int("functions", len(tu.FuncDecls)).
		Int("variables", len(tu.order)).
		Msg("ast: translation unit built")
	return tu, nil
}

// register records v under its source offset.
func (tu *TranslationUnit) register(v *VarDecl) {
	if prev, ok := tu.decls[v.Offset()]; ok {
		log.Warn().
			Str("name", v.Name).
			Str("previous", prev.Name).
			Int("offset", v.Offset()).
			Msg("ast: two declarations at one offset, keeping the later")
	}
	tu.decls[v.Offset()] = v
	tu.order = append(tu.order, v)
}

// resolve links ref to the registered declaration at the offset of c's
// definition. Anything else (parameters, functions, extern-only names) stays
// unresolved.
func (tu *TranslationUnit) resolve(ref *DeclRefExpr, c cursor.Cursor) {
	def, ok := c.Definition()
	if !ok {
		return
	}
	v, ok := tu.decls[def.Location().Offset]
	if !ok {
		return
	}
	ref.Decl = v
	v.Referrers = append(v.Referrers, ref)
}

// Lookup returns the variable declared at offset.
func (tu *TranslationUnit) Lookup(offset int) (*VarDecl, bool) {
	v, ok := tu.decls[offset]
	return v, ok
}

// VarDecls returns every variable declaration in encounter order.
func (tu *TranslationUnit) VarDecls() []*VarDecl {
	return tu.order
}

// Function returns the first function declaration named name, preferring a
// definition.
func (tu *TranslationUnit) Function(name string) *FunctionDecl {
	var proto *FunctionDecl
	for _, f := range tu.FuncDecls {
		if f.Name != name {
			continue
		}
		if f.IsDefinition() {
			return f
		}
		if proto == nil {
			proto = f
		}
	}
	return proto
}
