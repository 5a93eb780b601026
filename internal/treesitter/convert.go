package treesitter

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/xonecas/ctree/internal/cursor"
)

// converter turns one parse tree into cursors. It is single use.
type converter struct {
	path string
	src  []byte

	scopes   []scope
	fileDefs map[string]*cursor.Static
	pending  []pendingRef

	typedefs map[string]ctype
	fields   map[string]map[string]ctype // canonical struct spelling -> field types
}

func newConverter(path string, src []byte) *converter {
	return &converter{
		path:     path,
		src:      src,
		fileDefs: make(map[string]*cursor.Static),
		typedefs: make(map[string]ctype),
		fields:   make(map[string]map[string]ctype),
	}
}

func (cv *converter) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return content(n, cv.src)
}

func (cv *converter) loc(n *sitter.Node) cursor.Location {
	p := n.StartPoint()
	return cursor.Location{
		File:   cv.path,
		Line:   int(p.Row) + 1,
		Column: int(p.Column) + 1,
		Offset: int(n.StartByte()),
	}
}

// splitSign separates the sign the grammar folds into a number literal.
func splitSign(text string) (sign, digits string) {
	if len(text) > 1 && (text[0] == '-' || text[0] == '+') {
		return text[:1], text[1:]
	}
	return "", text
}

// atomic node types are single tokens even though the grammar gives them
// inner structure.
var atomic = map[string]bool{
	"string_literal":    true,
	"char_literal":      true,
	"number_literal":    true,
	"system_lib_string": true,
}

// tokens lists the leaf tokens spanned by ns, skipping comments.
func (cv *converter) tokens(ns ...*sitter.Node) []cursor.Token {
	var out []cursor.Token
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n.Type() == "comment" || n.StartByte() == n.EndByte() {
			return
		}
		if n.ChildCount() == 0 || atomic[n.Type()] {
			text, off := cv.text(n), int(n.StartByte())
			if n.Type() == "number_literal" {
				if sign, digits := splitSign(text); sign != "" {
					out = append(out,
						cursor.Token{Spelling: sign, Offset: off},
						cursor.Token{Spelling: digits, Offset: off + 1})
					return
				}
			}
			out = append(out, cursor.Token{Spelling: text, Offset: off})
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	for _, n := range ns {
		if n != nil {
			walk(n)
		}
	}
	return out
}

// cur starts a cursor of kind k spanning n.
func (cv *converter) cur(k cursor.Kind, n *sitter.Node) *cursor.Static {
	return &cursor.Static{K: k, Loc: cv.loc(n), Toks: cv.tokens(n)}
}

func (cv *converter) translationUnit(root *sitter.Node) *cursor.Static {
	tu := &cursor.Static{
		K:    cursor.KindTranslationUnit,
		Name: cv.path,
		Loc:  cursor.Location{File: cv.path, Line: 1, Column: 1},
		Toks: cv.tokens(root),
	}
	cv.push()
	for _, n := range namedChildren(root) {
		tu.Kids = append(tu.Kids, cv.topLevel(n)...)
	}
	cv.pop()
	cv.link()
	return tu
}

func (cv *converter) topLevel(n *sitter.Node) []*cursor.Static {
	switch n.Type() {
	case "function_definition":
		return cv.functionDefinition(n)
	case "declaration":
		return cv.declaration(n, true)
	case "type_definition":
		return cv.typeDefinition(n)
	case "struct_specifier", "union_specifier", "enum_specifier":
		return cv.tagOnly(n)
	case "preproc_if", "preproc_ifdef", "preproc_else", "preproc_elif", "preproc_elifdef":
		var out []*cursor.Static
		for _, ch := range preprocBody(n) {
			out = append(out, cv.topLevel(ch)...)
		}
		return out
	default:
		log.Debug().Str("type", n.Type()).Str("at", cv.loc(n).String()).Msg("treesitter: skipping top-level node")
		return nil
	}
}

// preprocBody returns the code inside a conditional directive, without the
// condition or macro name it tests.
func preprocBody(n *sitter.Node) []*sitter.Node {
	guard := orNode(n.ChildByFieldName("condition"), n.ChildByFieldName("name"))
	var out []*sitter.Node
	for _, ch := range namedChildren(n) {
		if !sameNode(ch, guard) {
			out = append(out, ch)
		}
	}
	return out
}

// tagOnly handles a bare "struct S { ... };".
func (cv *converter) tagOnly(n *sitter.Node) []*cursor.Static {
	_, extra, isDef := cv.base(n, nil)
	if !isDef {
		return nil
	}
	return []*cursor.Static{extra}
}

// declSpec is a declaration split at its type specifier.
type declSpec struct {
	specs   []*sitter.Node // everything up to and including the type
	typ     *sitter.Node
	quals   []string
	storage cursor.StorageClass
	decls   []*sitter.Node
}

func (cv *converter) splitDecl(n *sitter.Node) declSpec {
	var s declSpec
	s.typ = n.ChildByFieldName("type")
	seen := s.typ == nil
	for i := 0; i < int(n.ChildCount()); i++ {
		ch := n.Child(i)
		if ch.Type() == "comment" {
			continue
		}
		if !seen {
			s.specs = append(s.specs, ch)
			switch ch.Type() {
			case "storage_class_specifier":
				s.storage = storageClass(cv.text(ch))
			case "type_qualifier":
				s.quals = append(s.quals, cv.text(ch))
			}
			seen = sameNode(ch, s.typ)
			continue
		}
		if !ch.IsNamed() {
			continue
		}
		switch ch.Type() {
		case "type_qualifier":
			if len(s.decls) == 0 {
				s.quals = append(s.quals, cv.text(ch))
				s.specs = append(s.specs, ch)
			}
		case "storage_class_specifier", "attribute_specifier", "attribute_declaration",
			"ms_declspec_modifier", "bitfield_clause", "gnu_asm_expression":
		default:
			s.decls = append(s.decls, ch)
		}
	}
	return s
}

func storageClass(s string) cursor.StorageClass {
	switch s {
	case "extern":
		return cursor.StorageExtern
	case "static":
		return cursor.StorageStatic
	case "auto":
		return cursor.StorageAuto
	case "register":
		return cursor.StorageRegister
	}
	return cursor.StorageNone
}

func (cv *converter) functionDefinition(n *sitter.Node) []*cursor.Static {
	spec := cv.splitDecl(n)
	base, extra, isDef := cv.base(spec.typ, spec.quals)
	info := cv.declarator(n.ChildByFieldName("declarator"), base, false)

	fn := &cursor.Static{
		K:       cursor.KindFunctionDecl,
		Name:    cv.text(info.name),
		Typ:     info.typ.cursor(),
		Result:  info.result.cursor(),
		Loc:     cv.loc(orNode(info.name, n)),
		Storage: spec.storage,
		Toks:    cv.tokens(n),
	}
	var out []*cursor.Static
	if isDef {
		out = append(out, extra)
	} else if extra != nil {
		fn.Kids = append(fn.Kids, extra)
	}
	cv.declare(fn.Name, &symbol{cur: fn, typ: info.typ, definition: true})

	cv.push()
	fn.Kids = append(fn.Kids, cv.params(info.fn, true)...)
	if body := n.ChildByFieldName("body"); body != nil {
		fn.Kids = append(fn.Kids, cv.compound(body))
	}
	cv.pop()
	return append(out, fn)
}

// params builds PARM_DECL cursors for a function declarator, declaring them
// in the current scope when the function has a body.
func (cv *converter) params(fd *sitter.Node, declare bool) []*cursor.Static {
	if fd == nil {
		return nil
	}
	var out []*cursor.Static
	for _, p := range namedChildren(fd.ChildByFieldName("parameters")) {
		if p.Type() != "parameter_declaration" {
			continue
		}
		spec := cv.splitDecl(p)
		base, extra, isDef := cv.base(spec.typ, spec.quals)
		var d *sitter.Node
		if len(spec.decls) > 0 {
			d = spec.decls[0]
		}
		if d == nil && base.spelling == "void" {
			continue
		}
		info := cv.declarator(d, base, true)
		pc := &cursor.Static{
			K:    cursor.KindParmDecl,
			Name: cv.text(info.name),
			Typ:  info.typ.cursor(),
			Loc:  cv.loc(orNode(info.name, p)),
			Toks: cv.tokens(p),
		}
		if extra != nil && !isDef {
			pc.Kids = append(pc.Kids, extra)
		}
		if declare {
			cv.declare(pc.Name, &symbol{cur: pc, typ: info.typ, definition: true})
		}
		out = append(out, pc)
	}
	return out
}

// declaration converts a declaration. At file scope its variables are
// emitted directly; in a block they are grouped under a DECL_STMT.
func (cv *converter) declaration(n *sitter.Node, fileScope bool) []*cursor.Static {
	spec := cv.splitDecl(n)
	base, extra, isDef := cv.base(spec.typ, spec.quals)
	specToks := cv.tokens(spec.specs...)

	var out, vars []*cursor.Static
	if isDef {
		out = append(out, extra)
	}
	for _, d := range spec.decls {
		info := cv.declarator(d, base, false)
		toks := append(append([]cursor.Token(nil), specToks...), cv.tokens(d)...)
		if info.fn != nil {
			fc := &cursor.Static{
				K:       cursor.KindFunctionDecl,
				Name:    cv.text(info.name),
				Typ:     info.typ.cursor(),
				Result:  info.result.cursor(),
				Loc:     cv.loc(orNode(info.name, d)),
				Storage: spec.storage,
				Toks:    toks,
			}
			if extra != nil && !isDef {
				fc.Kids = append(fc.Kids, extra)
			}
			fc.Kids = append(fc.Kids, cv.params(info.fn, false)...)
			if prev := cv.lookup(fc.Name); prev == nil || !prev.definition {
				cv.declare(fc.Name, &symbol{cur: fc, typ: info.typ})
			}
			out = append(out, fc)
			continue
		}

		vc := &cursor.Static{
			K:       cursor.KindVarDecl,
			Name:    cv.text(info.name),
			Typ:     info.typ.cursor(),
			Loc:     cv.loc(orNode(info.name, d)),
			Storage: spec.storage,
			Toks:    toks,
		}
		if extra != nil && !isDef {
			vc.Kids = append(vc.Kids, extra)
		}
		// In scope from the end of its declarator, so before the initializer.
		cv.declare(vc.Name, &symbol{cur: vc, typ: info.typ, definition: spec.storage != cursor.StorageExtern})
		for _, size := range info.arrays {
			vc.Kids = append(vc.Kids, cv.expr(size))
		}
		if d.Type() == "init_declarator" {
			if v := d.ChildByFieldName("value"); v != nil {
				vc.Kids = append(vc.Kids, cv.expr(v))
			}
		}
		vars = append(vars, vc)
	}

	if fileScope {
		return append(out, vars...)
	}
	if len(vars) > 0 {
		ds := cv.cur(cursor.KindDeclStmt, n)
		ds.Kids = vars
		out = append(out, ds)
	}
	return out
}

func (cv *converter) typeDefinition(n *sitter.Node) []*cursor.Static {
	spec := cv.splitDecl(n)
	base, extra, isDef := cv.base(spec.typ, spec.quals)
	specToks := cv.tokens(spec.specs...)

	var out []*cursor.Static
	if isDef {
		out = append(out, extra)
	}
	for _, d := range spec.decls {
		info := cv.declarator(d, base, false)
		name := cv.text(info.name)
		cv.typedefs[name] = info.typ
		tc := &cursor.Static{
			K:    cursor.KindTypedefDecl,
			Name: name,
			Typ:  cursor.Type{Spelling: name, Canonical: info.typ.canonical},
			Loc:  cv.loc(orNode(info.name, d)),
			Toks: append(append([]cursor.Token(nil), specToks...), cv.tokens(d)...),
		}
		if extra != nil && !isDef {
			tc.Kids = append(tc.Kids, extra)
		}
		out = append(out, tc)
	}
	return out
}

func (cv *converter) compound(n *sitter.Node) *cursor.Static {
	c := cv.cur(cursor.KindCompoundStmt, n)
	cv.push()
	for _, ch := range namedChildren(n) {
		c.Kids = append(c.Kids, cv.stmt(ch)...)
	}
	cv.pop()
	return c
}

// stmt converts one statement. Declarations may yield several cursors.
func (cv *converter) stmt(n *sitter.Node) []*cursor.Static {
	if n == nil {
		return nil
	}
	one := func(c *cursor.Static) []*cursor.Static { return []*cursor.Static{c} }

	switch n.Type() {
	case "compound_statement":
		return one(cv.compound(n))
	case "declaration":
		return cv.declaration(n, false)
	case "type_definition":
		return cv.typeDefinition(n)
	case "struct_specifier", "union_specifier", "enum_specifier":
		return cv.tagOnly(n)

	case "expression_statement":
		e := firstNamed(n)
		if e == nil {
			return one(cv.cur(cursor.KindNullStmt, n))
		}
		return one(cv.expr(e))

	case "if_statement":
		c := cv.cur(cursor.KindIfStmt, n)
		c.Kids = append(c.Kids, cv.condition(n.ChildByFieldName("condition")))
		c.Kids = append(c.Kids, cv.stmt(n.ChildByFieldName("consequence"))...)
		if alt := n.ChildByFieldName("alternative"); alt != nil {
			if alt.Type() == "else_clause" {
				alt = firstNamed(alt)
			}
			c.Kids = append(c.Kids, cv.stmt(alt)...)
		}
		return one(c)

	case "for_statement":
		return one(cv.forStmt(n))

	case "while_statement":
		c := cv.cur(cursor.KindWhileStmt, n)
		c.Kids = append(c.Kids, cv.condition(n.ChildByFieldName("condition")))
		c.Kids = append(c.Kids, cv.stmt(n.ChildByFieldName("body"))...)
		return one(c)

	case "do_statement":
		c := cv.cur(cursor.KindDoStmt, n)
		c.Kids = append(c.Kids, cv.stmt(n.ChildByFieldName("body"))...)
		c.Kids = append(c.Kids, cv.condition(n.ChildByFieldName("condition")))
		return one(c)

	case "switch_statement":
		c := cv.cur(cursor.KindSwitchStmt, n)
		c.Kids = append(c.Kids, cv.condition(n.ChildByFieldName("condition")))
		c.Kids = append(c.Kids, cv.stmt(n.ChildByFieldName("body"))...)
		return one(c)

	case "case_statement":
		value := n.ChildByFieldName("value")
		c := cv.cur(cursor.KindDefaultStmt, n)
		if value != nil {
			c.K = cursor.KindCaseStmt
			c.Kids = append(c.Kids, cv.expr(value))
		}
		for _, ch := range namedChildren(n) {
			if !sameNode(ch, value) {
				c.Kids = append(c.Kids, cv.stmt(ch)...)
			}
		}
		return one(c)

	case "return_statement":
		c := cv.cur(cursor.KindReturnStmt, n)
		if e := firstNamed(n); e != nil {
			c.Kids = append(c.Kids, cv.expr(e))
		}
		return one(c)

	case "break_statement":
		return one(cv.cur(cursor.KindBreakStmt, n))
	case "continue_statement":
		return one(cv.cur(cursor.KindContinueStmt, n))
	case "goto_statement":
		c := cv.cur(cursor.KindGotoStmt, n)
		c.Name = cv.text(n.ChildByFieldName("label"))
		return one(c)

	case "labeled_statement":
		label := n.ChildByFieldName("label")
		c := cv.cur(cursor.KindLabelStmt, n)
		c.Name = cv.text(label)
		for _, ch := range namedChildren(n) {
			if !sameNode(ch, label) {
				c.Kids = append(c.Kids, cv.stmt(ch)...)
			}
		}
		return one(c)

	case "preproc_if", "preproc_ifdef", "preproc_else", "preproc_elif", "preproc_elifdef":
		var out []*cursor.Static
		for _, ch := range preprocBody(n) {
			out = append(out, cv.stmt(ch)...)
		}
		return out
	case "comment", "preproc_include", "preproc_def", "preproc_function_def", "preproc_call":
		return nil
	}
	return one(cv.expr(n))
}

// condition unwraps the parentheses of an if/while/switch/do condition.
func (cv *converter) condition(n *sitter.Node) *cursor.Static {
	if n != nil && (n.Type() == "parenthesized_expression" || n.Type() == "condition_clause") {
		if inner := firstNamed(n); inner != nil {
			return cv.expr(inner)
		}
	}
	return cv.expr(n)
}

func (cv *converter) forStmt(n *sitter.Node) *cursor.Static {
	c := cv.cur(cursor.KindForStmt, n)
	cv.push()
	defer cv.pop()

	if init := n.ChildByFieldName("initializer"); init != nil {
		if init.Type() == "declaration" {
			c.Kids = append(c.Kids, cv.declaration(init, false)...)
		} else {
			c.Kids = append(c.Kids, cv.expr(init))
		}
	}
	if cond := n.ChildByFieldName("condition"); cond != nil {
		c.Kids = append(c.Kids, cv.expr(cond))
	}
	if upd := n.ChildByFieldName("update"); upd != nil {
		c.Kids = append(c.Kids, cv.expr(upd))
	}
	c.Kids = append(c.Kids, cv.stmt(n.ChildByFieldName("body"))...)
	return c
}

var comparison = map[string]bool{
	"==": true, "!=": true, "<": true, ">": true, "<=": true, ">=": true,
	"&&": true, "||": true, "!": true,
}

func (cv *converter) expr(n *sitter.Node) *cursor.Static {
	if n == nil {
		return &cursor.Static{K: cursor.KindNotImplemented}
	}
	switch n.Type() {
	case "identifier":
		return cv.declRef(n)

	case "number_literal":
		return cv.number(n)

	case "string_literal", "concatenated_string":
		c := cv.cur(cursor.KindStringLiteral, n)
		c.Name = cv.text(n)
		size := strconv.Itoa(len(strings.Trim(c.Name, `"`)) + 1)
		c.Typ = ctype{"char", "char"}.array(size).cursor()
		return c

	case "char_literal":
		c := cv.cur(cursor.KindCharacterLiteral, n)
		c.Typ = intType.cursor()
		return c

	case "parenthesized_expression":
		c := cv.cur(cursor.KindParenExpr, n)
		inner := cv.expr(firstNamed(n))
		c.Typ = inner.Typ
		c.Kids = []*cursor.Static{inner}
		return c

	case "binary_expression", "comma_expression":
		op := cv.text(n.ChildByFieldName("operator"))
		if n.Type() == "comma_expression" {
			op = ","
		}
		return cv.binary(n, cursor.KindBinaryOperator, op)

	case "assignment_expression":
		op := cv.text(n.ChildByFieldName("operator"))
		kind := cursor.KindCompoundAssignOperator
		if op == "=" {
			kind = cursor.KindBinaryOperator
		}
		return cv.binary(n, kind, op)

	case "unary_expression", "pointer_expression", "update_expression":
		c := cv.cur(cursor.KindUnaryOperator, n)
		operand := cv.expr(n.ChildByFieldName("argument"))
		t := ctype{operand.Typ.Spelling, operand.Typ.Canonical}
		switch op := cv.text(n.ChildByFieldName("operator")); {
		case op == "*":
			t = t.deref()
		case op == "&":
			t = t.pointer()
		case comparison[op]:
			t = intType
		}
		c.Typ = t.cursor()
		c.Kids = []*cursor.Static{operand}
		return c

	case "conditional_expression":
		c := cv.cur(cursor.KindConditionalOperator, n)
		for _, f := range []string{"condition", "consequence", "alternative"} {
			c.Kids = append(c.Kids, cv.expr(n.ChildByFieldName(f)))
		}
		c.Typ = c.Kids[1].Typ
		return c

	case "call_expression":
		return cv.call(n)

	case "field_expression":
		field := n.ChildByFieldName("field")
		op := cv.text(n.ChildByFieldName("operator"))
		operand := cv.expr(n.ChildByFieldName("argument"))
		c := cv.cur(cursor.KindMemberRefExpr, n)
		c.Name = cv.text(field)
		c.Loc = cv.loc(orNode(field, n))
		c.Typ = cv.memberType(ctype{operand.Typ.Spelling, operand.Typ.Canonical}, op, c.Name).cursor()
		c.Kids = []*cursor.Static{operand}
		return c

	case "subscript_expression":
		c := cv.cur(cursor.KindArraySubscriptExpr, n)
		arg := cv.expr(n.ChildByFieldName("argument"))
		c.Kids = append(c.Kids, arg)
		if idx := n.ChildByFieldName("index"); idx != nil {
			c.Kids = append(c.Kids, cv.expr(idx))
		} else {
			for _, ch := range namedChildren(n)[1:] {
				c.Kids = append(c.Kids, cv.expr(ch))
			}
		}
		c.Typ = ctype{arg.Typ.Spelling, arg.Typ.Canonical}.deref().cursor()
		return c

	case "cast_expression":
		c := cv.cur(cursor.KindCStyleCastExpr, n)
		t, extra := cv.typeDescriptor(n.ChildByFieldName("type"))
		c.Typ = t.cursor()
		if extra != nil {
			c.Kids = append(c.Kids, extra)
		}
		c.Kids = append(c.Kids, cv.expr(n.ChildByFieldName("value")))
		return c

	case "sizeof_expression", "alignof_expression":
		c := cv.cur(cursor.KindUnaryExpr, n)
		c.Typ = sizeType.cursor()
		if v := n.ChildByFieldName("value"); v != nil {
			c.Kids = append(c.Kids, cv.expr(v))
		} else if _, extra := cv.typeDescriptor(n.ChildByFieldName("type")); extra != nil {
			c.Kids = append(c.Kids, extra)
		}
		return c

	case "initializer_list":
		c := cv.cur(cursor.KindInitListExpr, n)
		for _, ch := range namedChildren(n) {
			c.Kids = append(c.Kids, cv.expr(ch))
		}
		return c

	case "compound_literal_expression":
		c := cv.cur(cursor.KindCompoundLiteralExpr, n)
		t, extra := cv.typeDescriptor(n.ChildByFieldName("type"))
		c.Typ = t.cursor()
		if extra != nil {
			c.Kids = append(c.Kids, extra)
		}
		c.Kids = append(c.Kids, cv.expr(n.ChildByFieldName("value")))
		return c
	}

	return cv.unsupported(n)
}

// unsupported keeps the children of a node kind that has no cursor mapping.
func (cv *converter) unsupported(n *sitter.Node) *cursor.Static {
	log.Debug().Str("type", n.Type()).Str("at", cv.loc(n).String()).Msg("treesitter: no cursor kind")
	c := cv.cur(cursor.KindNotImplemented, n)
	c.Name = n.Type()
	for _, ch := range namedChildren(n) {
		c.Kids = append(c.Kids, cv.stmt(ch)...)
	}
	return c
}

func (cv *converter) binary(n *sitter.Node, kind cursor.Kind, op string) *cursor.Static {
	c := cv.cur(kind, n)
	lhs := cv.expr(n.ChildByFieldName("left"))
	rhs := cv.expr(n.ChildByFieldName("right"))
	c.Kids = []*cursor.Static{lhs, rhs}
	switch {
	case comparison[op]:
		c.Typ = intType.cursor()
	case op == ",":
		c.Typ = rhs.Typ
	default:
		c.Typ = lhs.Typ
	}
	return c
}

func (cv *converter) call(n *sitter.Node) *cursor.Static {
	callee := cv.expr(n.ChildByFieldName("function"))
	wrap := &cursor.Static{
		K:    cursor.KindUnexposedExpr,
		Name: callee.Name,
		Typ:  callee.Typ,
		Loc:  callee.Loc,
		Toks: callee.Toks,
		Kids: []*cursor.Static{callee},
	}
	c := cv.cur(cursor.KindCallExpr, n)
	c.Name = callee.Name
	c.Typ = ctype{callee.Typ.Spelling, callee.Typ.Canonical}.result().cursor()
	c.Kids = append(c.Kids, wrap)
	for _, arg := range namedChildren(n.ChildByFieldName("arguments")) {
		c.Kids = append(c.Kids, cv.expr(arg))
	}
	return c
}

func (cv *converter) typeDescriptor(td *sitter.Node) (ctype, *cursor.Static) {
	if td == nil {
		return ctype{}, nil
	}
	spec := cv.splitDecl(td)
	base, extra, isDef := cv.base(spec.typ, spec.quals)
	var d *sitter.Node
	if len(spec.decls) > 0 {
		d = spec.decls[0]
	}
	t := cv.declarator(d, base, false).typ
	if isDef {
		return t, nil
	}
	return t, extra
}

func (cv *converter) declRef(n *sitter.Node) *cursor.Static {
	c := cv.cur(cursor.KindDeclRefExpr, n)
	c.Name = cv.text(n)
	sym := cv.lookup(c.Name)
	if sym == nil {
		log.Debug().Str("name", c.Name).Str("at", c.Loc.String()).Msg("treesitter: undeclared identifier")
		return c
	}
	c.Typ = sym.typ.cursor()
	if sym.definition {
		c.Def = sym.cur
	} else {
		cv.pending = append(cv.pending, pendingRef{ref: c, name: c.Name})
	}
	return c
}

func isFloat(text string) bool {
	t := strings.ToLower(text)
	if strings.HasPrefix(t, "0x") {
		return strings.ContainsAny(t, ".p")
	}
	return strings.ContainsAny(t, ".e")
}

// number converts a number literal. A signed literal becomes a unary
// operator over the unsigned one, which is how clang sees "-1".
func (cv *converter) number(n *sitter.Node) *cursor.Static {
	toks := cv.tokens(n)
	lit := &cursor.Static{K: cursor.KindIntegerLiteral, Typ: intType.cursor(), Loc: cv.loc(n), Toks: toks}
	if _, digits := splitSign(cv.text(n)); isFloat(digits) {
		lit.K = cursor.KindFloatingLiteral
		lit.Typ = doubleType.cursor()
	}
	if len(toks) == 1 {
		return lit
	}

	op := &cursor.Static{K: cursor.KindUnaryOperator, Typ: lit.Typ, Loc: lit.Loc, Toks: toks}
	lit.Toks = toks[1:]
	lit.Loc.Column++
	lit.Loc.Offset++
	op.Kids = []*cursor.Static{lit}
	return op
}
