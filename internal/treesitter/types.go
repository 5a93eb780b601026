package treesitter

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/xonecas/ctree/internal/cursor"
)

// ctype carries a type's declared and canonical spelling side by side so
// every derivation (pointer, array, function) is applied to both.
type ctype struct {
	spelling  string
	canonical string
}

var (
	intType    = ctype{"int", "int"}
	doubleType = ctype{"double", "double"}
	sizeType   = ctype{"unsigned long", "unsigned long"}
)

func (t ctype) cursor() cursor.Type {
	return cursor.Type{Spelling: t.spelling, Canonical: t.canonical}
}

func (t ctype) each(f func(string) string) ctype {
	return ctype{f(t.spelling), f(t.canonical)}
}

func (t ctype) pointer() ctype {
	return t.each(func(s string) string {
		if s == "" {
			return ""
		}
		if strings.HasSuffix(s, "*") {
			return s + "*"
		}
		return s + " *"
	})
}

func (t ctype) array(size string) ctype {
	return t.each(func(s string) string {
		if strings.HasSuffix(s, "*") {
			return s + "[" + size + "]"
		}
		return s + " [" + size + "]"
	})
}

func (t ctype) function(params ctype) ctype {
	return ctype{funcSpelling(t.spelling, params.spelling), funcSpelling(t.canonical, params.canonical)}
}

func funcSpelling(result, params string) string {
	if strings.HasSuffix(result, "*") {
		return result + "(" + params + ")"
	}
	return result + " (" + params + ")"
}

func (t ctype) funcPointer(params ctype) ctype {
	f := func(result, params string) string {
		if strings.HasSuffix(result, "*") {
			return result + "(*)(" + params + ")"
		}
		return result + " (*)(" + params + ")"
	}
	return ctype{f(t.spelling, params.spelling), f(t.canonical, params.canonical)}
}

// deref removes one level of pointer or array.
func (t ctype) deref() ctype {
	return t.each(func(s string) string {
		switch {
		case strings.HasSuffix(s, "]"):
			if i := strings.LastIndex(s, "["); i >= 0 {
				return strings.TrimSpace(s[:i])
			}
		case strings.HasSuffix(s, "*"):
			return strings.TrimSpace(strings.TrimSuffix(s, "*"))
		}
		return ""
	})
}

// result is the return type of a function or function pointer type.
func (t ctype) result() ctype {
	r := t.each(func(s string) string {
		i := strings.Index(s, "(")
		if i < 0 {
			return ""
		}
		return strings.TrimSpace(s[:i])
	})
	// A typedef'd function pointer only shows its signature canonically.
	if r.spelling == "" {
		r.spelling = r.canonical
	}
	return r
}

func qualify(quals []string, t ctype) ctype {
	if len(quals) == 0 {
		return t
	}
	prefix := strings.Join(quals, " ") + " "
	return ctype{prefix + t.spelling, prefix + t.canonical}
}

// unqualified strips leading qualifiers for struct table lookups.
func unqualified(s string) string {
	for {
		trimmed := strings.TrimPrefix(strings.TrimPrefix(strings.TrimPrefix(s, "const "), "volatile "), "restrict ")
		if trimmed == s {
			return s
		}
		s = trimmed
	}
}

// declInfo is what a declarator contributes on top of the base type.
type declInfo struct {
	name   *sitter.Node // nil for abstract declarators
	typ    ctype
	fn     *sitter.Node // function_declarator when a function is declared
	result ctype
	arrays []*sitter.Node // array size expressions
}

func (cv *converter) declarator(d *sitter.Node, base ctype, param bool) declInfo {
	info := declInfo{typ: base}
	cv.walkDeclarator(d, &info, param)
	return info
}

// walkDeclarator applies C's inside-out declarator reading. param turns the
// outermost array into a pointer, as parameter types decay.
func (cv *converter) walkDeclarator(d *sitter.Node, info *declInfo, param bool) {
	if d == nil {
		return
	}
	switch d.Type() {
	case "identifier", "type_identifier", "field_identifier", "primitive_type":
		info.name = d

	case "init_declarator", "attributed_declarator":
		cv.walkDeclarator(declaratorOf(d), info, param)

	case "pointer_declarator", "abstract_pointer_declarator":
		info.typ = info.typ.pointer()
		cv.walkDeclarator(d.ChildByFieldName("declarator"), info, param)

	case "array_declarator", "abstract_array_declarator":
		size := d.ChildByFieldName("size")
		if param {
			info.typ = info.typ.pointer()
		} else {
			info.typ = info.typ.array(cv.text(size))
		}
		if size != nil {
			info.arrays = append(info.arrays, size)
		}
		cv.walkDeclarator(d.ChildByFieldName("declarator"), info, false)

	case "function_declarator", "abstract_function_declarator":
		params := cv.paramTypes(d.ChildByFieldName("parameters"))
		inner := d.ChildByFieldName("declarator")
		if inner != nil && strings.HasSuffix(inner.Type(), "parenthesized_declarator") {
			if p := firstNamed(inner); p != nil && strings.HasSuffix(p.Type(), "pointer_declarator") {
				info.typ = info.typ.funcPointer(params)
				cv.walkDeclarator(p.ChildByFieldName("declarator"), info, false)
				return
			}
		}
		info.result = info.typ
		info.typ = info.typ.function(params)
		info.fn = d
		cv.walkDeclarator(inner, info, false)

	case "parenthesized_declarator", "abstract_parenthesized_declarator":
		cv.walkDeclarator(firstNamed(d), info, param)

	default:
		cv.walkDeclarator(firstNamed(d), info, param)
	}
}

func declaratorOf(n *sitter.Node) *sitter.Node {
	if d := n.ChildByFieldName("declarator"); d != nil {
		return d
	}
	return firstNamed(n)
}

// paramTypes spells a parameter list the way it appears in a function type.
func (cv *converter) paramTypes(list *sitter.Node) ctype {
	if list == nil {
		return ctype{}
	}
	var spell, canon []string
	for _, p := range namedChildren(list) {
		switch p.Type() {
		case "variadic_parameter":
			spell, canon = append(spell, "..."), append(canon, "...")
		case "parameter_declaration":
			spec := cv.splitDecl(p)
			base, _, _ := cv.base(spec.typ, spec.quals)
			var d *sitter.Node
			if len(spec.decls) > 0 {
				d = spec.decls[0]
			}
			t := cv.declarator(d, base, true).typ
			spell, canon = append(spell, t.spelling), append(canon, t.canonical)
		}
	}
	return ctype{strings.Join(spell, ", "), strings.Join(canon, ", ")}
}

// base computes the type named by a declaration's type specifier. extra is
// the cursor libclang would attach for it: a TYPE_REF for a named type, or
// the tag declaration itself when the specifier has a body (isDef).
func (cv *converter) base(n *sitter.Node, quals []string) (t ctype, extra *cursor.Static, isDef bool) {
	if n == nil {
		return qualify(quals, intType), nil, false
	}
	switch n.Type() {
	case "struct_specifier", "union_specifier", "enum_specifier":
		kw := strings.TrimSuffix(n.Type(), "_specifier")
		var sp string
		if name := n.ChildByFieldName("name"); name != nil {
			sp = kw + " " + cv.text(name)
		} else {
			sp = fmt.Sprintf("%s (anonymous at %s)", kw, cv.loc(n))
		}
		t = ctype{sp, sp}
		if n.ChildByFieldName("body") != nil {
			return qualify(quals, t), cv.defineTag(n, kw, t), true
		}
		return qualify(quals, t), cv.typeRef(n, sp, t), false

	case "type_identifier":
		name := cv.text(n)
		t = ctype{name, name}
		if td, ok := cv.typedefs[name]; ok {
			t.canonical = td.canonical
		}
		return qualify(quals, t), cv.typeRef(n, name, t), false

	case "sized_type_specifier":
		words := spellings(cv.tokens(n))
		if last := words[len(words)-1]; last == "unsigned" || last == "signed" {
			words = append(words, "int")
		}
		s := strings.Join(words, " ")
		return qualify(quals, ctype{s, s}), nil, false

	default:
		s := cv.text(n)
		return qualify(quals, ctype{s, s}), nil, false
	}
}

func (cv *converter) typeRef(n *sitter.Node, name string, t ctype) *cursor.Static {
	return &cursor.Static{
		K:    cursor.KindTypeRef,
		Name: name,
		Typ:  t.cursor(),
		Loc:  cv.loc(n),
		Toks: cv.tokens(n),
	}
}

// defineTag records a struct/union's field types or an enum's constants and
// returns the tag declaration cursor.
func (cv *converter) defineTag(n *sitter.Node, kw string, t ctype) *cursor.Static {
	kind := map[string]cursor.Kind{
		"struct": cursor.KindStructDecl,
		"union":  cursor.KindUnionDecl,
		"enum":   cursor.KindEnumDecl,
	}[kw]
	tag := &cursor.Static{K: kind, Typ: t.cursor(), Loc: cv.loc(n), Toks: cv.tokens(n)}
	if name := n.ChildByFieldName("name"); name != nil {
		tag.Name = cv.text(name)
		tag.Loc = cv.loc(name)
	}
	body := n.ChildByFieldName("body")

	if kw == "enum" {
		for _, e := range namedChildren(body) {
			if e.Type() != "enumerator" {
				continue
			}
			name := e.ChildByFieldName("name")
			ec := &cursor.Static{
				K:    cursor.KindEnumConstantDecl,
				Name: cv.text(name),
				Typ:  intType.cursor(),
				Loc:  cv.loc(e),
				Toks: cv.tokens(e),
			}
			if v := e.ChildByFieldName("value"); v != nil {
				ec.Kids = append(ec.Kids, cv.expr(v))
			}
			cv.declare(ec.Name, &symbol{cur: ec, typ: intType, definition: true})
			tag.Kids = append(tag.Kids, ec)
		}
		return tag
	}

	fields := make(map[string]ctype)
	for _, fd := range namedChildren(body) {
		if fd.Type() != "field_declaration" {
			continue
		}
		spec := cv.splitDecl(fd)
		fbase, fextra, _ := cv.base(spec.typ, spec.quals)
		for _, d := range spec.decls {
			info := cv.declarator(d, fbase, false)
			name := cv.text(info.name)
			fields[name] = info.typ
			fc := &cursor.Static{
				K:    cursor.KindFieldDecl,
				Name: name,
				Typ:  info.typ.cursor(),
				Loc:  cv.loc(orNode(info.name, d)),
				Toks: cv.tokens(fd),
			}
			if fextra != nil {
				fc.Kids = append(fc.Kids, fextra)
			}
			tag.Kids = append(tag.Kids, fc)
		}
	}
	cv.fields[t.canonical] = fields
	return tag
}

// memberType looks up the type of field name in the struct that operand
// designates, following one pointer level for "->".
func (cv *converter) memberType(operand ctype, op, name string) ctype {
	if op == "->" {
		operand = operand.deref()
	}
	fields, ok := cv.fields[unqualified(operand.canonical)]
	if !ok {
		return ctype{}
	}
	return fields[name]
}
