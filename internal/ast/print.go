package ast

import (
	"fmt"
	"io"
	"strings"

	"github.com/xonecas/ctree/internal/cursor"
)

// Fprint writes an indented dump of the tree rooted at n to w, one node per
// line with its kind, position and kind-specific attributes.
func Fprint(w io.Writer, n Node) error {
	p := &printer{w: w}
	p.print(n)
	return p.err
}

// Sprint returns the Fprint dump as a string.
func Sprint(n Node) string {
	var b strings.Builder
	_ = Fprint(&b, n)
	return b.String()
}

type printer struct {
	w      io.Writer
	indent int
	err    error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

func (p *printer) print(n Node) {
	if n == nil {
		return
	}
	loc := n.Location()
	line := fmt.Sprintf("%s <%d:%d>", n.Kind(), loc.Line, loc.Column)
	if d := describe(n); d != "" {
		line += " " + d
	}
	p.printf("%s\n", line)

	p.indent++
	for _, c := range n.Children() {
		p.print(c)
	}
	p.indent--
}

// describe renders the attributes that distinguish n from other nodes of
// the same kind.
func describe(n Node) string {
	switch n := n.(type) {
	case *TranslationUnit:
		return n.Spelling
	case *FunctionDecl:
		s := fmt.Sprintf("%s result=%q", n.Name, n.ResultType.String())
		if n.IsDefinition() {
			return s + " definition"
		}
		return s + " prototype"
	case *VarDecl:
		var b strings.Builder
		fmt.Fprintf(&b, "%s type=%q", n.Name, n.Type.String())
		if n.Storage != cursor.StorageNone {
			fmt.Fprintf(&b, " storage=%s", n.Storage)
		}
		if n.Global {
			b.WriteString(" global")
		}
		if n.Init != nil {
			b.WriteString(" init")
		}
		fmt.Fprintf(&b, " referrers=%d", len(n.Referrers))
		return b.String()
	case *ParmDecl:
		return fmt.Sprintf("%s type=%q", n.Name, n.Type.String())
	case *DeclRefExpr:
		s := fmt.Sprintf("%s type=%q", n.Name, n.Type.String())
		if n.Decl == nil {
			return s + " unresolved"
		}
		loc := n.Decl.Location()
		return fmt.Sprintf("%s decl=<%d:%d>", s, loc.Line, loc.Column)
	case *MemberRefExpr:
		return fmt.Sprintf("%s%s operand=%q", n.Operator, n.Name, n.Type.String())
	case *UnaryOperator:
		if n.Postfix {
			return fmt.Sprintf("%q postfix", n.Operator)
		}
		return fmt.Sprintf("%q", n.Operator)
	case *BinaryOperator:
		return fmt.Sprintf("%q", n.Operator)
	case *ConditionalOperator:
		return fmt.Sprintf("%q", n.Operator)
	case *CStyleCastExpr:
		return fmt.Sprintf("type=%q", n.CastType.String())
	case *StringLiteral:
		return n.Literal
	case *IntegerLiteral:
		return fmt.Sprintf("%s value=%d", n.Text, n.Value)
	case *IfStmt:
		if n.Else != nil {
			return "else"
		}
	case *ForStmt:
		var parts []string
		for _, c := range []struct {
			name string
			n    Node
		}{{"init", n.Init}, {"cond", n.Cond}, {"inc", n.Inc}} {
			if c.n != nil {
				parts = append(parts, c.name)
			}
		}
		return strings.Join(parts, " ")
	}
	return ""
}
