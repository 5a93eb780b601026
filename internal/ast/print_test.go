package ast_test

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/exp/golden"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xonecas/ctree/internal/ast"
	"github.com/xonecas/ctree/internal/cursor"
)

func pos(line, col, off int) cursor.Location {
	return cursor.Location{File: "dump.c", Line: line, Column: col, Offset: off}
}

// dumpTree is
//
//	int g = 0x10;
//	int main(int argc) {
//	  if (argc) return g;
//	  return -1;
//	}
func dumpTree() *cursor.Static {
	intT := cursor.Type{Spelling: "int", Canonical: "int"}
	g := &cursor.Static{K: cursor.KindVarDecl, Name: "g", Typ: intT, Loc: pos(1, 5, 4),
		Toks: cursor.Tokens("int", "g", "=", "0x10", ";")}
	g.Add(&cursor.Static{K: cursor.KindIntegerLiteral, Typ: intT, Loc: pos(1, 9, 8), Toks: cursor.Tokens("0x10")})

	argc := &cursor.Static{K: cursor.KindParmDecl, Name: "argc", Typ: intT, Loc: pos(2, 14, 27),
		Toks: cursor.Tokens("int", "argc")}
	ifStmt := (&cursor.Static{K: cursor.KindIfStmt, Loc: pos(3, 3, 37)}).Add(
		&cursor.Static{K: cursor.KindDeclRefExpr, Name: "argc", Typ: intT, Loc: pos(3, 7, 41), Toks: cursor.Tokens("argc"), Def: argc},
		(&cursor.Static{K: cursor.KindReturnStmt, Loc: pos(3, 13, 47)}).Add(
			&cursor.Static{K: cursor.KindDeclRefExpr, Name: "g", Typ: intT, Loc: pos(3, 20, 54), Toks: cursor.Tokens("g"), Def: g},
		),
	)
	ret := (&cursor.Static{K: cursor.KindReturnStmt, Loc: pos(4, 3, 59)}).Add(
		(&cursor.Static{K: cursor.KindUnaryOperator, Typ: intT, Loc: pos(4, 10, 66), Toks: cursor.Tokens("-", "1")}).Add(
			&cursor.Static{K: cursor.KindIntegerLiteral, Typ: intT, Loc: pos(4, 11, 67), Toks: cursor.Tokens("1")},
		),
	)
	main := (&cursor.Static{
		K:      cursor.KindFunctionDecl,
		Name:   "main",
		Typ:    cursor.Type{Spelling: "int (int)", Canonical: "int (int)"},
		Result: intT,
		Loc:    pos(2, 5, 18),
	}).Add(argc, (&cursor.Static{K: cursor.KindCompoundStmt, Loc: pos(2, 20, 33)}).Add(ifStmt, ret))

	return (&cursor.Static{K: cursor.KindTranslationUnit, Name: "dump.c", Loc: pos(1, 1, 0)}).Add(g, main)
}

func TestDump(t *testing.T) {
	tu, err := ast.Build(dumpTree())
	require.NoError(t, err)
	golden.RequireEqual(t, []byte(ast.Sprint(tu)))
}

func TestDump_Subtree(t *testing.T) {
	tu, err := ast.Build(dumpTree())
	require.NoError(t, err)

	var b strings.Builder
	require.NoError(t, ast.Fprint(&b, tu.FuncDefs[0].Body.Children()[1]))
	assert.Equal(t, "RETURN_STMT <4:3>\n  UNARY_OPERATOR <4:10> \"-\"\n    INTEGER_LITERAL <4:11> 1 value=1\n", b.String())
}
