package ast

import (
	"github.com/rs/zerolog/log"

	"github.com/xonecas/ctree/internal/cursor"
)

// newNode classifies c and builds the matching node type. Kinds without a
// dedicated type fall through to Generic.
func newNode(c cursor.Cursor, tu *TranslationUnit) (Node, error) {
	switch c.Kind() {
	case cursor.KindParenExpr, cursor.KindUnexposedExpr:
		kids := c.Children()
		if len(kids) != 1 {
			return nil, malformed(c, "wrapper should have a single child, got %d", len(kids))
		}
		return newNode(kids[0], tu)

	case cursor.KindBinaryOperator, cursor.KindCompoundAssignOperator:
		return newBinaryOperator(c, tu)
	case cursor.KindConditionalOperator:
		return newConditionalOperator(c, tu)
	case cursor.KindUnaryOperator:
		return newUnaryOperator(c, tu)
	case cursor.KindCStyleCastExpr:
		return newCStyleCastExpr(c, tu)
	case cursor.KindDeclRefExpr:
		return newDeclRefExpr(c, tu)
	case cursor.KindMemberRefExpr:
		return newMemberRefExpr(c, tu)
	case cursor.KindCallExpr:
		return newCallExpr(c, tu)
	case cursor.KindStringLiteral:
		return newStringLiteral(c)
	case cursor.KindIntegerLiteral:
		return newIntegerLiteral(c)

	case cursor.KindCompoundStmt:
		return newCompoundStmt(c, tu)
	case cursor.KindDeclStmt:
		return newDeclStmt(c, tu)
	case cursor.KindIfStmt:
		return newIfStmt(c, tu)
	case cursor.KindForStmt:
		return newForStmt(c, tu)
	case cursor.KindReturnStmt:
		return newReturnStmt(c, tu)

	case cursor.KindVarDecl:
		return newVarDecl(c, tu)
	case cursor.KindParmDecl:
		return newParmDecl(c, tu)
	case cursor.KindFunctionDecl:
		return newFunctionDecl(c, tu)

	case cursor.KindTranslationUnit:
		return nil, malformed(c, "translation unit nested below the root")

	default:
		log.Debug().
			Stringer("kind", c.Kind()).
			Int("offset", c.Location().Offset).
			Msg("ast: no dedicated node type, using generic node")
		return newGeneric(c, tu)
	}
}

// buildAll classifies each cursor in order. The first failure aborts.
func buildAll(cs []cursor.Cursor, tu *TranslationUnit) ([]Node, error) {
	out := make([]Node, 0, len(cs))
	for _, c := range cs {
		n, err := newNode(c, tu)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// tokenCount is the number of tokens spanned by c.
func tokenCount(c cursor.Cursor) int {
	return len(c.Tokens())
}

func hasToken(c cursor.Cursor, spelling string) bool {
	for _, t := range c.Tokens() {
		if t.Spelling == spelling {
			return true
		}
	}
	return false
}
