package ast

import (
	"slices"

	"github.com/xonecas/ctree/internal/cursor"
)

// BinaryOperator is a two-operand expression, including plain and compound
// assignment.
type BinaryOperator struct {
	node
	Operator string
	Operands []Node // len 2
}

// LHS returns the left operand.
func (b *BinaryOperator) LHS() Node { return b.Operands[0] }

// RHS returns the right operand.
func (b *BinaryOperator) RHS() Node { return b.Operands[1] }

// The operator is the single token between the two operand spans, so its
// index equals the left operand's token count.
func newBinaryOperator(c cursor.Cursor, tu *TranslationUnit) (Node, error) {
	raw := c.Children()
	if len(raw) != 2 {
		return nil, malformed(c, "binary operator should have 2 children, got %d", len(raw))
	}
	toks := c.Tokens()
	n0, n1 := tokenCount(raw[0]), tokenCount(raw[1])
	if len(toks) != n0+1+n1 {
		return nil, malformed(c, "token count %d does not match operands (%d + 1 + %d)", len(toks), n0, n1)
	}

	b := &BinaryOperator{node: newBase(c), Operator: toks[n0].Spelling}
	kids, err := buildAll(raw, tu)
	if err != nil {
		return nil, err
	}
	b.Operands = kids
	b.adopt(b, kids)
	return b, nil
}

// ConditionalOperator is cond ? a : b.
type ConditionalOperator struct {
	node
	Operator string // always "?:"
	Operands []Node // len 3
}

func newConditionalOperator(c cursor.Cursor, tu *TranslationUnit) (Node, error) {
	raw := c.Children()
	if len(raw) != 3 {
		return nil, malformed(c, "conditional operator should have 3 children, got %d", len(raw))
	}
	toks := c.Tokens()
	n0, n1, n2 := tokenCount(raw[0]), tokenCount(raw[1]), tokenCount(raw[2])
	if len(toks) != n0+1+n1+1+n2 {
		return nil, malformed(c, "token count %d does not match operands (%d + 1 + %d + 1 + %d)", len(toks), n0, n1, n2)
	}
	if q, col := toks[n0].Spelling, toks[n0+1+n1].Spelling; q != "?" || col != ":" {
		return nil, malformed(c, "expected ? and : separators, got %q and %q", q, col)
	}

	op := &ConditionalOperator{node: newBase(c), Operator: "?:"}
	kids, err := buildAll(raw, tu)
	if err != nil {
		return nil, err
	}
	op.Operands = kids
	op.adopt(op, kids)
	return op, nil
}

// UnaryOperator is a prefix or postfix single-operand expression.
type UnaryOperator struct {
	node
	Operator string
	Postfix  bool
	Operand  Node
}

func newUnaryOperator(c cursor.Cursor, tu *TranslationUnit) (Node, error) {
	raw := c.Children()
	if len(raw) != 1 {
		return nil, malformed(c, "unary operator should have 1 child, got %d", len(raw))
	}
	toks := cursor.Spellings(c)
	operand := cursor.Spellings(raw[0])
	if len(toks) != len(operand)+1 {
		return nil, malformed(c, "token count %d does not match operand (%d + 1)", len(toks), len(operand))
	}

	u := &UnaryOperator{node: newBase(c)}
	switch {
	case slices.Equal(toks[1:], operand):
		u.Operator = toks[0]
	case slices.Equal(toks[:len(operand)], operand):
		u.Operator = toks[len(operand)]
		u.Postfix = true
	default:
		return nil, malformed(c, "operand tokens are not a prefix or suffix of the expression")
	}

	kids, err := buildAll(raw, tu)
	if err != nil {
		return nil, err
	}
	u.Operand = kids[0]
	u.adopt(u, kids)
	return u, nil
}
