package ast

import "github.com/xonecas/ctree/internal/cursor"

// CompoundStmt is a { } block. Its statements are Children().
type CompoundStmt struct {
	node
}

func newCompoundStmt(c cursor.Cursor, tu *TranslationUnit) (Node, error) {
	s := &CompoundStmt{node: newBase(c)}
	kids, err := buildAll(c.Children(), tu)
	if err != nil {
		return nil, err
	}
	s.adopt(s, kids)
	return s, nil
}

// IfStmt is if (Cond) Body [else Else].
type IfStmt struct {
	node
	Cond Node
	Body Node
	Else Node
}

func newIfStmt(c cursor.Cursor, tu *TranslationUnit) (Node, error) {
	raw := c.Children()
	if len(raw) != 2 && len(raw) != 3 {
		return nil, malformed(c, "if statement should have 2 or 3 children, got %d", len(raw))
	}
	s := &IfStmt{node: newBase(c)}
	kids, err := buildAll(raw, tu)
	if err != nil {
		return nil, err
	}
	s.Cond, s.Body = kids[0], kids[1]
	if len(kids) == 3 {
		s.Else = kids[2]
	}
	s.adopt(s, kids)
	return s, nil
}

// ReturnStmt is return [Value].
type ReturnStmt struct {
	node
	Value Node
}

func newReturnStmt(c cursor.Cursor, tu *TranslationUnit) (Node, error) {
	raw := c.Children()
	if len(raw) > 1 {
		return nil, malformed(c, "return statement should have at most 1 child, got %d", len(raw))
	}
	s := &ReturnStmt{node: newBase(c)}
	kids, err := buildAll(raw, tu)
	if err != nil {
		return nil, err
	}
	if len(kids) == 1 {
		s.Value = kids[0]
	}
	s.adopt(s, kids)
	return s, nil
}

// ForStmt is for (Init; Cond; Inc) Body. Any header clause may be nil.
type ForStmt struct {
	node
	Init Node
	Cond Node
	Inc  Node
	Body Node
}

type forState int

const (
	forInitial forState = iota
	forAfterFor
	forInInit
	forInCond
	forInInc
	forBody
)

// The cursor's children omit absent header clauses, so their positions say
// nothing about which clause is missing. newForStmt walks the header tokens
// instead, skipping over each child's token span and assigning the child to
// the clause whose delimiters surround it.
func newForStmt(c cursor.Cursor, tu *TranslationUnit) (Node, error) {
	raw := c.Children()
	if len(raw) == 0 {
		return nil, malformed(c, "for statement has no body")
	}
	kids, err := buildAll(raw, tu)
	if err != nil {
		return nil, err
	}

	toks := cursor.Spellings(c)
	s := &ForStmt{node: newBase(c)}
	slots := map[forState]*Node{forInInit: &s.Init, forInCond: &s.Cond, forInInc: &s.Inc}
	delims := map[forState]string{forInInit: ";", forInCond: ";", forInInc: ")"}

	pos, next := 0, 0
	state := forInitial
	for state != forBody {
		if pos >= len(toks) {
			return nil, malformed(c, "for header ends early")
		}
		tok := toks[pos]
		switch state {
		case forInitial:
			if tok != "for" {
				return nil, malformed(c, "expected for, got %q", tok)
			}
			pos++
			state = forAfterFor
		case forAfterFor:
			if tok != "(" {
				return nil, malformed(c, "expected (, got %q", tok)
			}
			pos++
			state = forInInit
		default:
			if tok == delims[state] {
				pos++
				state++
				continue
			}
			slot := slots[state]
			if *slot != nil {
				return nil, malformed(c, "unexpected token %q in for header", tok)
			}
			if next >= len(kids)-1 {
				return nil, malformed(c, "for header clause has no matching child")
			}
			*slot = kids[next]
			pos += tokenCount(raw[next])
			next++
			// A declaration initializer owns its terminating semicolon.
			if state == forInInit && pos > 0 && pos <= len(toks) && toks[pos-1] == ";" {
				state = forInCond
			}
		}
	}

	if next != len(kids)-1 {
		return nil, malformed(c, "expected exactly one body after the for header, got %d children left", len(kids)-next)
	}
	s.Body = kids[next]
	s.adopt(s, kids)
	return s, nil
}
