package ast

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/xonecas/ctree/internal/cursor"
)

// StringLiteral keeps the token verbatim, quotes and escapes included.
type StringLiteral struct {
	node
	Literal string
}

func newStringLiteral(c cursor.Cursor) (Node, error) {
	toks := c.Tokens()
	if len(toks) != 1 {
		return nil, malformed(c, "literal should have a single token, got %d", len(toks))
	}
	s := &StringLiteral{node: newBase(c), Literal: toks[0].Spelling}
	s.adopt(s, nil)
	return s, nil
}

// IntegerLiteral holds the parsed value and the original token text.
type IntegerLiteral struct {
	node
	Text  string
	Value uint64
}

func newIntegerLiteral(c cursor.Cursor) (Node, error) {
	toks := c.Tokens()
	if len(toks) != 1 {
		return nil, malformed(c, "literal should have a single token, got %d", len(toks))
	}
	text := toks[0].Spelling
	v, err := ParseInteger(text)
	if err != nil {
		return nil, malformed(c, "invalid integer literal %q: %v", text, err)
	}
	lit := &IntegerLiteral{node: newBase(c), Text: text, Value: v}
	lit.adopt(lit, nil)
	return lit, nil
}

var integerSuffix = regexp.MustCompile(`^(.*?)[uUlL]+$`)

// ParseInteger parses a C integer literal. Any run of u/U/l/L suffixes is
// dropped; a 0x/0X prefix selects base 16, a leading 0 base 8, anything else
// base 10.
func ParseInteger(text string) (uint64, error) {
	digits := text
	if m := integerSuffix.FindStringSubmatch(text); m != nil {
		digits = m[1]
	}

	base := 10
	switch {
	case strings.HasPrefix(digits, "0x"), strings.HasPrefix(digits, "0X"):
		base = 16
		digits = digits[2:]
	case len(digits) > 1 && digits[0] == '0':
		base = 8
		digits = digits[1:]
	}
	return strconv.ParseUint(digits, base, 64)
}
