// Package cursor defines the capability a C parser frontend must provide to
// build typed syntax trees: kind-tagged cursors with children, token spans,
// type spellings, source locations and definition lookup.
package cursor

import "fmt"

// Cursor is one node of the frontend's syntax tree.
type Cursor interface {
	Kind() Kind
	// Spelling is the name the cursor introduces or refers to, if any.
	Spelling() string
	// Type is the type of the declared entity or of the expression.
	Type() Type
	// ResultType is the return type for function declarations.
	ResultType() Type
	Location() Location
	StorageClass() StorageClass
	// Children returns the immediate child cursors in source order.
	Children() []Cursor
	// Tokens returns the source tokens spanned by the cursor.
	Tokens() []Token
	// Definition resolves a reference to the cursor that defines the
	// referenced entity. ok is false when no definition is known.
	Definition() (def Cursor, ok bool)
}

// Type holds the declared and the canonical spelling of a type.
type Type struct {
	Spelling  string
	Canonical string
}

// Token is a single lexical token of the source.
type Token struct {
	Spelling string
	Offset   int
}

// Location is a position in a source file.
type Location struct {
	File   string
	Line   int // 1-indexed
	Column int // 1-indexed
	Offset int // byte offset
}

func (l Location) String() string {
	if l.File == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Spellings returns the token texts of a cursor.
func Spellings(c Cursor) []string {
	toks := c.Tokens()
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Spelling
	}
	return out
}
