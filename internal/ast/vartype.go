package ast

import "github.com/xonecas/ctree/internal/cursor"

// VarType is a snapshot of a type's declared and canonical spelling.
type VarType struct {
	Spelling  string // as written, e.g. "BS *"
	Canonical string // aliases expanded, e.g. "struct tag_BS *"
}

// NewVarType copies both spellings of a frontend type.
func NewVarType(t cursor.Type) VarType {
	return VarType{Spelling: t.Spelling, Canonical: t.Canonical}
}

// Matches reports whether either spelling equals s.
func (t VarType) Matches(s string) bool {
	return t.Spelling == s || t.Canonical == s
}

func (t VarType) String() string {
	if t.Canonical == "" || t.Canonical == t.Spelling {
		return t.Spelling
	}
	return t.Spelling + " (" + t.Canonical + ")"
}
