package cursor

// Static is a fully materialized cursor. Frontends build Static trees so the
// result outlives the parser that produced it; tests build them by hand.
type Static struct {
	K       Kind
	Name    string
	Typ     Type
	Result  Type
	Loc     Location
	Storage StorageClass
	Kids    []*Static
	Toks    []Token
	Def     *Static
}

func (s *Static) Kind() Kind                 { return s.K }
func (s *Static) Spelling() string           { return s.Name }
func (s *Static) Type() Type                 { return s.Typ }
func (s *Static) ResultType() Type           { return s.Result }
func (s *Static) Location() Location         { return s.Loc }
func (s *Static) StorageClass() StorageClass { return s.Storage }
func (s *Static) Tokens() []Token            { return s.Toks }

// Children returns the child cursors.
func (s *Static) Children() []Cursor {
	out := make([]Cursor, len(s.Kids))
	for i, k := range s.Kids {
		out[i] = k
	}
	return out
}

// Definition returns Def when set.
func (s *Static) Definition() (Cursor, bool) {
	if s.Def == nil {
		return nil, false
	}
	return s.Def, true
}

// Add appends children and returns s for chaining.
func (s *Static) Add(kids ...*Static) *Static {
	s.Kids = append(s.Kids, kids...)
	return s
}

// Walk calls fn for s and every descendant in depth-first order.
func (s *Static) Walk(fn func(*Static)) {
	fn(s)
	for _, k := range s.Kids {
		k.Walk(fn)
	}
}

// Tokens builds a token slice from spellings, assigning sequential offsets.
func Tokens(spellings ...string) []Token {
	out := make([]Token, len(spellings))
	off := 0
	for i, sp := range spellings {
		out[i] = Token{Spelling: sp, Offset: off}
		off += len(sp) + 1
	}
	return out
}
