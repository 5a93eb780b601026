package treesitter

import (
	"github.com/rs/zerolog/log"

	"github.com/xonecas/ctree/internal/cursor"
)

type symbol struct {
	cur        *cursor.Static
	typ        ctype
	definition bool
}

type scope map[string]*symbol

// pendingRef is a reference whose visible declaration is not a definition;
// it is linked to the file-scope definition once the whole file is seen.
type pendingRef struct {
	ref  *cursor.Static
	name string
}

func (cv *converter) push() {
	cv.scopes = append(cv.scopes, scope{})
}

func (cv *converter) pop() {
	cv.scopes = cv.scopes[:len(cv.scopes)-1]
}

func (cv *converter) declare(name string, sym *symbol) {
	if name == "" {
		return
	}
	cv.scopes[len(cv.scopes)-1][name] = sym
	if len(cv.scopes) == 1 && sym.definition {
		cv.fileDefs[name] = sym.cur
	}
}

func (cv *converter) lookup(name string) *symbol {
	for i := len(cv.scopes) - 1; i >= 0; i-- {
		if sym, ok := cv.scopes[i][name]; ok {
			return sym
		}
	}
	return nil
}

// link resolves pending references against file-scope definitions.
func (cv *converter) link() {
	for _, p := range cv.pending {
		if def, ok := cv.fileDefs[p.name]; ok {
			p.ref.Def = def
			continue
		}
		log.Debug().Str("name", p.name).Str("at", p.ref.Loc.String()).Msg("treesitter: no definition in unit")
	}
	cv.pending = nil
}
