package ast

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xonecas/ctree/internal/cursor"
)

// ErrMalformed is matched by every NodeError.
var ErrMalformed = errors.New("malformed input")

// NodeError reports a cursor of a recognized kind that does not have the
// shape that kind requires. It carries the offending cursor so the failure
// can be inspected after Build returns.
type NodeError struct {
	Kind     cursor.Kind
	Spelling string
	Location cursor.Location
	Tokens   []string
	Reason   string
	Cursor   cursor.Cursor
}

func malformed(c cursor.Cursor, format string, args ...any) *NodeError {
	return &NodeError{
		Kind:     c.Kind(),
		Spelling: c.Spelling(),
		Location: c.Location(),
		Tokens:   cursor.Spellings(c),
		Reason:   fmt.Sprintf(format, args...),
		Cursor:   c,
	}
}

func (e *NodeError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Spelling != "" {
		fmt.Fprintf(&b, " %q", e.Spelling)
	}
	fmt.Fprintf(&b, " at %s: %s", e.Location, e.Reason)
	if len(e.Tokens) > 0 {
		fmt.Fprintf(&b, " (tokens: %s)", strings.Join(e.Tokens, " "))
	}
	return b.String()
}

func (e *NodeError) Unwrap() error { return ErrMalformed }
