// Package treesitter is a C frontend built on tree-sitter. It parses source
// into a cursor.Static tree shaped the way libclang presents the same code:
// the same cursor kinds, token spans, type spellings and definition links.
package treesitter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"

	"github.com/xonecas/ctree/internal/cursor"
)

// langForExt returns the tree-sitter language for a file extension, or nil.
func langForExt(ext string) *sitter.Language {
	switch ext {
	case ".c", ".h":
		return c.GetLanguage()
	default:
		return nil
	}
}

// Supported returns true if the file extension has a tree-sitter grammar.
func Supported(path string) bool {
	return langForExt(strings.ToLower(filepath.Ext(path))) != nil
}

// ParseFile reads and parses a file into a translation unit cursor.
func ParseFile(ctx context.Context, path string) (*cursor.Static, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSource(ctx, path, src)
}

// ParseSource parses C source and returns its translation unit cursor.
// Source that does not parse cleanly is rejected.
func ParseSource(ctx context.Context, path string, src []byte) (*cursor.Static, error) {
	lang := langForExt(strings.ToLower(filepath.Ext(path)))
	if lang == nil {
		return nil, fmt.Errorf("parse %s: unsupported file type", path)
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		bad := firstError(root)
		p := bad.StartPoint()
		return nil, fmt.Errorf("parse %s: syntax error at %d:%d near %q",
			path, p.Row+1, p.Column+1, excerpt(bad.Content(src)))
	}

	cv := newConverter(path, src)
	tu := cv.translationUnit(root)
	log.Debug().
		Str("path", path).
		Int("bytes", len(src)).
		Int("children", len(tu.Kids)).
		Msg("treesitter: parsed")
	return tu, nil
}

// firstError finds the first ERROR or MISSING node in document order.
func firstError(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		ch := n.Child(i)
		if ch.HasError() || ch.IsMissing() {
			return firstError(ch)
		}
	}
	return n
}

func excerpt(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}

func content(node *sitter.Node, src []byte) string {
	return node.Content(src)
}

func firstNamed(n *sitter.Node) *sitter.Node {
	if n == nil {
		return nil
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if ch := n.NamedChild(i); ch.Type() != "comment" {
			return ch
		}
	}
	return nil
}

// namedChildren returns n's named children without comments.
func namedChildren(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	var out []*sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if ch := n.NamedChild(i); ch.Type() != "comment" {
			out = append(out, ch)
		}
	}
	return out
}

func sameNode(a, b *sitter.Node) bool {
	return a != nil && b != nil &&
		a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}

func orNode(a, b *sitter.Node) *sitter.Node {
	if a != nil {
		return a
	}
	return b
}

func spellings(toks []cursor.Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Spelling
	}
	return out
}
