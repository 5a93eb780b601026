package index

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xonecas/ctree/internal/ast"
	"github.com/xonecas/ctree/internal/cursor"
)

// MaxOutlineBytes caps the rendered outline.
const MaxOutlineBytes = 16 * 1024

// FormatOutline produces a compact YAML-like outline of the files in snap,
// sorted by path and capped at MaxOutlineBytes.
//
// Example output:
//
//	# C Symbols
//	src/main.c:
//	  fn: main, usage
//	  decl: puts
//	  var: verbose (static), count
//	  extern: errno
func FormatOutline(snap map[string]*File) string {
	if len(snap) == 0 {
		return ""
	}

	paths := make([]string, 0, len(snap))
	for p := range snap {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var b strings.Builder
	b.WriteString("# C Symbols\n")

	for _, path := range paths {
		text := snap[path].Outline
		if text == "" {
			continue
		}
		entry := fmt.Sprintf("%s:\n%s", path, text)
		if b.Len()+len(entry) > MaxOutlineBytes {
			fmt.Fprintf(&b, "# ... truncated (%d files total)\n", len(paths))
			break
		}
		b.WriteString(entry)
	}
	return b.String()
}

// fileOutline renders the file-scope symbols of one unit. Prototypes of
// functions defined in the same file are left out.
func fileOutline(tu *ast.TranslationUnit) string {
	var fns, decls, vars, externs []string

	defined := make(map[string]bool)
	for _, f := range tu.FuncDefs {
		fns = append(fns, f.Name)
		defined[f.Name] = true
	}
	seen := make(map[string]bool)
	for _, f := range tu.FuncDecls {
		if !defined[f.Name] && !seen[f.Name] {
			decls = append(decls, f.Name)
			seen[f.Name] = true
		}
	}
	for _, v := range tu.Globals {
		if v.Storage == cursor.StorageStatic {
			vars = append(vars, v.Name+" (static)")
			continue
		}
		vars = append(vars, v.Name)
	}
	for _, n := range tu.Children() {
		if v, ok := n.(*ast.VarDecl); ok && v.Storage == cursor.StorageExtern {
			externs = append(externs, v.Name)
		}
	}

	var b strings.Builder
	for _, group := range []struct {
		label string
		names []string
	}{
		{"fn", fns},
		{"decl", decls},
		{"var", vars},
		{"extern", externs},
	} {
		if len(group.names) > 0 {
			fmt.Fprintf(&b, "  %s: %s\n", group.label, strings.Join(group.names, ", "))
		}
	}
	return b.String()
}
