package index

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xonecas/ctree/internal/ast"
	"github.com/xonecas/ctree/internal/store"
)

const mainC = `#include <stdio.h>
static int verbose = 0;
int count;
extern int errno_like;
void puts(const char *);
int helper(int);
int helper(int x) { return x; }
int main(void) { puts("hi"); return helper(count); }
`

const mainOutline = "  fn: helper, main\n  decl: puts\n  var: verbose (static), count\n  extern: errno_like\n"

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, body := range files {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestBuild(t *testing.T) {
	root := writeTree(t, map[string]string{
		"main.c":         mainC,
		"lib/util.h":     "int util(void);\n",
		"broken.c":       "int main( { return 0; }\n",
		"concat.c":       `const char *s = "a" "b";` + "\n",
		"build/gen.c":    "int gen;\n",
		"vendor/dep.c":   "int dep;\n",
		"notes.txt":      "not C\n",
		"big.c":          "int big;\n" + strings.Repeat("/* padding */\n", 100),
		".gitignore":     "build/\n",
		".git/HEAD.c":    "int head;\n",
		"lib/deep/two.c": "int two = 2;\n",
	})

	idx := New(root, Options{MaxFileBytes: 512, Workers: 2, Exclude: []string{"vendor/"}})
	if err := idx.Build(context.Background()); err != nil {
		t.Fatalf("Build: %v", err)
	}

	got := strings.Join(idx.Files(), " ")
	if want := "lib/deep/two.c lib/util.h main.c"; got != want {
		t.Errorf("Files = %q, want %q", got, want)
	}

	failures := idx.Failures()
	if len(failures) != 2 {
		t.Fatalf("Failures = %v", failures)
	}
	if err := failures["broken.c"]; err == nil || !strings.Contains(err.Error(), "syntax error") {
		t.Errorf("broken.c: %v", err)
	}
	if err := failures["concat.c"]; !errors.Is(err, ast.ErrMalformed) {
		t.Errorf("concat.c should fail as malformed, got %v", err)
	}

	tu, ok := idx.Unit("main.c")
	if !ok {
		t.Fatal("main.c not indexed")
	}
	if len(tu.Globals) != 2 || len(tu.FuncDefs) != 2 {
		t.Errorf("globals=%d defs=%d", len(tu.Globals), len(tu.FuncDefs))
	}
	if _, ok := idx.Unit("broken.c"); ok {
		t.Error("broken.c should have no unit")
	}
	if n := len(idx.Units()); n != 3 {
		t.Errorf("Units = %d", n)
	}
}

func TestBuild_Outline(t *testing.T) {
	root := writeTree(t, map[string]string{
		"main.c":     mainC,
		"lib/util.h": "int util(void);\n",
	})
	idx := New(root, Options{})
	if err := idx.Build(context.Background()); err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := "# C Symbols\nlib/util.h:\n  decl: util\nmain.c:\n" + mainOutline
	if got := idx.Outline(); got != want {
		t.Errorf("Outline:\n%s\nwant:\n%s", got, want)
	}
}

func TestBuild_Cache(t *testing.T) {
	root := writeTree(t, map[string]string{"main.c": mainC})
	cache, err := store.Open(filepath.Join(t.TempDir(), "cache.db"), time.Hour)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	defer cache.Close()

	first := New(root, Options{Cache: cache})
	if err := first.Build(context.Background()); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if cache.Len() != 1 {
		t.Fatalf("cache entries = %d", cache.Len())
	}

	second := New(root, Options{Cache: cache, OutlineOnly: true})
	if err := second.Build(context.Background()); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, ok := second.Unit("main.c"); ok {
		t.Error("outline-only cache hit should not parse")
	}
	if got := second.Snapshot()["main.c"].Outline; got != mainOutline {
		t.Errorf("cached outline = %q", got)
	}
	if first.Outline() != second.Outline() {
		t.Error("cached and parsed outlines differ")
	}
}

func TestUpdateFile(t *testing.T) {
	root := writeTree(t, map[string]string{"a.c": "int a;\n"})
	idx := New(root, Options{})
	if err := idx.Build(context.Background()); err != nil {
		t.Fatalf("Build: %v", err)
	}
	path := filepath.Join(root, "a.c")

	if err := os.WriteFile(path, []byte("int a( {\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	idx.UpdateFile(context.Background(), path)
	if len(idx.Files()) != 0 || len(idx.Failures()) != 1 {
		t.Errorf("after breaking: files=%v failures=%v", idx.Files(), idx.Failures())
	}

	if err := os.WriteFile(path, []byte("int a, b;\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	idx.UpdateFile(context.Background(), path)
	if len(idx.Failures()) != 0 {
		t.Errorf("failure not cleared: %v", idx.Failures())
	}
	tu, ok := idx.Unit("a.c")
	if !ok || len(tu.Globals) != 2 {
		t.Errorf("a.c after fix: %v %v", ok, tu)
	}
}

func TestBuild_Cancelled(t *testing.T) {
	root := writeTree(t, map[string]string{"a.c": "int a;\n", "b.c": "int b;\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := New(root, Options{}).Build(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestFormatOutline_Truncates(t *testing.T) {
	snap := make(map[string]*File)
	line := "  fn: " + strings.Repeat("x", 200) + "\n"
	for i := 0; i < 200; i++ {
		rel := filepath.Join("dir", strings.Repeat("f", i%7+1)+string(rune('a'+i%26))+".c")
		snap[rel+strings.Repeat("_", i)] = &File{Outline: line}
	}
	out := FormatOutline(snap)
	if len(out) > MaxOutlineBytes+100 {
		t.Errorf("outline is %d bytes", len(out))
	}
	if !strings.Contains(out, "# ... truncated (200 files total)") {
		t.Error("missing truncation marker")
	}
	if FormatOutline(nil) != "" {
		t.Error("empty snapshot should render nothing")
	}
}
