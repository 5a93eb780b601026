package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sample = `struct AS { void (*Func)(int); };
struct AS *pAS;
int counter;
static int hidden = 1;

int puts(const char *s);

int main(void) {
	int local = counter;
	pAS->Func(local);
	puts("hi");
	return hidden;
}
`

func writeC(t *testing.T, dir, name, src string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestDump(t *testing.T) {
	path := writeC(t, t.TempDir(), "a.c", sample)
	out, err := run(t, "dump", path)
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	if !strings.HasPrefix(out, "TRANSLATION_UNIT <") {
		t.Errorf("dump should start with the unit, got %q", firstLine(out))
	}
	for _, want := range []string{"FUNCTION_DECL", "main result=\"int\" definition", "CALL_EXPR"} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q", want)
		}
	}
}

func TestDump_Source(t *testing.T) {
	path := writeC(t, t.TempDir(), "a.c", sample)
	out, err := run(t, "dump", "--source", path)
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	if !strings.HasPrefix(out, "struct AS") {
		t.Errorf("--source should print the source first, got %q", firstLine(out))
	}
}

func TestCalls(t *testing.T) {
	path := writeC(t, t.TempDir(), "a.c", sample)

	out, err := run(t, "calls", path, "--name", "puts")
	if err != nil {
		t.Fatalf("calls: %v", err)
	}
	if !strings.Contains(out, "a.c:11:") || !strings.Contains(out, "11 | ") {
		t.Errorf("calls puts output:\n%s", out)
	}

	out, err = run(t, "calls", path, "--name", "Func", "--type", "struct AS")
	if err != nil {
		t.Fatalf("calls: %v", err)
	}
	if !strings.Contains(out, "a.c:10:") {
		t.Errorf("member call not found:\n%s", out)
	}

	out, err = run(t, "calls", path, "--name", "Func")
	if err != nil {
		t.Fatalf("calls: %v", err)
	}
	if out != "" {
		t.Errorf("member call matched without a type:\n%s", out)
	}
}

func TestCalls_RequiresName(t *testing.T) {
	path := writeC(t, t.TempDir(), "a.c", sample)
	if _, err := run(t, "calls", path); err == nil {
		t.Fatal("expected an error without --name")
	}
}

func TestGlobals(t *testing.T) {
	path := writeC(t, t.TempDir(), "a.c", sample)
	out, err := run(t, "globals", path)
	if err != nil {
		t.Fatalf("globals: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d globals, want 3:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "pAS struct AS *") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "counter int") || !strings.Contains(lines[1], "referrers=1") {
		t.Errorf("line 1 = %q", lines[1])
	}
	if !strings.Contains(lines[2], "storage=STATIC") {
		t.Errorf("line 2 = %q", lines[2])
	}
}

func TestRefs(t *testing.T) {
	path := writeC(t, t.TempDir(), "a.c", sample)
	out, err := run(t, "refs", path)
	if err != nil {
		t.Fatalf("refs: %v", err)
	}
	if !strings.Contains(out, "local 9:6\n  10:12\n") {
		t.Errorf("refs output:\n%s", out)
	}
}

func TestOutline(t *testing.T) {
	dir := t.TempDir()
	writeC(t, dir, "a.c", sample)
	writeC(t, dir, "notes.txt", "not C")
	out, err := run(t, "outline", "--no-cache", dir)
	if err != nil {
		t.Fatalf("outline: %v", err)
	}
	if !strings.HasPrefix(out, "# C Symbols") {
		t.Errorf("outline header missing:\n%s", out)
	}
	if !strings.Contains(out, "fn: main") || strings.Contains(out, "notes.txt") {
		t.Errorf("outline:\n%s", out)
	}
}

func TestDiff(t *testing.T) {
	dir := t.TempDir()
	a := writeC(t, dir, "a.c", "int x = 1;\n")
	b := writeC(t, dir, "b.c", "int x = 1;\n")
	c := writeC(t, dir, "c.c", "int x = 2;\n")

	out, err := run(t, "diff", a, b)
	if err != nil || out != "" {
		t.Fatalf("identical trees: out=%q err=%v", out, err)
	}

	out, err = run(t, "diff", a, c)
	if !errors.Is(err, errTreesDiffer) {
		t.Fatalf("err = %v, want errTreesDiffer", err)
	}
	if !strings.Contains(out, "-") || !strings.Contains(out, "value=2") {
		t.Errorf("diff output:\n%s", out)
	}
}

func TestStructureLeavesTreeIntact(t *testing.T) {
	path := writeC(t, t.TempDir(), "a.c", "int x = 1;\n")
	tu, _, err := (&app{}).load(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	got := structure(tu)
	if strings.Contains(got, path) || !strings.HasPrefix(got, "  VAR_DECL <1:5> x") {
		t.Errorf("structure = %q", got)
	}
	if tu.Spelling != path {
		t.Errorf("unit spelling changed to %q", tu.Spelling)
	}
}

func TestLoad_SyntaxError(t *testing.T) {
	path := writeC(t, t.TempDir(), "bad.c", "int main( {\n")
	if _, err := run(t, "dump", path); err == nil || !strings.Contains(err.Error(), "syntax error") {
		t.Fatalf("err = %v", err)
	}
}

func TestBadLogLevel(t *testing.T) {
	path := writeC(t, t.TempDir(), "a.c", sample)
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--log-level", "loud", "dump", path})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error for an unknown log level")
	}
}

func TestPlainExcerpt(t *testing.T) {
	src := []byte("one\n\ttwo\nthree")
	if got := plainExcerpt(src, 2, 80); got != "  2 |     two\n" {
		t.Errorf("got %q", got)
	}
	if got := plainExcerpt(src, 9, 80); got != "" {
		t.Errorf("out of range = %q", got)
	}
	if got := plainExcerpt(src, 3, 8); got != "  3 | t…\n" {
		t.Errorf("truncated = %q", got)
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
