package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xonecas/ctree/internal/ast"
	"github.com/xonecas/ctree/internal/treesitter"
)

func build(t *testing.T, src string) *ast.TranslationUnit {
	t.Helper()
	root, err := treesitter.ParseSource(context.Background(), "sample.c", []byte(src))
	require.NoError(t, err)
	tu, err := ast.Build(root)
	require.NoError(t, err)
	return tu
}

const directSample = `
void puts(const char *);
int main(int argc, char *argv[])
{
	puts("string");
	return 0;
}
`

const memberSample = `
typedef void (*func_type)(void);
typedef struct tag_BS {
	func_type Func;
} BS;
typedef struct {
	func_type Func;
} AS;
BS *pBS;
BS gBS;
AS gAS;
int main(int argc, char *argv[])
{
	pBS->Func();
	gBS.Func();
	gAS.Func();
	return 0;
}
`

func TestIsFunctionCall_Direct(t *testing.T) {
	tu := build(t, directSample)
	require.Len(t, tu.FuncDecls, 2)
	puts := tu.FuncDecls[1].Body.Children()[0]

	assert.True(t, IsFunctionCall(puts, "puts", ""))
	assert.False(t, IsFunctionCall(puts, "puts", "Test"))
	assert.False(t, IsFunctionCall(puts, "printf", ""))
}

func TestIsFunctionCall_Member(t *testing.T) {
	tu := build(t, memberSample)
	body := tu.Function("main").Body.Children()
	ptrCall, valCall, anonCall := body[0], body[1], body[2]

	tests := []struct {
		name     string
		call     ast.Node
		typeName string
		want     bool
	}{
		{"pointer by alias", ptrCall, "BS", true},
		{"pointer by tag", ptrCall, "struct tag_BS", true},
		{"value by alias", valCall, "BS", true},
		{"value by tag", valCall, "struct tag_BS", true},
		{"member without type", valCall, "", false},
		{"other struct", ptrCall, "AS", false},
		{"anonymous by alias", anonCall, "AS", true},
		{"anonymous vs tag_BS", anonCall, "struct tag_BS", false},
		{"anonymous vs BS", anonCall, "BS", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsFunctionCall(tt.call, "Func", tt.typeName))
		})
	}
	assert.False(t, IsFunctionCall(ptrCall, "Other", "BS"))
}

func TestIsFunctionCall_NotACall(t *testing.T) {
	tu := build(t, directSample)
	ret := tu.FuncDecls[1].Body.Children()[1]
	assert.False(t, IsFunctionCall(ret, "puts", ""))
	assert.False(t, IsFunctionCall(tu, "puts", ""))
}

func TestCalls(t *testing.T) {
	tu := build(t, memberSample)
	calls := Calls(tu)
	require.Len(t, calls, 3)

	var names []string
	for _, c := range calls {
		name, member := Callee(c)
		assert.True(t, member)
		names = append(names, name)
	}
	assert.Equal(t, []string{"Func", "Func", "Func"}, names)

	assert.Len(t, FindCalls(tu, "Func", "BS"), 2)
	assert.Len(t, FindCalls(tu, "Func", "AS"), 1)
	assert.Empty(t, FindCalls(tu, "Func", ""))
}

func TestCallee_Direct(t *testing.T) {
	tu := build(t, directSample)
	calls := Calls(tu)
	require.Len(t, calls, 1)
	name, member := Callee(calls[0])
	assert.Equal(t, "puts", name)
	assert.False(t, member)
	assert.Len(t, calls[0].Args, 1)
}
