package lower_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/exprc/pkg/compiler/ast"
	"github.com/agenthands/exprc/pkg/compiler/ir"
	"github.com/agenthands/exprc/pkg/compiler/lexer"
	"github.com/agenthands/exprc/pkg/compiler/lower"
	"github.com/agenthands/exprc/pkg/compiler/parser"
)

// foreign satisfies ast.Node without being one of its variants.
type foreign struct {
	*ast.Int
}

func parse(t *testing.T, src string) ast.Node {
	t.Helper()
	tokens, err := lexer.Default("<test>").Tokenize(src)
	require.NoError(t, err)
	node, err := parser.New(tokens).ParseExpression()
	require.NoError(t, err)
	return node
}

// assertSameShape walks both trees in step and checks variant and arity.
func assertSameShape(t *testing.T, a ast.Node, l ir.Node) {
	t.Helper()
	require.Equal(t, ir.VariantName(a), ir.VariantName(l))
	ac, lc := ast.Children(a), ir.Children(l)
	require.Equal(t, len(ac), len(lc), "arity of %s", ir.VariantName(a))
	for i := range ac {
		assertSameShape(t, ac[i], lc[i])
	}
}

func TestLowerPreservesStructure(t *testing.T) {
	tests := []string{
		"7",
		"1 + 2",
		"2 + 3 * 4",
		"2 * 3 + 4",
		"f(1)",
		"print(34 + 17 * foo(2))",
		"a(b(c(1 + 2 * 3)) * 4) + 5",
	}

	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			tree := parse(t, src)
			lowered, err := lower.Lower(tree)
			require.NoError(t, err)

			assert.Equal(t, ast.Format(tree), ir.Format(lowered))
			assert.Equal(t, ast.Depth(tree), ir.Depth(lowered))
			assertSameShape(t, tree, lowered)
		})
	}
}

func TestLowerCopiesCalleeName(t *testing.T) {
	lowered, err := lower.Lower(parse(t, "foo(2)"))
	require.NoError(t, err)

	c, ok := lowered.(*ir.Call)
	require.True(t, ok)
	assert.Equal(t, "foo", c.Callee.Name)
	assert.Equal(t, &ir.Int{Value: "2"}, c.Arg)
}

func TestLowerUnknownNodes(t *testing.T) {
	tests := []struct {
		name    string
		node    ast.Node
		variant string
	}{
		{name: "Standalone identifier", node: &ast.Identifier{Name: "x"}, variant: "Identifier"},
		{name: "Nil", node: nil, variant: "<nil>"},
		{name: "Foreign type", node: foreign{&ast.Int{Value: "1"}}, variant: "foreign"},
		{
			name:    "Identifier below an operator",
			node:    &ast.Plus{Left: &ast.Int{Value: "1"}, Right: &ast.Identifier{Name: "x"}},
			variant: "Identifier",
		},
		{name: "Call without callee", node: &ast.Call{Arg: &ast.Int{Value: "1"}}, variant: "Call without callee"},
		{name: "Nil pointer", node: (*ast.Plus)(nil), variant: "nil Plus"},
		{
			name:    "Nil pointer operand",
			node:    &ast.Plus{Left: (*ast.Int)(nil), Right: &ast.Int{Value: "1"}},
			variant: "nil Int",
		},
		{
			name:    "Nil pointer argument",
			node:    &ast.Call{Callee: &ast.Identifier{Name: "f"}, Arg: (*ast.Mult)(nil)},
			variant: "nil Mult",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lowered, err := lower.Lower(tt.node)
			require.Error(t, err)
			assert.Nil(t, lowered)

			var unknown *ir.UnknownNodeError
			require.True(t, errors.As(err, &unknown))
			assert.Equal(t, "lower", unknown.Stage)
			assert.Equal(t, tt.variant, unknown.Variant)
		})
	}
}
