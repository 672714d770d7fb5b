package parser_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/exprc/pkg/compiler/ast"
	"github.com/agenthands/exprc/pkg/compiler/lexer"
	"github.com/agenthands/exprc/pkg/compiler/parser"
)

func parse(t *testing.T, src string) (ast.Node, error) {
	t.Helper()
	tokens, err := lexer.Default("<test>").Tokenize(src)
	require.NoError(t, err)
	return parser.New(tokens).ParseExpression()
}

func TestParseExpression(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "Int", src: "42", want: "Int(42)"},
		{name: "Plus", src: "1 + 2", want: "Plus(Int(1), Int(2))"},
		{name: "Mult", src: "3 * 4", want: "Mult(Int(3), Int(4))"},
		{name: "Mult binds tighter", src: "2 + 3 * 4", want: "Plus(Int(2), Mult(Int(3), Int(4)))"},
		{name: "Mult on the left", src: "2 * 3 + 4", want: "Plus(Mult(Int(2), Int(3)), Int(4))"},
		{name: "Both sides", src: "1 * 2 + 3 * 4", want: "Plus(Mult(Int(1), Int(2)), Mult(Int(3), Int(4)))"},
		{name: "Call", src: "foo(2)", want: "Call(Identifier(foo), Int(2))"},
		{name: "Call resets precedence", src: "f(1 + 2) * 3", want: "Mult(Call(Identifier(f), Plus(Int(1), Int(2))), Int(3))"},
		{name: "Chained through calls", src: "f(1 + 2) + g(3 + 4)", want: "Plus(Call(Identifier(f), Plus(Int(1), Int(2))), Call(Identifier(g), Plus(Int(3), Int(4))))"},
		{
			name: "Sample program",
			src:  "print(34 + 17 * foo(2))",
			want: "Call(Identifier(print), Plus(Int(34), Mult(Int(17), Call(Identifier(foo), Int(2)))))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := parse(t, tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ast.Format(node))
		})
	}
}

func TestParseTreeShape(t *testing.T) {
	node, err := parse(t, "print(34 + 17 * foo(2))")
	require.NoError(t, err)

	want := &ast.Call{
		Callee: &ast.Identifier{Name: "print"},
		Arg: &ast.Plus{
			Left: &ast.Int{Value: "34"},
			Right: &ast.Mult{
				Left: &ast.Int{Value: "17"},
				Right: &ast.Call{
					Callee: &ast.Identifier{Name: "foo"},
					Arg:    &ast.Int{Value: "2"},
				},
			},
		},
	}
	if diff := cmp.Diff(ast.Node(want), node, cmpopts.IgnoreTypes(lexer.Token{})); diff != "" {
		t.Errorf("parse tree mismatch (-want +got):\n%s", diff)
	}

	// Operator nodes keep their operator token.
	plus := node.(*ast.Call).Arg.(*ast.Plus)
	assert.Equal(t, lexer.KindPlus, plus.Token.Kind)
	assert.Equal(t, 10, plus.Token.Loc.Column)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected []lexer.Kind
		got      string
		position int
		message  string
	}{
		{
			name:     "Addition is not associative",
			src:      "1 + 2 + 3",
			expected: []lexer.Kind{lexer.KindEOF},
			got:      "+",
			position: 3,
			message:  "<test>:1:7: SYNTAX ERROR: Expected 'EOF', but got '+' instead",
		},
		{
			name:     "Multiplication is not associative",
			src:      "2 * 3 * 4",
			expected: []lexer.Kind{lexer.KindEOF},
			got:      "*",
			position: 3,
		},
		{
			name:     "Bare identifier",
			src:      "foo",
			expected: []lexer.Kind{lexer.KindLParen},
			got:      "EOF",
			position: 1,
			message:  "<test>:1:1: SYNTAX ERROR: Expected '(', but got 'EOF' instead",
		},
		{
			name:     "Identifier used as operand",
			src:      "foo + 1",
			expected: []lexer.Kind{lexer.KindLParen},
			got:      "+",
			position: 1,
		},
		{
			name:     "Unclosed call",
			src:      "print(1 * 1",
			expected: []lexer.Kind{lexer.KindRParen},
			got:      "EOF",
			position: 5,
			message:  "<test>:1:11: SYNTAX ERROR: Expected ')', but got 'EOF' instead",
		},
		{
			name:     "Two arguments",
			src:      "print(1 2)",
			expected: []lexer.Kind{lexer.KindRParen},
			got:      "2",
			position: 3,
		},
		{
			name:     "Missing operand",
			src:      "1 +",
			expected: []lexer.Kind{lexer.KindInt, lexer.KindIdentifier},
			got:      "EOF",
			position: 2,
		},
		{
			name:     "Leading operator",
			src:      "* 2",
			expected: []lexer.Kind{lexer.KindInt, lexer.KindIdentifier},
			got:      "*",
			position: 0,
			message:  "<test>:1:1: SYNTAX ERROR: Expected 'INT' or 'IDENTIFIER', but got '*' instead",
		},
		{
			name:     "Parentheses are not grouping",
			src:      "(1 + 2) * 3",
			expected: []lexer.Kind{lexer.KindInt, lexer.KindIdentifier},
			got:      "(",
			position: 0,
		},
		{
			name:     "Empty input",
			src:      "",
			expected: []lexer.Kind{lexer.KindInt, lexer.KindIdentifier},
			got:      "EOF",
			position: 0,
			message:  "SYNTAX ERROR: Expected 'INT' or 'IDENTIFIER', but got 'EOF' instead",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := parse(t, tt.src)
			require.Error(t, err)
			assert.Nil(t, node)

			var parseErr *parser.ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, tt.expected, parseErr.Expected)
			assert.Equal(t, tt.got, parseErr.Got)
			assert.Equal(t, tt.position, parseErr.Position)
			if tt.message != "" {
				assert.Equal(t, tt.message, parseErr.Error())
			}
		})
	}
}

func TestParseExpressionIsRepeatable(t *testing.T) {
	tokens, err := lexer.Default("<test>").Tokenize("f(1) * 2")
	require.NoError(t, err)

	p := parser.New(tokens)
	first, err := p.ParseExpression()
	require.NoError(t, err)
	second, err := p.ParseExpression()
	require.NoError(t, err)

	assert.Equal(t, ast.Format(first), ast.Format(second))
	assert.NotSame(t, first, second)
}
