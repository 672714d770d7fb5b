package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agenthands/exprc/pkg/compiler/ast"
	"github.com/agenthands/exprc/pkg/compiler/lexer"
)

func call(name string, arg ast.Node) *ast.Call {
	return &ast.Call{Callee: &ast.Identifier{Name: name}, Arg: arg}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		node ast.Node
		want string
	}{
		{name: "Int", node: &ast.Int{Value: "7"}, want: "Int(7)"},
		{name: "Identifier", node: &ast.Identifier{Name: "foo"}, want: "Identifier(foo)"},
		{
			name: "Precedence",
			node: &ast.Plus{Left: &ast.Int{Value: "2"}, Right: &ast.Mult{Left: &ast.Int{Value: "3"}, Right: &ast.Int{Value: "4"}}},
			want: "Plus(Int(2), Mult(Int(3), Int(4)))",
		},
		{
			name: "Nested call",
			node: call("print", &ast.Plus{
				Left:  &ast.Int{Value: "34"},
				Right: &ast.Mult{Left: &ast.Int{Value: "17"}, Right: call("foo", &ast.Int{Value: "2"})},
			}),
			want: "Call(Identifier(print), Plus(Int(34), Mult(Int(17), Call(Identifier(foo), Int(2)))))",
		},
		{name: "Nil", node: nil, want: "<nil>"},
		{name: "Call without callee", node: &ast.Call{Arg: &ast.Int{Value: "1"}}, want: "Call(<nil>, Int(1))"},
		{name: "Nil pointer", node: &ast.Plus{Left: (*ast.Int)(nil), Right: &ast.Int{Value: "1"}}, want: "Plus(<nil>, Int(1))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ast.Format(tt.node))
		})
	}
}

func TestDepth(t *testing.T) {
	assert.Equal(t, 0, ast.Depth(nil))
	assert.Equal(t, 0, ast.Depth((*ast.Mult)(nil)))
	assert.Equal(t, 2, ast.Depth(&ast.Plus{Left: (*ast.Int)(nil), Right: &ast.Int{Value: "1"}}))
	assert.Equal(t, 1, ast.Depth(&ast.Int{Value: "1"}))
	assert.Equal(t, 2, ast.Depth(call("f", &ast.Int{Value: "1"})))
	assert.Equal(t, 4, ast.Depth(call("print", &ast.Plus{
		Left:  &ast.Int{Value: "1"},
		Right: call("f", &ast.Int{Value: "2"}),
	})))
}

func TestIsNil(t *testing.T) {
	assert.True(t, ast.IsNil(nil))
	assert.True(t, ast.IsNil((*ast.Call)(nil)))
	assert.True(t, ast.IsNil((*ast.Identifier)(nil)))
	assert.False(t, ast.IsNil(&ast.Int{}))
}

func TestCallPos(t *testing.T) {
	tok := lexer.Token{Kind: lexer.KindIdentifier, Text: "f", Loc: lexer.Location{Line: 3, Column: 2}}
	c := &ast.Call{Callee: &ast.Identifier{Token: tok, Name: "f"}}
	assert.Equal(t, tok, c.Pos())
	assert.Equal(t, lexer.Token{}, (&ast.Call{}).Pos())
}
