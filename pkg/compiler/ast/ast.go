package ast

import "github.com/agenthands/exprc/pkg/compiler/lexer"

// Node is a parse tree node. The set of variants is closed: Plus, Mult,
// Int, Call and Identifier.
type Node interface {
	Pos() lexer.Token
	node()
}

// Plus: Left '+' Right
type Plus struct {
	Token lexer.Token
	Left  Node
	Right Node
}

func (p *Plus) Pos() lexer.Token { return p.Token }
func (p *Plus) node()            {}

// Mult: Left '*' Right
type Mult struct {
	Token lexer.Token
	Left  Node
	Right Node
}

func (m *Mult) Pos() lexer.Token { return m.Token }
func (m *Mult) node()            {}

type Int struct {
	Token lexer.Token
	Value string
}

func (i *Int) Pos() lexer.Token { return i.Token }
func (i *Int) node()            {}

// Call: Callee '(' Arg ')'
type Call struct {
	Callee *Identifier
	Arg    Node
}

func (c *Call) Pos() lexer.Token {
	if c.Callee == nil {
		return lexer.Token{}
	}
	return c.Callee.Token
}

func (c *Call) node() {}

// Identifier only appears as the callee of a Call.
type Identifier struct {
	Token lexer.Token
	Name  string
}

func (i *Identifier) Pos() lexer.Token { return i.Token }
func (i *Identifier) node()            {}
