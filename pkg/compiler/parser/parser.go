package parser

import (
	"github.com/agenthands/exprc/pkg/compiler/ast"
	"github.com/agenthands/exprc/pkg/compiler/lexer"
)

// Parser is a recursive-descent parser over a token slice.
//
// Grammar, lowest precedence first:
//
//	expression     := multiplicative ('+' multiplicative)?
//	multiplicative := atom ('*' atom)?
//	atom           := INT | call
//	call           := IDENTIFIER '(' expression ')'
//
// Each level applies its operator at most once, so "1 + 2 + 3" is rejected.
type Parser struct {
	tokens []lexer.Token
	pos    int
}

func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// ParseExpression parses the whole token stream as one expression. Tokens
// left over after the expression are an error.
func (p *Parser) ParseExpression() (ast.Node, error) {
	p.pos = 0

	node, err := p.expression()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.tokens) {
		return nil, p.unexpected(lexer.KindEOF)
	}
	return node, nil
}

func (p *Parser) expression() (ast.Node, error) {
	left, err := p.multiplicative()
	if err != nil {
		return nil, err
	}
	if !p.lookahead(lexer.KindPlus) {
		return left, nil
	}

	op, err := p.match(lexer.KindPlus)
	if err != nil {
		return nil, err
	}
	right, err := p.multiplicative()
	if err != nil {
		return nil, err
	}
	return &ast.Plus{Token: op, Left: left, Right: right}, nil
}

func (p *Parser) multiplicative() (ast.Node, error) {
	left, err := p.atom()
	if err != nil {
		return nil, err
	}
	if !p.lookahead(lexer.KindStar) {
		return left, nil
	}

	op, err := p.match(lexer.KindStar)
	if err != nil {
		return nil, err
	}
	right, err := p.atom()
	if err != nil {
		return nil, err
	}
	return &ast.Mult{Token: op, Left: left, Right: right}, nil
}

func (p *Parser) atom() (ast.Node, error) {
	switch {
	case p.lookahead(lexer.KindInt):
		tok, err := p.match(lexer.KindInt)
		if err != nil {
			return nil, err
		}
		return &ast.Int{Token: tok, Value: tok.Text}, nil
	case p.lookahead(lexer.KindIdentifier):
		// A bare identifier is not an atom; it always starts a call.
		return p.call()
	default:
		return nil, p.unexpected(lexer.KindInt, lexer.KindIdentifier)
	}
}

func (p *Parser) call() (ast.Node, error) {
	name, err := p.match(lexer.KindIdentifier)
	if err != nil {
		return nil, err
	}
	if _, err := p.match(lexer.KindLParen); err != nil {
		return nil, err
	}
	arg, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.match(lexer.KindRParen); err != nil {
		return nil, err
	}
	return &ast.Call{
		Callee: &ast.Identifier{Token: name, Name: name.Text},
		Arg:    arg,
	}, nil
}

// match consumes the current token if it has the given kind.
func (p *Parser) match(kind lexer.Kind) (lexer.Token, error) {
	if !p.lookahead(kind) {
		return lexer.Token{}, p.unexpected(kind)
	}
	tok := p.tokens[p.pos]
	p.pos++
	return tok, nil
}

// lookahead reports whether the current token has the given kind. It is
// false at the end of the stream.
func (p *Parser) lookahead(kind lexer.Kind) bool {
	return p.pos < len(p.tokens) && p.tokens[p.pos].Kind == kind
}

func (p *Parser) unexpected(expected ...lexer.Kind) *ParseError {
	e := &ParseError{Expected: expected, Position: p.pos}
	if p.pos < len(p.tokens) {
		e.Got = p.tokens[p.pos].Text
		e.Loc = p.tokens[p.pos].Loc
		return e
	}
	e.Got = string(lexer.KindEOF)
	if n := len(p.tokens); n > 0 {
		e.Loc = p.tokens[n-1].Loc
	}
	return e
}
