package lexer

import "fmt"

// Kind names the class of a token. Kinds are strings so that rule sets can
// be loaded from configuration; the grammar only relies on the constants below.
type Kind string

const (
	KindInt        Kind = "INT"
	KindIdentifier Kind = "IDENTIFIER"
	KindPlus       Kind = "+"
	KindStar       Kind = "*"
	KindLParen     Kind = "("
	KindRParen     Kind = ")"

	// KindEOF is never produced by the lexer. The parser reports it when
	// the token stream runs out.
	KindEOF Kind = "EOF"
)

// Location points back into the source.
type Location struct {
	File   string
	Line   int // 1-based
	Column int // 1-based
	Offset int // byte offset
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d:", l.File, l.Line, l.Column)
}

// Token is a classified lexical unit.
type Token struct {
	Kind Kind
	Text string
	Loc  Location
}

func (t Token) String() string {
	if t.Text == "" || t.Text == string(t.Kind) {
		return "[" + string(t.Kind) + "]"
	}
	return "[" + string(t.Kind) + ":" + t.Text + "]"
}
