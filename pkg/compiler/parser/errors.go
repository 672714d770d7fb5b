package parser

import (
	"fmt"
	"strings"

	"github.com/agenthands/exprc/pkg/compiler/lexer"
)

// ParseError reports a missing or mismatched token.
type ParseError struct {
	Expected []lexer.Kind
	Got      string // token text, or "EOF"
	Position int    // index into the token slice
	Loc      lexer.Location
}

func (e *ParseError) Error() string {
	var b strings.Builder
	if e.Loc.Line > 0 {
		b.WriteString(e.Loc.String())
		b.WriteByte(' ')
	}
	b.WriteString("SYNTAX ERROR: Expected ")
	for i, k := range e.Expected {
		switch {
		case i == 0:
		case i == len(e.Expected)-1:
			b.WriteString(" or ")
		default:
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "'%s'", k)
	}
	fmt.Fprintf(&b, ", but got '%s' instead", e.Got)
	return b.String()
}
