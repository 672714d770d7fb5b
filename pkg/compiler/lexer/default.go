package lexer

// Default returns a lexer for the expression language: integers,
// identifiers, '+', '*' and parentheses, with whitespace skipped.
func Default(file string) *Lexer {
	l := New(file)
	// The patterns are constant, so compilation cannot fail.
	mustAdd(l.AddToken(KindInt, `\d+`))
	mustAdd(l.AddToken(KindIdentifier, `[a-zA-Z_][a-zA-Z_0-9]*`))
	l.AddLiteral(KindPlus, "+")
	l.AddLiteral(KindStar, "*")
	l.AddLiteral(KindLParen, "(")
	l.AddLiteral(KindRParen, ")")
	mustAdd(l.Skip(`\s+`))
	return l
}

func mustAdd(err error) {
	if err != nil {
		panic(err)
	}
}
