package lexer

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Rule classifies the text at the head of the input. Exactly one of Pattern
// and Literal is set.
type Rule struct {
	Kind    Kind
	Pattern *regexp.Regexp
	Literal string
}

// match returns the length of the prefix of s matched by r, or 0.
func (r Rule) match(s string) int {
	if r.Pattern == nil {
		if r.Literal != "" && strings.HasPrefix(s, r.Literal) {
			return len(r.Literal)
		}
		return 0
	}
	return matchPrefix(r.Pattern, s)
}

// LexError reports a position where neither a skip pattern nor a rule matched.
type LexError struct {
	Char   rune
	Offset int
	Loc    Location
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s SYNTAX ERROR: Unknown character: '%c'", e.Loc, e.Char)
}

// Lexer splits input into tokens using an ordered list of rules. The first
// rule that matches at the current position wins, so registration order
// decides between overlapping rules.
//
// A Lexer must not be modified while Tokenize is running; once configured it
// can be shared between goroutines.
type Lexer struct {
	file  string
	rules []Rule
	skips []*regexp.Regexp
}

// New returns a lexer with no rules. file is only used in token locations.
func New(file string) *Lexer {
	return &Lexer{file: file}
}

// AddToken registers a regular expression rule. An empty pattern, or one
// equal to the kind itself, registers a literal rule instead.
func (l *Lexer) AddToken(kind Kind, pattern string) error {
	if pattern == "" || pattern == string(kind) {
		l.AddLiteral(kind, string(kind))
		return nil
	}
	re, err := anchor(pattern)
	if err != nil {
		return errors.Wrapf(err, "token rule %q", kind)
	}
	l.rules = append(l.rules, Rule{Kind: kind, Pattern: re})
	return nil
}

// AddLiteral registers a rule matching text verbatim.
func (l *Lexer) AddLiteral(kind Kind, text string) {
	l.rules = append(l.rules, Rule{Kind: kind, Literal: text})
}

// Skip registers a pattern whose matches are discarded.
func (l *Lexer) Skip(pattern string) error {
	re, err := anchor(pattern)
	if err != nil {
		return errors.Wrap(err, "skip rule")
	}
	l.skips = append(l.skips, re)
	return nil
}

// Rules returns a copy of the registered token rules in order.
func (l *Lexer) Rules() []Rule {
	return append([]Rule(nil), l.rules...)
}

// Tokenize converts input into tokens. It fails on the first position that
// nothing matches.
func (l *Lexer) Tokenize(input string) ([]Token, error) {
	var tokens []Token
	c := cursor{loc: Location{File: l.file, Line: 1, Column: 1}}

	for c.loc.Offset < len(input) {
		rest := input[c.loc.Offset:]

		if n := l.skip(rest); n > 0 {
			c.advance(rest[:n])
			continue
		}

		matched := false
		for _, r := range l.rules {
			n := r.match(rest)
			if n == 0 {
				continue
			}
			tokens = append(tokens, Token{Kind: r.Kind, Text: rest[:n], Loc: c.loc})
			c.advance(rest[:n])
			matched = true
			break
		}

		if !matched {
			ch, _ := utf8.DecodeRuneInString(rest)
			return nil, &LexError{Char: ch, Offset: c.loc.Offset, Loc: c.loc}
		}
	}

	return tokens, nil
}

func (l *Lexer) skip(s string) int {
	for _, re := range l.skips {
		if n := matchPrefix(re, s); n > 0 {
			return n
		}
	}
	return 0
}

type cursor struct {
	loc Location
}

func (c *cursor) advance(text string) {
	for _, ch := range text {
		if ch == '\n' {
			c.loc.Line++
			c.loc.Column = 1
		} else {
			c.loc.Column++
		}
	}
	c.loc.Offset += len(text)
}

// anchor compiles pattern so that it only matches at the start of the input.
func anchor(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile(`^(?:` + pattern + `)`)
}

// matchPrefix returns the length of re's match at the start of s. Empty
// matches count as no match so the scanning loop always makes progress.
func matchPrefix(re *regexp.Regexp, s string) int {
	loc := re.FindStringIndex(s)
	if loc == nil || loc[0] != 0 {
		return 0
	}
	return loc[1]
}
