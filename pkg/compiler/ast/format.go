package ast

import (
	"fmt"
	"strings"
)

// Format renders a tree as Variant(children...), e.g.
// Call(Identifier(print), Plus(Int(1), Int(2))).
func Format(n Node) string {
	var b strings.Builder
	format(&b, n)
	return b.String()
}

func format(b *strings.Builder, n Node) {
	if IsNil(n) {
		b.WriteString("<nil>")
		return
	}
	switch n := n.(type) {
	case *Plus:
		formatBranch(b, "Plus", n.Left, n.Right)
	case *Mult:
		formatBranch(b, "Mult", n.Left, n.Right)
	case *Call:
		if n.Callee == nil {
			formatBranch(b, "Call", nil, n.Arg)
			return
		}
		formatBranch(b, "Call", n.Callee, n.Arg)
	case *Int:
		fmt.Fprintf(b, "Int(%s)", n.Value)
	case *Identifier:
		fmt.Fprintf(b, "Identifier(%s)", n.Name)
	default:
		fmt.Fprintf(b, "<%T>", n)
	}
}

func formatBranch(b *strings.Builder, name string, children ...Node) {
	b.WriteString(name)
	b.WriteByte('(')
	for i, c := range children {
		if i > 0 {
			b.WriteString(", ")
		}
		format(b, c)
	}
	b.WriteByte(')')
}
