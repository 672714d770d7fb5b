// Package ir holds the lowered tree handed to the emitters. It mirrors the
// parse tree variant for variant but carries no token positions, so emitters
// never depend on surface syntax.
package ir

import (
	"fmt"
	"strings"
)

type Node interface {
	irNode()
}

type Plus struct {
	Left, Right Node
}

type Mult struct {
	Left, Right Node
}

type Int struct {
	Value string
}

type Call struct {
	Callee *Identifier
	Arg    Node
}

type Identifier struct {
	Name string
}

func (*Plus) irNode()       {}
func (*Mult) irNode()       {}
func (*Int) irNode()        {}
func (*Call) irNode()       {}
func (*Identifier) irNode() {}

// UnknownNodeError means a stage was handed a node outside the variants it
// handles. Trees built by the parser and lower never trigger it.
type UnknownNodeError struct {
	Stage   string
	Variant string
}

func (e *UnknownNodeError) Error() string {
	return fmt.Sprintf("%s: unknown node type: %s", e.Stage, e.Variant)
}

// VariantName names the dynamic type of n for diagnostics.
func VariantName(n any) string {
	if n == nil {
		return "<nil>"
	}
	name := fmt.Sprintf("%T", n)
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// IsNil reports whether n is nil or a nil pointer to one of the variants.
func IsNil(n Node) bool {
	switch n := n.(type) {
	case nil:
		return true
	case *Plus:
		return n == nil
	case *Mult:
		return n == nil
	case *Int:
		return n == nil
	case *Call:
		return n == nil
	case *Identifier:
		return n == nil
	}
	return false
}

// Children returns the direct children of n in order.
func Children(n Node) []Node {
	if IsNil(n) {
		return nil
	}
	switch n := n.(type) {
	case *Plus:
		return []Node{n.Left, n.Right}
	case *Mult:
		return []Node{n.Left, n.Right}
	case *Call:
		return []Node{n.Callee, n.Arg}
	}
	return nil
}

func Depth(n Node) int {
	if IsNil(n) {
		return 0
	}
	max := 0
	for _, c := range Children(n) {
		if d := Depth(c); d > max {
			max = d
		}
	}
	return max + 1
}

// Format renders a lowered tree the same way ast.Format renders a parse tree.
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
		branch(b, "Plus", n.Left, n.Right)
	case *Mult:
		branch(b, "Mult", n.Left, n.Right)
	case *Call:
		if n.Callee == nil {
			branch(b, "Call", nil, n.Arg)
			return
		}
		branch(b, "Call", n.Callee, n.Arg)
	case *Int:
		fmt.Fprintf(b, "Int(%s)", n.Value)
	case *Identifier:
		fmt.Fprintf(b, "Identifier(%s)", n.Name)
	default:
		fmt.Fprintf(b, "<%s>", VariantName(n))
	}
}

func branch(b *strings.Builder, name string, children ...Node) {
	b.WriteString(name + "(")
	for i, c := range children {
		if i > 0 {
			b.WriteString(", ")
		}
		format(b, c)
	}
	b.WriteByte(')')
}
