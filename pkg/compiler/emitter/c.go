// Package emitter renders lowered trees. Emit and EmitProgram produce C
// source; Compile produces bytecode for the vm package.
package emitter

import (
	"strings"

	"github.com/agenthands/exprc/pkg/compiler/ir"
)

// printBuiltin is the only call with special meaning. Every other callee is
// emitted as a plain C call whether or not it is defined anywhere.
const printBuiltin = "print"

// Emit renders n as a C expression.
func Emit(n ir.Node) (string, error) {
	var b strings.Builder
	if err := emit(&b, n); err != nil {
		return "", err
	}
	return b.String(), nil
}

func emit(b *strings.Builder, node ir.Node) error {
	if node != nil && ir.IsNil(node) {
		return &ir.UnknownNodeError{Stage: "emit", Variant: "nil " + ir.VariantName(node)}
	}
	switch n := node.(type) {
	case *ir.Int:
		b.WriteString(n.Value)

	case *ir.Plus:
		return emitBinary(b, n.Left, " + ", n.Right)

	case *ir.Mult:
		return emitBinary(b, n.Left, " * ", n.Right)

	case *ir.Call:
		if n.Callee == nil {
			return &ir.UnknownNodeError{Stage: "emit", Variant: "Call without callee"}
		}
		if n.Callee.Name == printBuiltin {
			b.WriteString(`printf("%d\n", `)
		} else {
			b.WriteString(n.Callee.Name + "(")
		}
		if err := emit(b, n.Arg); err != nil {
			return err
		}
		b.WriteByte(')')

	default:
		return &ir.UnknownNodeError{Stage: "emit", Variant: ir.VariantName(node)}
	}
	return nil
}

// Operands are written as-is: the parser never puts a '+' below a '*', so
// no parentheses are needed.
func emitBinary(b *strings.Builder, left ir.Node, op string, right ir.Node) error {
	if err := emit(b, left); err != nil {
		return err
	}
	b.WriteString(op)
	return emit(b, right)
}
