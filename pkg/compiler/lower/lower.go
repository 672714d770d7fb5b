// Package lower turns parse trees into the ir trees consumed by the
// emitters. Today the mapping is one node for one node; semantic passes
// belong here.
package lower

import (
	"github.com/agenthands/exprc/pkg/compiler/ast"
	"github.com/agenthands/exprc/pkg/compiler/ir"
)

const stage = "lower"

// Lower converts n and its subtree. A standalone Identifier is rejected:
// identifiers are only valid as the callee of a Call.
func Lower(n ast.Node) (ir.Node, error) {
	if n != nil && ast.IsNil(n) {
		return nil, &ir.UnknownNodeError{Stage: stage, Variant: "nil " + ir.VariantName(n)}
	}
	switch n := n.(type) {
	case *ast.Plus:
		left, right, err := lowerPair(n.Left, n.Right)
		if err != nil {
			return nil, err
		}
		return &ir.Plus{Left: left, Right: right}, nil

	case *ast.Mult:
		left, right, err := lowerPair(n.Left, n.Right)
		if err != nil {
			return nil, err
		}
		return &ir.Mult{Left: left, Right: right}, nil

	case *ast.Int:
		return &ir.Int{Value: n.Value}, nil

	case *ast.Call:
		if n.Callee == nil {
			return nil, &ir.UnknownNodeError{Stage: stage, Variant: "Call without callee"}
		}
		arg, err := Lower(n.Arg)
		if err != nil {
			return nil, err
		}
		return &ir.Call{
			Callee: &ir.Identifier{Name: n.Callee.Name},
			Arg:    arg,
		}, nil

	default:
		return nil, &ir.UnknownNodeError{Stage: stage, Variant: ir.VariantName(n)}
	}
}

func lowerPair(l, r ast.Node) (ir.Node, ir.Node, error) {
	left, err := Lower(l)
	if err != nil {
		return nil, nil, err
	}
	right, err := Lower(r)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}
