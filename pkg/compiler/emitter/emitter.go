package emitter

import (
	"fmt"
	"strconv"

	"github.com/agenthands/exprc/pkg/compiler/ir"
	"github.com/agenthands/exprc/pkg/vm"
)

// Compile translates a lowered tree into bytecode for vm.Machine. Operands
// are pushed before their operator, so the result is left on the stack.
func Compile(n ir.Node) (*vm.Bytecode, error) {
	e := &bytecodeEmitter{names: make(map[string]int)}
	if err := e.emitNode(n); err != nil {
		return nil, err
	}
	e.emitOp(vm.OP_HALT, 0)

	return &vm.Bytecode{
		Instructions: e.instructions,
		Constants:    e.constants,
		Names:        e.nameList,
	}, nil
}

type bytecodeEmitter struct {
	instructions []uint32
	constants    []int64
	names        map[string]int
	nameList     []string
}

func (e *bytecodeEmitter) emitNode(node ir.Node) error {
	if node != nil && ir.IsNil(node) {
		return &ir.UnknownNodeError{Stage: "compile", Variant: "nil " + ir.VariantName(node)}
	}
	switch n := node.(type) {
	case *ir.Int:
		// C literal rules: a leading 0 means octal.
		val, err := strconv.ParseInt(n.Value, 0, 64)
		if err != nil {
			return fmt.Errorf("integer literal %q: %w", n.Value, err)
		}
		e.emitOp(vm.OP_PUSH_C, uint32(e.addConstant(val)))

	case *ir.Plus:
		if err := e.emitOperands(n.Left, n.Right); err != nil {
			return err
		}
		e.emitOp(vm.OP_ADD, 0)

	case *ir.Mult:
		if err := e.emitOperands(n.Left, n.Right); err != nil {
			return err
		}
		e.emitOp(vm.OP_MUL, 0)

	case *ir.Call:
		if n.Callee == nil {
			return &ir.UnknownNodeError{Stage: "compile", Variant: "Call without callee"}
		}
		if err := e.emitNode(n.Arg); err != nil {
			return err
		}
		if n.Callee.Name == printBuiltin {
			e.emitOp(vm.OP_PRINT, 0)
			return nil
		}
		e.emitOp(vm.OP_CALL_HOST, uint32(e.addName(n.Callee.Name)))

	default:
		return &ir.UnknownNodeError{Stage: "compile", Variant: ir.VariantName(node)}
	}
	return nil
}

func (e *bytecodeEmitter) emitOperands(left, right ir.Node) error {
	if err := e.emitNode(left); err != nil {
		return err
	}
	return e.emitNode(right)
}

func (e *bytecodeEmitter) emitOp(op uint8, arg uint32) {
	e.instructions = append(e.instructions, vm.Encode(op, arg))
}

func (e *bytecodeEmitter) addConstant(v int64) int {
	for i, c := range e.constants {
		if c == v {
			return i
		}
	}
	e.constants = append(e.constants, v)
	return len(e.constants) - 1
}

func (e *bytecodeEmitter) addName(name string) int {
	if idx, ok := e.names[name]; ok {
		return idx
	}
	e.names[name] = len(e.nameList)
	e.nameList = append(e.nameList, name)
	return len(e.nameList) - 1
}
