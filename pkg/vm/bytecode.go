package vm

// Bytecode represents the compiled output of an expression.
type Bytecode struct {
	Instructions []uint32
	Constants    []int64
	Names        []string // host function names, indexed by OP_CALL_HOST
}
