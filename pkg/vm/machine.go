package vm

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
)

var (
	ErrStackOverflow  = errors.New("vm: stack overflow")
	ErrStackUnderflow = errors.New("vm: stack underflow")
	ErrGasExhausted   = errors.New("vm: gas exhausted")
	ErrUnknownOpcode  = errors.New("vm: unknown opcode")
)

// HostFunction implements a callee for OP_CALL_HOST. It receives the
// evaluated argument and returns the call's value.
type HostFunction func(arg int64) (int64, error)

// UndefinedFunctionError is returned when the program calls a name with no
// registered host function.
type UndefinedFunctionError struct {
	Name string
}

func (e *UndefinedFunctionError) Error() string {
	return fmt.Sprintf("vm: undefined function %q", e.Name)
}

const StackDepth = 128

// Machine evaluates one expression at a time on a fixed-size stack.
// It is not safe for concurrent use; give each goroutine its own Machine.
type Machine struct {
	Stack [StackDepth]int64
	SP    int // Stack Pointer
	IP    int // Instruction Pointer

	Code      []uint32
	Constants []int64
	Names     []string

	// Stdout receives OP_PRINT output. nil means os.Stdout.
	Stdout io.Writer

	host map[string]HostFunction
}

// Reset clears execution state. Loaded code and host functions are kept.
func (m *Machine) Reset() {
	m.SP = 0
	m.IP = 0
	for i := range m.Stack {
		m.Stack[i] = 0
	}
}

// Load resets the machine and installs bc.
func (m *Machine) Load(bc *Bytecode) {
	m.Reset()
	m.Code = bc.Instructions
	m.Constants = bc.Constants
	m.Names = bc.Names
}

// RegisterHostFunction makes fn callable under name, replacing any earlier
// registration.
func (m *Machine) RegisterHostFunction(name string, fn HostFunction) {
	if m.host == nil {
		m.host = make(map[string]HostFunction)
	}
	m.host[name] = fn
}

// Push adds a value to the stack. Panics on overflow.
func (m *Machine) Push(v int64) {
	if m.SP >= StackDepth {
		panic(ErrStackOverflow)
	}
	m.Stack[m.SP] = v
	m.SP++
}

// Pop removes and returns the top value from the stack. Panics on underflow.
func (m *Machine) Pop() int64 {
	if m.SP <= 0 {
		panic(ErrStackUnderflow)
	}
	m.SP--
	return m.Stack[m.SP]
}

// Result returns the value left on top of the stack by the last run.
func (m *Machine) Result() (int64, bool) {
	if m.SP == 0 {
		return 0, false
	}
	return m.Stack[m.SP-1], true
}

// Run executes instructions until HALT, error, or gas exhaustion.
func (m *Machine) Run(gasLimit int) (err error) {
	// Stack panics from Push/Pop become errors.
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok && (e == ErrStackOverflow || e == ErrStackUnderflow) {
				err = e
				return
			}
			if re, ok := r.(runtime.Error); ok {
				err = fmt.Errorf("vm: bad instruction at %d: %v", m.IP, re)
				return
			}
			panic(r)
		}
	}()

	for i := 0; i < gasLimit; i++ {
		if m.IP >= len(m.Code) {
			// Falling off the end is treated like HALT.
			return nil
		}
		op, arg := Decode(m.Code[m.IP])

		switch op {
		case OP_HALT:
			return nil

		case OP_NOOP:

		case OP_PUSH_C:
			m.Push(m.Constants[arg])

		case OP_ADD:
			b, a := m.Pop(), m.Pop()
			m.Push(a + b)

		case OP_MUL:
			b, a := m.Pop(), m.Pop()
			m.Push(a * b)

		case OP_PRINT:
			// ( val -- written ), the same value C's printf returns.
			n, err := fmt.Fprintf(m.stdout(), "%d\n", m.Pop())
			if err != nil {
				return fmt.Errorf("vm: print: %w", err)
			}
			m.Push(int64(n))

		case OP_CALL_HOST:
			name := m.Names[arg]
			fn, ok := m.host[name]
			if !ok {
				return &UndefinedFunctionError{Name: name}
			}
			res, err := fn(m.Pop())
			if err != nil {
				return fmt.Errorf("vm: %s: %w", name, err)
			}
			m.Push(res)

		default:
			return fmt.Errorf("%w 0x%02x at %d", ErrUnknownOpcode, op, m.IP)
		}
		m.IP++
	}

	return ErrGasExhausted
}

func (m *Machine) stdout() io.Writer {
	if m.Stdout == nil {
		return os.Stdout
	}
	return m.Stdout
}
