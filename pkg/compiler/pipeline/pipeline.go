// Package pipeline chains the compiler stages: tokenize, parse, lower and
// emit. Each stage either returns a complete result or fails, and the first
// failure stops the pipeline.
package pipeline

import (
	"fmt"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/agenthands/exprc/pkg/compiler/ast"
	"github.com/agenthands/exprc/pkg/compiler/emitter"
	"github.com/agenthands/exprc/pkg/compiler/ir"
	"github.com/agenthands/exprc/pkg/compiler/lexer"
	"github.com/agenthands/exprc/pkg/compiler/lower"
	"github.com/agenthands/exprc/pkg/compiler/parser"
	"github.com/agenthands/exprc/pkg/config"
	"github.com/agenthands/exprc/pkg/vm"
)

type Stage string

const (
	StageRead  Stage = "read"
	StageLex   Stage = "lex"
	StageParse Stage = "parse"
	StageLower Stage = "lower"
	StageEmit  Stage = "emit"
	StageRun   Stage = "run"
)

// StageError records which stage failed. Err is the stage's own error, such
// as *lexer.LexError or *parser.ParseError.
type StageError struct {
	Stage Stage
	File  string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s error: %s", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// StageOf returns the stage that produced err, or "" if err did not come
// from the pipeline.
func StageOf(err error) Stage {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}

// Result holds the output of every stage for one input.
type Result struct {
	File    string
	Tokens  []lexer.Token
	Tree    ast.Node
	Lowered ir.Node
	Expr    string // the C expression
	Program string // the complete C program
}

// Compile runs src through every stage. A nil cfg means config.Default().
func Compile(file, src string, cfg *config.Config) (*Result, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	fail := func(stage Stage, err error) (*Result, error) {
		return nil, &StageError{Stage: stage, File: file, Err: err}
	}

	lx, err := cfg.NewLexer(file)
	if err != nil {
		return fail(StageLex, err)
	}
	tokens, err := lx.Tokenize(src)
	if err != nil {
		return fail(StageLex, err)
	}

	tree, err := parser.New(tokens).ParseExpression()
	if err != nil {
		return fail(StageParse, err)
	}

	lowered, err := lower.Lower(tree)
	if err != nil {
		return fail(StageLower, err)
	}

	expr, err := emitter.Emit(lowered)
	if err != nil {
		return fail(StageEmit, err)
	}
	program := emitter.EmitProgram(expr, cfg.EmitOptions()...)

	glog.V(1).Infof("%s: %d tokens, tree depth %d, %d bytes of C", file, len(tokens), ast.Depth(tree), len(program))

	return &Result{
		File:    file,
		Tokens:  tokens,
		Tree:    tree,
		Lowered: lowered,
		Expr:    expr,
		Program: program,
	}, nil
}

// Run executes a compiled result on m. print output goes to m.Stdout.
func Run(res *Result, m *vm.Machine, gas int) error {
	bc, err := emitter.Compile(res.Lowered)
	if err != nil {
		return &StageError{Stage: StageRun, File: res.File, Err: err}
	}
	glog.V(2).Infof("%s: %d instructions, %d constants, host calls %v", res.File, len(bc.Instructions), len(bc.Constants), bc.Names)

	m.Load(bc)
	if err := m.Run(gas); err != nil {
		return &StageError{Stage: StageRun, File: res.File, Err: err}
	}
	return nil
}
