package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/agenthands/exprc/pkg/compiler/ast"
	"github.com/agenthands/exprc/pkg/compiler/ir"
	"github.com/agenthands/exprc/pkg/compiler/pipeline"
	"github.com/agenthands/exprc/pkg/vm"
)

// flag names
const (
	dumpFlagName = "dump"
	gasFlagName  = "gas"
	bindFlagName = "bind"
)

const (
	stdinName = "<stdin>"
	argsName  = "<args>"
)

// source returns the program text: the joined arguments, or stdin when
// there are none or the only one is "-".
func (e *env) source(c *cli.Context) (string, string, error) {
	args := c.Args().Slice()
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		b, err := io.ReadAll(e.stdin)
		if err != nil {
			return "", "", errors.Wrap(err, "reading stdin")
		}
		return stdinName, string(b), nil
	}
	return argsName, strings.Join(args, " "), nil
}

func tokensCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "tokens",
		Usage:     "print the token stream",
		ArgsUsage: "EXPR|-",
		Action: func(c *cli.Context) error {
			file, src, err := e.source(c)
			if err != nil {
				return err
			}
			lx, err := e.cfg.NewLexer(file)
			if err != nil {
				return err
			}
			tokens, err := lx.Tokenize(src)
			if err != nil {
				return &pipeline.StageError{Stage: pipeline.StageLex, File: file, Err: err}
			}
			for _, tok := range tokens {
				fmt.Fprintf(e.stdout, "%d:%d\t%s\n", tok.Loc.Line, tok.Loc.Column, tok)
			}
			return nil
		},
	}
}

type treeCmd struct {
	*env
	dump bool
}

func treeCommand(e *env) *cli.Command {
	cmd := &treeCmd{env: e}
	return &cli.Command{
		Name:      "tree",
		Usage:     "print the parse tree and the lowered tree",
		ArgsUsage: "EXPR|-",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        dumpFlagName,
				Usage:       "dump the full parse tree, tokens included",
				Destination: &cmd.dump,
			},
		},
		Action: cmd.action,
	}
}

func (cmd *treeCmd) action(c *cli.Context) error {
	file, src, err := cmd.source(c)
	if err != nil {
		return err
	}
	res, err := pipeline.Compile(file, src, cmd.cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.stdout, "ast: %s\n", ast.Format(res.Tree))
	fmt.Fprintf(cmd.stdout, "ir:  %s\n", ir.Format(res.Lowered))
	if cmd.dump {
		dumper := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}
		dumper.Fdump(cmd.stdout, res.Tree)
	}
	return nil
}

// runCmd executes an expression on the vm. print writes to stdout.
type runCmd struct {
	*env
	gas      int
	bindings cli.StringSlice
}

func runCommand(e *env) *cli.Command {
	cmd := &runCmd{env: e}
	return &cli.Command{
		Name:      "run",
		Usage:     "run an expression on the bytecode vm",
		ArgsUsage: "EXPR|-",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        gasFlagName,
				Usage:       "instruction limit; overrides the config",
				Destination: &cmd.gas,
			},
			&cli.StringSliceFlag{
				Name:        bindFlagName,
				Usage:       fmt.Sprintf("NAME=BUILTIN, make NAME call a builtin (%s)", strings.Join(builtinNames(), ", ")),
				Destination: &cmd.bindings,
			},
		},
		Action: cmd.action,
	}
}

func (cmd *runCmd) action(c *cli.Context) error {
	gas := cmd.cfg.Run.Gas
	if c.IsSet(gasFlagName) {
		if cmd.gas <= 0 {
			return usageError("--%s must be positive", gasFlagName)
		}
		gas = cmd.gas
	}
	file, src, err := cmd.source(c)
	if err != nil {
		return err
	}
	res, err := pipeline.Compile(file, src, cmd.cfg)
	if err != nil {
		return err
	}
	m := &vm.Machine{Stdout: cmd.stdout}
	if err := registerHost(m, cmd.bindings.Value()); err != nil {
		return err
	}
	return pipeline.Run(res, m, gas)
}

func checkCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "report whether an expression compiles",
		ArgsUsage: "EXPR|-",
		Action: func(c *cli.Context) error {
			file, src, err := e.source(c)
			if err != nil {
				return err
			}
			if _, err := pipeline.Compile(file, src, e.cfg); err != nil {
				return err
			}
			fmt.Fprintln(e.stdout, "No Errors Found")
			return nil
		},
	}
}
