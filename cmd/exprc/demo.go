package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/agenthands/exprc/pkg/compiler/ast"
	"github.com/agenthands/exprc/pkg/compiler/ir"
	"github.com/agenthands/exprc/pkg/compiler/pipeline"
	"github.com/agenthands/exprc/pkg/vm"
)

const (
	demoSource = "print(34 + 17 * foo(2))"
	// foo has no definition in C; on the vm it stands in for double.
	demoBinding = "foo=double"
)

func demoCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:   "demo",
		Usage:  "compile and run " + demoSource + ", showing every stage",
		Action: e.demo,
	}
}

func (e *env) demo(c *cli.Context) error {
	heading := color.New(color.FgCyan, color.Bold)
	section := func(title string) {
		_, _ = heading.Fprintf(e.stdout, "== %s ==\n", title)
	}

	section("source")
	fmt.Fprintln(e.stdout, demoSource)

	res, err := pipeline.Compile("<demo>", demoSource, e.cfg)
	if err != nil {
		return err
	}

	section("tokens")
	toks := make([]string, len(res.Tokens))
	for i, tok := range res.Tokens {
		toks[i] = tok.String()
	}
	fmt.Fprintln(e.stdout, strings.Join(toks, " "))

	section("ast")
	fmt.Fprintln(e.stdout, ast.Format(res.Tree))

	section("ir")
	fmt.Fprintln(e.stdout, ir.Format(res.Lowered))

	section("c")
	fmt.Fprint(e.stdout, res.Program)

	section("run (" + demoBinding + ")")
	m := &vm.Machine{Stdout: e.stdout}
	if err := registerHost(m, []string{demoBinding}); err != nil {
		return err
	}
	if err := pipeline.Run(res, m, e.cfg.Run.Gas); err != nil {
		return err
	}
	if v, ok := m.Result(); ok {
		fmt.Fprintf(e.stdout, "result: %d\n", v)
	}
	return nil
}
