// exprc compiles the expression language to C, and can also run it on the
// bytecode vm.
package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"strconv"

	"github.com/fatih/color"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/agenthands/exprc/pkg/config"
)

// flag names
const (
	configFlagName    = "config"
	noColorFlagName   = "no-color"
	verbosityFlagName = "verbosity"
)

// env is what every command shares: the standard streams and the loaded
// config.
type env struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	cfg    *config.Config
}

func newApp(e *env) *cli.App {
	return &cli.App{
		Name:      "exprc",
		Usage:     "compile print(34 + 17 * foo(2)) style expressions to C",
		Reader:    e.stdin,
		Writer:    e.stdout,
		ErrWriter: e.stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  configFlagName,
				Usage: "YAML config file",
			},
			&cli.BoolFlag{
				Name:  noColorFlagName,
				Usage: "disable coloured diagnostics",
			},
			&cli.IntFlag{
				Name:  verbosityFlagName,
				Usage: "glog verbosity; 1 logs stage summaries, 2 adds bytecode detail",
			},
		},
		Before: e.before,
		Commands: []*cli.Command{
			buildCommand(e),
			tokensCommand(e),
			treeCommand(e),
			runCommand(e),
			checkCommand(e),
			demoCommand(e),
		},
	}
}

func (e *env) before(c *cli.Context) error {
	if c.Bool(noColorFlagName) {
		color.NoColor = true
	}
	if c.IsSet(verbosityFlagName) {
		if err := flag.Set("v", strconv.Itoa(c.Int(verbosityFlagName))); err != nil {
			return err
		}
	}
	e.cfg = config.Default()
	if path := c.String(configFlagName); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		e.cfg = cfg
	}
	return nil
}

// report prints err to stderr in red.
func (e *env) report(err error) {
	red := color.New(color.FgRed)
	_, _ = red.Fprintln(e.stderr, err.Error())
}

func main() {
	// glog is configured from our own flags; mark the standard set parsed so
	// it does not complain.
	_ = flag.Set("logtostderr", "true")
	_ = flag.CommandLine.Parse(nil)
	defer glog.Flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	e := &env{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	if err := newApp(e).RunContext(ctx, os.Args); err != nil {
		e.report(err)
		glog.Flush()
		stop()
		os.Exit(1)
	}
}

// usageError is returned for bad command lines.
func usageError(format string, args ...interface{}) error {
	return errors.Errorf("usage: "+format, args...)
}
