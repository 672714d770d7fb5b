package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/agenthands/exprc/pkg/compiler/pipeline"
)

// flag names
const (
	outFlagName  = "out"
	jobsFlagName = "jobs"
)

// buildCmd holds the flag values for the `build` subcommand. With file
// arguments it writes one .c file per input; with none it compiles stdin to
// stdout.
type buildCmd struct {
	*env
	out  string
	jobs int
}

func buildCommand(e *env) *cli.Command {
	cmd := &buildCmd{env: e}
	return &cli.Command{
		Name:      "build",
		Usage:     "compile expression files to C",
		ArgsUsage: "[FILE...]",
		Flags:     cmd.flags(),
		Action:    cmd.action,
	}
}

func (cmd *buildCmd) flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        outFlagName,
			Usage:       "directory for the generated .c files; defaults to next to each input",
			Destination: &cmd.out,
		},
		&cli.IntFlag{
			Name:        jobsFlagName,
			Usage:       "files compiled at once; overrides the config, 0 means GOMAXPROCS",
			Destination: &cmd.jobs,
		},
	}
}

func (cmd *buildCmd) action(c *cli.Context) error {
	if c.NArg() == 0 {
		file, src, err := cmd.source(c)
		if err != nil {
			return err
		}
		res, err := pipeline.Compile(file, src, cmd.cfg)
		if err != nil {
			return err
		}
		_, err = cmd.stdout.Write([]byte(res.Program))
		return err
	}

	cfg := *cmd.cfg
	if c.IsSet(jobsFlagName) {
		if cmd.jobs < 0 {
			return usageError("--%s must not be negative", jobsFlagName)
		}
		cfg.Jobs = cmd.jobs
	}
	if cmd.out != "" {
		if err := os.MkdirAll(cmd.out, 0o755); err != nil {
			return errors.Wrapf(err, "creating %s", cmd.out)
		}
	}

	paths := c.Args().Slice()
	results, err := pipeline.CompileFiles(c.Context, paths, &cfg)
	var merr *multierror.Error
	if err != nil {
		merr = multierror.Append(merr, err)
	}
	for i, res := range results {
		if res == nil {
			continue
		}
		dst := outputPath(paths[i], cmd.out)
		if err := os.WriteFile(dst, []byte(res.Program), 0o644); err != nil {
			merr = multierror.Append(merr, errors.Wrapf(err, "writing %s", dst))
			continue
		}
		glog.V(1).Infof("wrote %s", dst)
	}
	return merr.ErrorOrNil()
}

// outputPath swaps the extension of src for .c, and moves it into dir when
// dir is set.
func outputPath(src, dir string) string {
	name := strings.TrimSuffix(src, filepath.Ext(src)) + ".c"
	if dir != "" {
		name = filepath.Join(dir, filepath.Base(name))
	}
	return name
}
