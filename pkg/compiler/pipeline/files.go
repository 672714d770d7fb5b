package pipeline

import (
	"context"
	"os"
	"runtime"

	"github.com/golang/glog"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/agenthands/exprc/pkg/config"
)

// CompileFiles compiles each file independently and concurrently, at most
// cfg.Jobs at a time. results[i] belongs to paths[i] and is nil when that
// file failed. The returned error lists every failed file.
func CompileFiles(ctx context.Context, paths []string, cfg *config.Config) ([]*Result, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	jobs := cfg.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]*Result, len(paths))
	errs := make([]error, len(paths))

	var g errgroup.Group
	g.SetLimit(jobs)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = errors.Wrapf(err, "%s", path)
				return nil
			}
			src, err := os.ReadFile(path)
			if err != nil {
				errs[i] = &StageError{Stage: StageRead, File: path, Err: err}
				return nil
			}
			res, err := Compile(path, string(src), cfg)
			if err != nil {
				glog.Errorf("%s: %s", path, err)
				errs[i] = err
				return nil
			}
			results[i] = res
			return nil
		})
	}
	// Workers report through errs, never through the group.
	_ = g.Wait()

	var merr *multierror.Error
	for _, err := range errs {
		if err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	return results, merr.ErrorOrNil()
}
