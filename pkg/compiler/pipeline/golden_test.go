package pipeline_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/exprc/pkg/compiler/pipeline"
)

// Each testdata/*.expr compiles to the C program in the matching .c file.
func TestGolden(t *testing.T) {
	sources, err := filepath.Glob(filepath.Join("testdata", "*.expr"))
	require.NoError(t, err)
	require.NotEmpty(t, sources)

	results, err := pipeline.CompileFiles(context.Background(), sources, nil)
	require.NoError(t, err)

	for i, src := range sources {
		t.Run(filepath.Base(src), func(t *testing.T) {
			want, err := os.ReadFile(strings.TrimSuffix(src, ".expr") + ".c")
			require.NoError(t, err)
			if diff := cmp.Diff(string(want), results[i].Program); diff != "" {
				t.Errorf("%s mismatch (-want +got):\n%s", src, diff)
			}
		})
	}
}
