// Package apprun runs the whole app against a temporary header tree.
package apprun

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/specialistvlad/amalgamate/internal/app"
	"github.com/specialistvlad/amalgamate/internal/testutil"
	"github.com/stretchr/testify/require"
)

// RunResult holds everything an end-to-end run produced.
type RunResult struct {
	Err        error
	Output     string
	OutputPath string
	LogOutput  string
}

// RunAmalgamation writes files into a temporary tree, runs the app with the
// root file rootKey and prefix, and collects the result. Search roots are
// include/ and experimental/ of the tree.
func RunAmalgamation(t *testing.T, files map[string]string, rootKey, prefix string) *RunResult {
	t.Helper()

	dir := testutil.WriteTree(t, files)
	outPath := filepath.Join(dir, "out", "amalgamated.h")
	require.NoError(t, os.MkdirAll(filepath.Dir(outPath), 0o755))

	cfg, err := app.NewConfig(context.Background(), app.Config{
		InputPath:   filepath.Join(dir, filepath.FromSlash(rootKey)),
		OutputPath:  outPath,
		Prefix:      prefix,
		SearchRoots: []string{filepath.Join(dir, "include"), filepath.Join(dir, "experimental")},
		LogLevel:    "debug",
		LogFormat:   "text",
	})
	require.NoError(t, err)

	logs := &app.SafeBuffer{}
	runErr := app.NewApp(logs, strings.NewReader(""), cfg).Run(context.Background())

	res := &RunResult{Err: runErr, OutputPath: outPath, LogOutput: logs.String()}
	if data, err := os.ReadFile(outPath); err == nil {
		res.Output = string(data)
	}

	t.Cleanup(func() {
		if os.Getenv("AMALGAMATE_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), res.LogOutput)
		}
	})
	return res
}
