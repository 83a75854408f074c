package app_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/specialistvlad/amalgamate/internal/app"
	"github.com/specialistvlad/amalgamate/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfig(t *testing.T, dir string, cfg app.Config) *app.Config {
	t.Helper()
	cfg.SearchRoots = []string{filepath.Join(dir, "include")}
	cfg.Prefix = "mylib"
	if cfg.OutputPath == "" {
		cfg.OutputPath = filepath.Join(dir, "out.h")
	}
	c, err := app.NewConfig(context.Background(), cfg)
	require.NoError(t, err)
	return c
}

func TestRun_WritesOutput(t *testing.T) {
	dir := testutil.WriteTree(t, map[string]string{
		"include/ghost/a.h": testutil.Header("ghost/a.h", "int ghost_a;"),
		"root.c":            "#include \"ghost/a.h\"\n",
	})
	cfg := newConfig(t, dir, app.Config{InputPath: filepath.Join(dir, "root.c"), LogLevel: "debug"})

	logs := &app.SafeBuffer{}
	require.NoError(t, app.NewApp(logs, nil, cfg).Run(context.Background()))

	out, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)
	assert.Contains(t, string(out), "int mylib_ghost_a;\n")
	assert.Contains(t, logs.String(), "Wrote amalgamated header.")
	assert.Contains(t, logs.String(), "Parsing header.")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"), "temporary file %s left behind", e.Name())
	}
}

func TestRun_ReadsStdin(t *testing.T) {
	dir := testutil.WriteTree(t, map[string]string{
		"include/ghost/a.h": testutil.Header("ghost/a.h", "int ghost_a;"),
	})
	cfg := newConfig(t, dir, app.Config{InputPath: app.StdinPath})

	stdin := strings.NewReader("#include \"ghost/a.h\"\n")
	require.NoError(t, app.NewApp(&app.SafeBuffer{}, stdin, cfg).Run(context.Background()))

	out, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)
	assert.Contains(t, string(out), " *     ghost/a.h\n")
}

func TestRun_FailureKeepsPreviousOutput(t *testing.T) {
	dir := testutil.WriteTree(t, map[string]string{
		"include/ghost/a.h": testutil.Header("ghost/a.h", "int a;", "ghost/missing.h"),
		"root.c":            "#include \"ghost/a.h\"\n",
		"out.h":             "previous",
	})
	cfg := newConfig(t, dir, app.Config{InputPath: filepath.Join(dir, "root.c")})

	err := app.NewApp(&app.SafeBuffer{}, nil, cfg).Run(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "ghost/missing.h")

	out, readErr := os.ReadFile(cfg.OutputPath)
	require.NoError(t, readErr)
	assert.Equal(t, "previous", string(out))
}

func TestRun_MissingInput(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "include"), 0o755))
	cfg := newConfig(t, dir, app.Config{InputPath: filepath.Join(dir, "nope.c")})

	err := app.NewApp(&app.SafeBuffer{}, nil, cfg).Run(context.Background())
	assert.ErrorContains(t, err, "failed to read input")
}

func TestRun_WatchRebuildsOnChange(t *testing.T) {
	dir := testutil.WriteTree(t, map[string]string{
		"include/ghost/a.h": testutil.Header("ghost/a.h", "int ghost_a;"),
		"root.c":            "#include \"ghost/a.h\"\n",
	})
	cfg := newConfig(t, dir, app.Config{InputPath: filepath.Join(dir, "root.c"), Watch: true})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.NewApp(&app.SafeBuffer{}, nil, cfg).Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	readOut := func() string {
		data, _ := os.ReadFile(cfg.OutputPath)
		return string(data)
	}
	require.Eventually(t, func() bool { return strings.Contains(readOut(), "int mylib_ghost_a;") }, 5*time.Second, 20*time.Millisecond)

	// Give the watcher time to register before editing.
	time.Sleep(200 * time.Millisecond)
	header := filepath.Join(dir, "include", "ghost", "a.h")
	require.NoError(t, os.WriteFile(header, []byte(testutil.Header("ghost/a.h", "int ghost_b;")), 0o644))

	require.Eventually(t, func() bool { return strings.Contains(readOut(), "int mylib_ghost_b;") }, 5*time.Second, 20*time.Millisecond)
}
