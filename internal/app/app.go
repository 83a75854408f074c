package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/amalgamate/internal/composer"
	"github.com/specialistvlad/amalgamate/internal/ctxlog"
	"github.com/specialistvlad/amalgamate/internal/dag"
	"github.com/specialistvlad/amalgamate/internal/fsutil"
	"github.com/specialistvlad/amalgamate/internal/session"
	"github.com/specialistvlad/amalgamate/internal/watch"
	"go.uber.org/multierr"
)

// App runs amalgamations for one configuration.
type App struct {
	cfg    *Config
	logger *slog.Logger
	stdin  io.Reader
	finder *fsutil.Finder

	// stdinText is kept so that watch mode can re-run without re-reading
	// standard input.
	stdinText *string
}

// NewApp returns an App that logs to logW and reads "-" input from stdin.
func NewApp(logW io.Writer, stdin io.Reader, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		cfg:    cfg,
		logger: logger,
		stdin:  stdin,
		finder: fsutil.NewFinder(cfg.SearchRoots...),
	}
}

// Run writes the amalgamation once and, in watch mode, again after every
// change to the headers until ctx is done.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if err := a.Amalgamate(ctx); err != nil {
		return err
	}
	if !a.cfg.Watch {
		return nil
	}
	return a.watch(ctx)
}

// Amalgamate performs one complete run with a fresh Session. The output
// file is replaced only when the whole run succeeds.
func (a *App) Amalgamate(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	name, text, err := a.readInput()
	if err != nil {
		return err
	}

	project := a.cfg.Project
	s := session.New(a.finder, session.Options{
		Library:      project.Library,
		Prefix:       a.cfg.Prefix,
		WordBoundary: a.cfg.WordBoundary,
		Core:         dag.Namespace(project.CoreNamespace),
		Categories:   project.CategoryOrder,
	})
	res, err := s.Amalgamate(ctx, name, text)
	if err != nil {
		return fmt.Errorf("amalgamation failed: %w", err)
	}

	out := composer.Compose(ctx, res, composer.Options{
		Library:   project.Library,
		Prefix:    a.cfg.Prefix,
		SourceURL: project.SourceURL,
	})
	if err := writeFileAtomic(a.cfg.OutputPath, out); err != nil {
		return fmt.Errorf("failed to write %s: %w", a.cfg.OutputPath, err)
	}
	a.logger.Info("Wrote amalgamated header.", "path", a.cfg.OutputPath, "headers", len(res.Sections))
	return nil
}

func (a *App) readInput() (name, text string, err error) {
	if a.cfg.InputPath != StdinPath {
		data, err := os.ReadFile(a.cfg.InputPath)
		if err != nil {
			return "", "", fmt.Errorf("failed to read input: %w", err)
		}
		return a.cfg.InputPath, string(data), nil
	}

	if a.stdinText == nil {
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return "", "", fmt.Errorf("failed to read standard input: %w", err)
		}
		s := string(data)
		a.stdinText = &s
	}
	return "<stdin>", *a.stdinText, nil
}

func (a *App) watch(ctx context.Context) error {
	dirs, err := a.finder.Dirs()
	if err != nil {
		return fmt.Errorf("failed to list header directories: %w", err)
	}
	if a.cfg.InputPath != StdinPath {
		dirs = append(dirs, filepath.Dir(a.cfg.InputPath))
	}

	output, err := filepath.Abs(a.cfg.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to resolve output path: %w", err)
	}
	w, err := watch.New(dirs, watch.WithIgnore(func(path string) bool {
		return isOutput(path, output)
	}))
	if err != nil {
		return err
	}
	defer w.Close()

	a.logger.Info("Watching for changes.", "dirs", len(dirs))
	return w.Run(ctx, func(ctx context.Context) {
		if err := a.Amalgamate(ctx); err != nil {
			a.logger.Error("Amalgamation failed, keeping previous output.", "error", err)
		}
	})
}

// isOutput reports whether path is the absolute output file or one of its
// temporary siblings.
func isOutput(path, output string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	if abs == output {
		return true
	}
	return filepath.Dir(abs) == filepath.Dir(output) && strings.HasPrefix(filepath.Base(abs), tempPrefix(output))
}

func tempPrefix(path string) string {
	return "." + filepath.Base(path) + "-"
}

// writeFileAtomic writes data next to path and renames it into place, so
// that a failed run never leaves a partial file behind.
func writeFileAtomic(path string, data []byte) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), tempPrefix(path)+"*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(f.Name())
		}
	}()

	_, err = f.Write(data)
	err = multierr.Append(err, f.Close())
	if err != nil {
		return err
	}
	if err = os.Chmod(f.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}
