package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/amalgamate/internal/config"
	"go.uber.org/multierr"
)

// StdinPath as the input path reads the root file from standard input.
const StdinPath = "-"

var (
	ErrMissingInput  = errors.New("missing required option -i <input>")
	ErrMissingOutput = errors.New("missing required option -o <output>")
	ErrMissingPrefix = errors.New("missing required option -p <prefix>")
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	InputPath  string
	OutputPath string
	Prefix     string

	ProjectPath  string
	SearchRoots  []string // overrides the project file when set
	WordBoundary bool
	Watch        bool

	LogFormat string
	LogLevel  string

	// Project is resolved by NewConfig.
	Project *config.Project
}

// NewConfig merges cfg with the project file it names, if any, and checks
// that every required option ended up set. All missing options are
// reported together.
func NewConfig(ctx context.Context, cfg Config) (*Config, error) {
	project := config.Default()
	if cfg.ProjectPath != "" {
		var err error
		project, err = config.Load(ctx, cfg.ProjectPath, cfg.Prefix)
		if err != nil {
			return nil, err
		}
	}

	if cfg.OutputPath == "" {
		cfg.OutputPath = project.Output
	}
	if len(cfg.SearchRoots) > 0 {
		project.SearchRoots = cfg.SearchRoots
	}
	cfg.SearchRoots = project.SearchRoots
	cfg.WordBoundary = cfg.WordBoundary || project.WordBoundary
	cfg.Project = project

	var err error
	if cfg.InputPath == "" {
		err = multierr.Append(err, ErrMissingInput)
	}
	if cfg.OutputPath == "" {
		err = multierr.Append(err, ErrMissingOutput)
	}
	if cfg.Prefix == "" {
		err = multierr.Append(err, ErrMissingPrefix)
	}
	if len(cfg.SearchRoots) == 0 {
		err = multierr.Append(err, fmt.Errorf("no header search roots configured"))
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
