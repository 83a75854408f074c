package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/amalgamate/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(ctx context.Context, args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("amalgamate", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
This tool amalgamates all Ghost headers included by a given input file, as
well as all other Ghost headers they depend on recursively.

All Ghost identifiers are prefixed to avoid conflicts with the unamalgamated
Ghost. This allows you to include the amalgamation in a library for example.

Usage:
  amalgamate -i <input> -o <output> -p <prefix> [options]

Options:
`)
		flagSet.PrintDefaults()
	}

	inputFlag := flagSet.String("i", "", "Input filename. '-' reads standard input.")
	outputFlag := flagSet.String("o", "", "Output filename.")
	prefixFlag := flagSet.String("p", "", "Prefix to prepend to all Ghost identifiers.")
	helpFlag := flagSet.Bool("?", false, "Show this help.")
	projectFlag := flagSet.String("c", "", "Path to an HCL project file.")
	var searchRoots stringList
	flagSet.Var(&searchRoots, "I", "Header search root, searched in the order given. Repeatable; replaces the defaults.")
	wordBoundaryFlag := flagSet.Bool("word-boundary", false, "Only rewrite reserved prefixes that start an identifier.")
	watchFlag := flagSet.Bool("watch", false, "Rebuild the output whenever a header changes.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if *helpFlag {
		flagSet.Usage()
		return nil, true, nil
	}

	if flagSet.NArg() > 0 {
		fmt.Fprintf(output, "Unrecognized option: %s\n", flagSet.Arg(0))
		flagSet.Usage()
		return nil, false, &ExitError{Code: 1, Message: "unrecognized option: " + flagSet.Arg(0)}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(ctx, app.Config{
		InputPath:    *inputFlag,
		OutputPath:   *outputFlag,
		Prefix:       *prefixFlag,
		ProjectPath:  *projectFlag,
		SearchRoots:  searchRoots,
		WordBoundary: *wordBoundaryFlag,
		Watch:        *watchFlag,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
	})
	if err != nil {
		flagSet.Usage()
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "input", config.InputPath, "output", config.OutputPath)
	return config, false, nil
}
