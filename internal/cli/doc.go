// Package cli turns command-line arguments into an app.Config. Usage
// problems come back as *ExitError carrying the process exit code; help
// requests come back as a clean exit.
package cli
