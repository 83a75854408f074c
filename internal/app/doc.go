// Package app contains the core application logic. It defines the App
// struct, its configuration, and one amalgamation run from reading the root
// file to replacing the output file, decoupled from the CLI entrypoint.
package app
