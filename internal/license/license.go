// Package license validates and removes the fixed MIT-0 preamble every
// library header starts with, collecting the attribution lines found inside
// it so that the amalgamation can carry one merged preamble.
package license

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedLicense is wrapped by every *Error.
var ErrMalformedLicense = errors.New("file has incorrect copyright preamble")

// CopyrightPrefix starts every attribution line inside the preamble.
const CopyrightPrefix = " * Copyright (c) "

// Open is the part of the preamble before the attribution lines.
var Open = []string{
	"/*",
	" * MIT No Attribution",
	" *",
}

// Close is the part of the preamble after the attribution lines.
var Close = []string{
	" *",
	" * Permission is hereby granted, free of charge, to any person obtaining a copy",
	" * of this software and associated documentation files (the \"Software\"), to",
	" * deal in the Software without restriction, including without limitation the",
	" * rights to use, copy, modify, merge, publish, distribute, sublicense, and/or",
	" * sell copies of the Software, and to permit persons to whom the Software is",
	" * furnished to do so.",
	" *",
	" * THE SOFTWARE IS PROVIDED \"AS IS\", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR",
	" * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,",
	" * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE",
	" * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER",
	" * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING",
	" * FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS",
	" * IN THE SOFTWARE.",
	" */",
}

// Error describes a preamble that does not match the template.
type Error struct {
	File   string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%s): %s", ErrMalformedLicense, e.Reason, e.File)
}

func (e *Error) Unwrap() error {
	return ErrMalformedLicense
}

// Extract removes the preamble from the start of text and returns the rest.
// The attribution lines are added to set only when the whole preamble is
// valid. filename is used in errors.
func Extract(text, filename string, set *Set) (string, error) {
	lines := strings.Split(text, "\n")

	if !hasPrefixLines(lines, Open) {
		return "", &Error{File: filename, Reason: "license header does not match"}
	}
	lines = lines[len(Open):]

	var found []string
	for len(lines) > 0 && strings.HasPrefix(lines[0], CopyrightPrefix) {
		found = append(found, lines[0])
		lines = lines[1:]
	}
	if len(found) == 0 {
		return "", &Error{File: filename, Reason: "no copyright line"}
	}

	if !hasPrefixLines(lines, Close) {
		return "", &Error{File: filename, Reason: "license body does not match"}
	}
	lines = lines[len(Close):]

	for _, line := range found {
		set.Add(line)
	}
	return strings.Join(lines, "\n"), nil
}

func hasPrefixLines(lines, prefix []string) bool {
	if len(lines) < len(prefix) {
		return false
	}
	for i, want := range prefix {
		if lines[i] != want {
			return false
		}
	}
	return true
}
