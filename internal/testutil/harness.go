// Package testutil builds on-disk header trees for tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/specialistvlad/amalgamate/internal/license"
	"github.com/stretchr/testify/require"
)

// DefaultCopyright is the attribution line Licensed uses when none is given.
const DefaultCopyright = " * Copyright (c) 2022 Fraser Heavy Software"

// Licensed wraps body in the MIT-0 preamble every library header carries.
func Licensed(body string, copyrights ...string) string {
	if len(copyrights) == 0 {
		copyrights = []string{DefaultCopyright}
	}
	lines := append([]string{}, license.Open...)
	lines = append(lines, copyrights...)
	lines = append(lines, license.Close...)
	return strings.Join(lines, "\n") + "\n\n" + body
}

// Guarded wraps body in the include guard for key, e.g. ghost/a.h becomes
// GHOST_A_H_INCLUDED.
func Guarded(key, body string) string {
	name := GuardName(key)
	return "#ifndef " + name + "\n#define " + name + "\n\n" + body + "\n\n#endif\n"
}

// GuardName derives the guard macro name conventionally used for key:
// ghost/string/ghost_strsep.h becomes GHOST_STRSEP_H_INCLUDED.
func GuardName(key string) string {
	base := filepath.Base(key)
	base = strings.NewReplacer(".", "_", "-", "_").Replace(base)
	return "GHOST_" + strings.ToUpper(strings.TrimPrefix(base, "ghost_")) + "_INCLUDED"
}

// Header is a complete library header: license, guard, includes and body.
func Header(key, body string, includes ...string) string {
	var b strings.Builder
	for _, inc := range includes {
		b.WriteString("#include \"" + inc + "\"\n")
	}
	if len(includes) > 0 {
		b.WriteString("\n")
	}
	b.WriteString(body)
	return Licensed(Guarded(key, b.String()))
}

// WriteTree writes files below a fresh temporary directory and returns it.
// Keys are slash separated paths relative to that directory.
func WriteTree(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}
