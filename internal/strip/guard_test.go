package strip

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuard(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		expected string
		found    bool
	}{
		{
			name:     "matching guard is removed",
			input:    "#ifndef GHOST_FOO_H_INCLUDED\n#define GHOST_FOO_H_INCLUDED\nint foo;\n#endif",
			expected: "int foo;",
			found:    true,
		},
		{
			name:     "body keeps inner blank lines",
			input:    "#ifndef GHOST_FOO_H_INCLUDED\n#define GHOST_FOO_H_INCLUDED\n\nint foo;\n\nint bar;\n#endif",
			expected: "\nint foo;\n\nint bar;",
			found:    true,
		},
		{
			name:     "blank line between #ifndef and #define",
			input:    "#ifndef GHOST_FOO_H_INCLUDED\n\n#define GHOST_FOO_H_INCLUDED\nint foo;\n#endif",
			expected: "int foo;",
			found:    true,
		},
		{
			name:     "surrounding blank lines are ignored",
			input:    "\n#ifndef GHOST_FOO_H_INCLUDED\n#define GHOST_FOO_H_INCLUDED\nint foo;\n#endif\n\n",
			expected: "int foo;",
			found:    true,
		},
		{
			name:     "mismatched names are kept",
			input:    "#ifndef GHOST_FOO_H_INCLUDED\n#define GHOST_BAR_H_INCLUDED\nint foo;\n#endif",
			expected: "#ifndef GHOST_FOO_H_INCLUDED\n#define GHOST_BAR_H_INCLUDED\nint foo;\n#endif",
		},
		{
			name:     "foreign library prefix is kept",
			input:    "#ifndef OTHER_FOO_H_INCLUDED\n#define OTHER_FOO_H_INCLUDED\nint foo;\n#endif",
			expected: "#ifndef OTHER_FOO_H_INCLUDED\n#define OTHER_FOO_H_INCLUDED\nint foo;\n#endif",
		},
		{
			name:     "missing _INCLUDED suffix is kept",
			input:    "#ifndef GHOST_FOO_H\n#define GHOST_FOO_H\nint foo;\n#endif",
			expected: "#ifndef GHOST_FOO_H\n#define GHOST_FOO_H\nint foo;\n#endif",
		},
		{
			name:     "last line not #endif is kept",
			input:    "#ifndef GHOST_FOO_H_INCLUDED\n#define GHOST_FOO_H_INCLUDED\nint foo;",
			expected: "#ifndef GHOST_FOO_H_INCLUDED\n#define GHOST_FOO_H_INCLUDED\nint foo;",
		},
		{
			name:     "guard around an empty body",
			input:    "#ifndef GHOST_FOO_H_INCLUDED\n#define GHOST_FOO_H_INCLUDED\n#endif",
			expected: "",
			found:    true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, found := Guard(tc.input, "ghost")
			assert.Equal(t, tc.found, found)
			assert.Equal(t, tc.expected, got)
		})
	}
}
