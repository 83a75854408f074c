package header

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/amalgamate/internal/license"
	"github.com/specialistvlad/amalgamate/internal/rewrite"
	"github.com/specialistvlad/amalgamate/internal/strip"
	"github.com/specialistvlad/amalgamate/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestParser(copyrights *license.Set) *Parser {
	return NewParser("ghost", copyrights, rewrite.New("ghost", "mylib", false))
}

func TestParse_LibraryHeader(t *testing.T) {
	t.Parallel()

	var copyrights license.Set
	p := newTestParser(&copyrights)

	text := testutil.Header("ghost/string/ghost_strsep.h",
		"/* doc */\nchar* ghost_strsep(char** s, const char* d); // decl\n#define GHOST_STRSEP 1",
		"ghost/ghost_core.h", "ghost/type/ghost_char.h")

	parsed, err := p.Parse(text, "include/ghost/string/ghost_strsep.h", true)
	require.NoError(t, err)

	expectedBody := "char* mylib_ghost_strsep(char** s, const char* d);\n#define MYLIB_GHOST_STRSEP 1"
	if diff := cmp.Diff(expectedBody, parsed.Body); diff != "" {
		t.Errorf("body mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"ghost/ghost_core.h", "ghost/type/ghost_char.h"}, parsed.Includes)
	assert.Equal(t, []string{testutil.DefaultCopyright}, copyrights.Sorted())
}

func TestParse_GuardOnlyHeaderIsEmpty(t *testing.T) {
	t.Parallel()

	var copyrights license.Set
	p := newTestParser(&copyrights)

	text := testutil.Header("ghost/ghost_all.h", "", "ghost/a.h", "ghost/b.h")
	parsed, err := p.Parse(text, "ghost_all.h", true)
	require.NoError(t, err)
	assert.Empty(t, parsed.Body)
	assert.Equal(t, []string{"ghost/a.h", "ghost/b.h"}, parsed.Includes)
}

func TestParse_ConditionalIncludeLeavesNoEmptyBlock(t *testing.T) {
	t.Parallel()

	var copyrights license.Set
	p := newTestParser(&copyrights)

	body := "#ifndef ghost_has_ghost_x\n    #include \"ghost/header/c/ghost_string_h.h\"\n#endif\nint ghost_y;"
	parsed, err := p.Parse(testutil.Header("ghost/x.h", body), "x.h", true)
	require.NoError(t, err)
	assert.Equal(t, "int mylib_ghost_y;", parsed.Body)
	assert.Equal(t, []string{"ghost/header/c/ghost_string_h.h"}, parsed.Includes)
}

func TestParse_DuplicateIncludesAreRecordedOnce(t *testing.T) {
	t.Parallel()

	var copyrights license.Set
	p := newTestParser(&copyrights)

	body := "#include \"ghost/a.h\"\nint x;\n#include \"ghost/a.h\"\n#include \"ghost/b.h\""
	parsed, err := p.Parse(testutil.Licensed(body), "dup.h", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"ghost/a.h", "ghost/b.h"}, parsed.Includes)
	assert.Equal(t, "int x;", parsed.Body)
}

func TestParse_ForeignIncludesAreKept(t *testing.T) {
	t.Parallel()

	var copyrights license.Set
	p := newTestParser(&copyrights)

	body := "#include <string.h>\n#include \"other/x.h\"\n#include \"ghost/a.h\"\n\nint x;"
	parsed, err := p.Parse(testutil.Licensed(body), "f.h", true)
	require.NoError(t, err)
	assert.Equal(t, "#include <string.h>\n#include \"other/x.h\"\nint x;", parsed.Body)
	assert.Equal(t, []string{"ghost/a.h"}, parsed.Includes)
}

func TestParse_RootFileNeedsNoLicense(t *testing.T) {
	t.Parallel()

	var copyrights license.Set
	p := newTestParser(&copyrights)

	root := "// my library\n#include \"ghost/a.h\"\r\n#include \"ghost/b.h\"\r\n"
	parsed, err := p.Parse(root, "root.c", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"ghost/a.h", "ghost/b.h"}, parsed.Includes)
	assert.Zero(t, copyrights.Len())
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing license", func(t *testing.T) {
		var copyrights license.Set
		_, err := newTestParser(&copyrights).Parse("#define X 1", "bare.h", true)
		require.ErrorIs(t, err, license.ErrMalformedLicense)
		assert.ErrorContains(t, err, "bare.h")
	})

	t.Run("continued line comment", func(t *testing.T) {
		var copyrights license.Set
		_, err := newTestParser(&copyrights).Parse(testutil.Licensed("// a \\\nint x;"), "cont.h", true)
		require.ErrorIs(t, err, strip.ErrCommentContinuation)
	})
}
