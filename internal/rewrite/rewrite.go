// Package rewrite renames the library's reserved identifier prefixes so that
// an amalgamated copy cannot collide with another copy of the library in
// the same translation unit.
package rewrite

import "strings"

// Rewriter maps "lib_" to "prefix_lib_" and "LIB_" to "PREFIX_LIB_".
//
// By default every occurrence is rewritten, including one in the middle of a
// longer identifier such as my_lib_x. With Boundary set, an occurrence
// preceded by an identifier character is left alone.
type Rewriter struct {
	lowerFrom, lowerTo string
	upperFrom, upperTo string
	boundary           bool
}

// New returns a Rewriter for the reserved name library and user prefix.
func New(library, prefix string, boundary bool) *Rewriter {
	lib := strings.ToLower(library)
	return &Rewriter{
		lowerFrom: lib + "_",
		lowerTo:   strings.ToLower(prefix) + "_" + lib + "_",
		upperFrom: strings.ToUpper(lib) + "_",
		upperTo:   strings.ToUpper(prefix) + "_" + strings.ToUpper(lib) + "_",
		boundary:  boundary,
	}
}

// Line rewrites both reserved prefixes in s.
func (r *Rewriter) Line(s string) string {
	if !r.boundary {
		s = strings.ReplaceAll(s, r.lowerFrom, r.lowerTo)
		return strings.ReplaceAll(s, r.upperFrom, r.upperTo)
	}
	s = replaceAtBoundary(s, r.lowerFrom, r.lowerTo)
	return replaceAtBoundary(s, r.upperFrom, r.upperTo)
}

func replaceAtBoundary(s, from, to string) string {
	if !strings.Contains(s, from) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + len(to))
	for i := 0; i < len(s); {
		if strings.HasPrefix(s[i:], from) && (i == 0 || !isIdentByte(s[i-1])) {
			b.WriteString(to)
			i += len(from)
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

func isIdentByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
