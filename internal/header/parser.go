// Package header turns the raw text of one file into the cleaned body that
// goes into the amalgamation plus the library headers it includes.
//
// The passes run in this order: license preamble, comments, include guard,
// include directives with identifier rewriting, then the post-clean of empty
// conditionals and blank runs.
package header

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/specialistvlad/amalgamate/internal/license"
	"github.com/specialistvlad/amalgamate/internal/rewrite"
	"github.com/specialistvlad/amalgamate/internal/strip"
)

// Parsed is the result of parsing one file.
type Parsed struct {
	// Body is the cleaned and rewritten text, without include directives
	// for library headers.
	Body string
	// Includes lists the library headers the file includes, in first-seen
	// order without duplicates.
	Includes []string
}

// Parser parses files of one library for one amalgamation run.
type Parser struct {
	library    string
	copyrights *license.Set
	rewriter   *rewrite.Rewriter
	includeRe  *regexp.Regexp
}

// NewParser returns a Parser for headers of library. Attribution lines found
// in license preambles are added to copyrights.
func NewParser(library string, copyrights *license.Set, rewriter *rewrite.Rewriter) *Parser {
	return &Parser{
		library:    library,
		copyrights: copyrights,
		rewriter:   rewriter,
		includeRe:  regexp.MustCompile(`#\s*include\s*"(` + regexp.QuoteMeta(library) + `.*)"`),
	}
}

// Parse cleans text. filename is used in error messages. requireLicense is
// false only for the root input file.
func (p *Parser) Parse(text, filename string, requireLicense bool) (*Parsed, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	if requireLicense {
		var err error
		text, err = license.Extract(text, filename, p.copyrights)
		if err != nil {
			return nil, err
		}
	}

	text, err := strip.Comments(text, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to strip comments: %w", err)
	}
	text = strip.TrimBlankLines(text)
	text, _ = strip.Guard(text, p.library)

	body, includes := p.scanIncludes(text)
	return &Parsed{
		Body:     strip.PostClean(body),
		Includes: includes,
	}, nil
}
