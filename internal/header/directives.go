package header

import "strings"

// scanIncludes removes include directives for library headers from text,
// along with a blank line directly following one, and rewrites every other
// line. It returns the remaining body and the included header names.
func (p *Parser) scanIncludes(text string) (string, []string) {
	var (
		body     strings.Builder
		includes []string
		seen     = make(map[string]struct{})
		matched  bool
	)

	for _, line := range strings.Split(text, "\n") {
		if m := p.includeRe.FindStringSubmatch(line); m != nil {
			if _, dup := seen[m[1]]; !dup {
				seen[m[1]] = struct{}{}
				includes = append(includes, m[1])
			}
			matched = true
			continue
		}
		if matched && strings.TrimSpace(line) == "" {
			matched = false
			continue
		}
		matched = false
		body.WriteString(p.rewriter.Line(line))
		body.WriteByte('\n')
	}

	return body.String(), includes
}
