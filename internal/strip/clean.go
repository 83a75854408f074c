package strip

import "strings"

// TrimBlankLines drops leading and trailing lines that are empty or
// whitespace only.
func TrimBlankLines(text string) string {
	lines := strings.Split(text, "\n")
	return strings.Join(trimBlank(lines), "\n")
}

func trimBlank(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && isBlank(lines[start]) {
		start++
	}
	for end > start && isBlank(lines[end-1]) {
		end--
	}
	return lines[start:end]
}

// PostClean tidies a header body after its includes have been removed:
// conditionals that no longer guard anything are dropped, surrounding blank
// lines are trimmed and blank runs are collapsed to a single blank line.
func PostClean(text string) string {
	lines := strings.Split(text, "\n")
	lines = dropEmptyConditionals(lines)
	lines = trimBlank(lines)
	lines = collapseBlankRuns(lines)
	return strings.Join(lines, "\n")
}

// dropEmptyConditionals removes any #if, #ifdef or #ifndef line followed
// (ignoring blank lines) by #endif. After a removal the scan steps back one
// line so that an enclosing conditional emptied by it is removed too.
func dropEmptyConditionals(lines []string) []string {
	i := 0
	for i < len(lines) {
		if !isDirective(lines[i], "if") {
			i++
			continue
		}
		j := i + 1
		for j < len(lines) && isBlank(lines[j]) {
			j++
		}
		if j < len(lines) && isDirective(lines[j], "endif") {
			lines = append(lines[:i], lines[j+1:]...)
			if i > 0 {
				i--
			}
			continue
		}
		i++
	}
	return lines
}

func collapseBlankRuns(lines []string) []string {
	out := lines[:0]
	for i, line := range lines {
		if isBlank(line) && i+1 < len(lines) && isBlank(lines[i+1]) {
			continue
		}
		out = append(out, line)
	}
	return out
}

// isDirective reports whether line is a preprocessor directive whose name
// starts with name. "if" therefore matches #if, #ifdef and #ifndef.
func isDirective(line, name string) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "#") {
		return false
	}
	trimmed = strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
	return strings.HasPrefix(trimmed, name)
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
