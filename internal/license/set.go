package license

import "sort"

// Set holds unique attribution lines. The zero value is ready to use.
type Set struct {
	lines map[string]struct{}
}

// Add records line. Adding the same text twice keeps one copy.
func (s *Set) Add(line string) {
	if s.lines == nil {
		s.lines = make(map[string]struct{})
	}
	s.lines[line] = struct{}{}
}

// Len returns the number of unique lines.
func (s *Set) Len() int {
	return len(s.lines)
}

// Sorted returns the lines in lexicographic order.
func (s *Set) Sorted() []string {
	out := make([]string, 0, len(s.lines))
	for line := range s.lines {
		out = append(out, line)
	}
	sort.Strings(out)
	return out
}
