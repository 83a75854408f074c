package strip

import "strings"

// Guard removes an include-guard wrapper of the form
//
//	#ifndef LIB_..._INCLUDED
//	#define LIB_..._INCLUDED
//	...
//	#endif
//
// where LIB is the upper-cased library name and the three guard lines are
// the first two and the last non-blank lines. text must already have its
// comments stripped. The second result reports whether a guard was found;
// text without one is returned unchanged.
func Guard(text, library string) (string, bool) {
	lines := strings.Split(text, "\n")
	var marks []int
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			marks = append(marks, i)
		}
	}
	if len(marks) < 3 {
		return text, false
	}
	first, second, last := marks[0], marks[1], marks[len(marks)-1]

	prefix := strings.ToUpper(library) + "_"
	ifndef, ok := guardName(lines[first], "#ifndef", prefix)
	if !ok {
		return text, false
	}
	define, ok := guardName(lines[second], "#define", prefix)
	if !ok || define != ifndef {
		return text, false
	}
	if strings.TrimSpace(lines[last]) != "#endif" {
		return text, false
	}

	return strings.Join(lines[second+1:last], "\n"), true
}

func guardName(line, directive, prefix string) (string, bool) {
	fields := strings.Fields(line)
	if len(fields) != 2 || fields[0] != directive {
		return "", false
	}
	name := fields[1]
	if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, "_INCLUDED") {
		return "", false
	}
	return name, true
}
