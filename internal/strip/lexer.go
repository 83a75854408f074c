package strip

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCommentContinuation is returned for a // comment whose line ends in
	// a backslash. The next line would be folded into the comment by a C
	// compiler; the stripper cannot reproduce that safely.
	ErrCommentContinuation = errors.New("line continuation of // comments is not supported")

	// ErrUnterminatedComment is returned when a /* comment is still open at
	// the end of the file.
	ErrUnterminatedComment = errors.New("unterminated /* comment")
)

type lexState int

const (
	stateCode lexState = iota
	stateLineComment
	stateBlockComment
)

// lexer tracks comment state across the lines of a single file.
type lexer struct {
	state lexState
}

// scanLine returns the code portion of line. commented reports whether any
// part of the line belonged to a comment; lineComment whether a // comment
// started on it.
func (l *lexer) scanLine(line string) (code string, commented, lineComment bool) {
	var b strings.Builder
	b.Grow(len(line))
	commented = l.state == stateBlockComment

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch l.state {
		case stateCode:
			if c == '/' && i+1 < len(line) {
				switch line[i+1] {
				case '/':
					l.state = stateLineComment
					commented, lineComment = true, true
					i++
					continue
				case '*':
					l.state = stateBlockComment
					commented = true
					i++
					continue
				}
			}
			b.WriteByte(c)
		case stateLineComment:
			i = len(line)
		case stateBlockComment:
			if c == '*' && i+1 < len(line) && line[i+1] == '/' {
				l.state = stateCode
				i++
				// a/**/b must not become ab
				if i+1 < len(line) && isIdentByte(line[i+1]) && b.Len() > 0 && isIdentByte(b.String()[b.Len()-1]) {
					b.WriteByte(' ')
				}
			}
		}
	}

	if l.state == stateLineComment {
		l.state = stateCode
	}
	return b.String(), commented, lineComment
}

// Comments removes all // and /* */ comments from text. filename is only
// used in error messages.
//
// Lines that contain only comments are removed. A line that still carries
// code keeps it, with trailing whitespace trimmed. A line left blank is kept
// (as its remaining whitespace) only when the previous kept line is a
// backslash continuation. Such a line ends in a backslash itself when a
// block comment is still open at its end.
func Comments(text, filename string) (string, error) {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	var lx lexer

	for n, line := range lines {
		code, commented, lineComment := lx.scanLine(line)
		if !commented {
			out = append(out, line)
			continue
		}
		if lineComment && strings.HasSuffix(strings.TrimSpace(line), `\`) {
			return "", fmt.Errorf("%s:%d: %w", filename, n+1, ErrCommentContinuation)
		}
		code = strings.TrimRight(code, " \t")
		if !continues(out) {
			if isBlankCode(code) {
				continue
			}
		} else if lx.state == stateBlockComment {
			// The comment still open here stands for a single space, so
			// the directive goes on past it.
			code = continueLine(code)
		}
		out = append(out, code)
	}

	if lx.state == stateBlockComment {
		return "", fmt.Errorf("%s: %w", filename, ErrUnterminatedComment)
	}
	return strings.Join(out, "\n"), nil
}

// isBlankCode reports whether what is left of a commented line carries no
// code. A lone backslash only joins the line to its successor, which is
// equivalent to dropping it.
func isBlankCode(code string) bool {
	trimmed := strings.TrimSpace(code)
	return trimmed == "" || trimmed == `\`
}

func continueLine(code string) string {
	switch {
	case strings.HasSuffix(code, `\`):
		return code
	case code == "":
		return `\`
	default:
		return code + ` \`
	}
}

// continues reports whether the last kept line is a backslash continuation.
func continues(lines []string) bool {
	if len(lines) == 0 {
		return false
	}
	return strings.HasSuffix(lines[len(lines)-1], `\`)
}

func isIdentByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
