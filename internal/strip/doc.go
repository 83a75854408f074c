// Package strip removes everything from a header's text that must not reach
// the amalgamation: C and C++ comments, the include-guard wrapper, and the
// empty preprocessor conditionals and blank runs left behind once nested
// includes have been taken out.
//
// Comment removal is a small lexer over the text with three states (code,
// line comment, block comment). It works line by line so that line structure
// survives: a line that becomes blank is dropped unless the previous kept line
// ends in a backslash, in which case dropping it would splice the next line
// into a macro definition.
package strip
