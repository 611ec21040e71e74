package introspect

import "strings"

// balancedEnd returns the index just past the parenthesis that closes the
// one at text[open], or -1 when the text ends first. String and character
// literals are skipped.
func balancedEnd(text string, open int) int {
	depth := 0
	for i := open; i < len(text); i++ {
		switch text[i] {
		case '"', '\'':
			i = skipLiteral(text, i)
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return -1
}

// skipLiteral returns the index of the quote that closes the literal
// starting at text[start].
func skipLiteral(text string, start int) int {
	q := text[start]
	for i := start + 1; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case q:
			return i
		}
	}
	return len(text)
}

// splitTopLevel splits text on sep wherever it is not nested in brackets or
// literals. Angle brackets nest in type position. Past a top-level "=" they
// only nest as a template argument list, directly after an identifier, so
// shifts and comparisons in default values stay operators.
func splitTopLevel(text string, sep byte) []string {
	var (
		parts  []string
		depth  int
		angles int
		start  int
		value  bool
	)
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '"' || c == '\'':
			i = skipLiteral(text, i)
		case c == '(' || c == '{' || c == '[':
			depth++
		case c == ')' || c == '}' || c == ']':
			if depth > 0 {
				depth--
			}
		case c == '<' && (!value || opensTemplate(text, i)):
			angles++
		case c == '>' && angles > 0:
			angles--
		case c == sep && depth == 0 && angles == 0:
			parts = append(parts, text[start:i])
			start = i + 1
			value = sep == '='
		case c == '=' && depth == 0 && angles == 0:
			value = true
		}
	}
	return append(parts, text[start:])
}

// opensTemplate reports whether the '<' at text[i] follows an identifier and
// is not part of "<<" or "<=".
func opensTemplate(text string, i int) bool {
	if i == 0 || !isIdentByte(text[i-1]) {
		return false
	}
	if i+1 < len(text) && (text[i+1] == '<' || text[i+1] == '=') {
		return false
	}
	return true
}

func isIdentByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// stripComments blanks out // and /* */ comments so they cannot confuse the
// scanners. Offsets are preserved.
func stripComments(text string) string {
	b := []byte(text)
	for i := 0; i < len(b); i++ {
		switch {
		case b[i] == '"' || b[i] == '\'':
			i = skipLiteral(text, i)
		case strings.HasPrefix(text[i:], "//"):
			for ; i < len(b) && b[i] != '\n'; i++ {
				b[i] = ' '
			}
		case strings.HasPrefix(text[i:], "/*"):
			end := strings.Index(text[i+2:], "*/")
			stop := len(b)
			if end >= 0 {
				stop = i + 2 + end + 2
			}
			for ; i < stop; i++ {
				if b[i] != '\n' {
					b[i] = ' '
				}
			}
			i--
		}
	}
	return string(b)
}
