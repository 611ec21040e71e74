package manifest

import (
	"fmt"
	"regexp"
	"unicode"
	"unicode/utf8"
)

// Anchors bound the free-form region of a statement body. Both are regular
// expression fragments. Prefix must follow the opening parenthesis (for
// example "APPEND test_sources"); Suffix must precede the closing one (for
// example "DESTINATION[^()]+").
type Anchors struct {
	Prefix string
	Suffix string
}

// statementHead matches the start of a statement up to and including its
// prefix anchor. It opens capture group 1 and leaves it open.
func statementHead(stmt, prefix string) string {
	head := `(?m)^([ \t]*` + stmt + `[ \t]*\(`
	if prefix != "" {
		head += `\s*` + prefix
	}
	return head
}

// suffixTail matches the suffix anchor, trailing whitespace and the closing parenthesis.
func suffixTail(suffix string) string {
	if suffix == "" {
		return `\)`
	}
	return suffix + `\s*\)`
}

// wordBounded returns a pattern matching lit as a whole word. Word boundaries
// are only added next to word characters, so "${DIR}/a.cc" still matches.
func wordBounded(lit string) string {
	pat := regexp.QuoteMeta(lit)
	if r, _ := utf8.DecodeRuneInString(lit); isWordRune(r) {
		pat = `\b` + pat
	}
	if r, _ := utf8.DecodeLastRuneInString(lit); isWordRune(r) {
		pat += `\b`
	}
	return pat
}

func isWordRune(r rune) bool {
	return r == '_' || r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r))
}

func compile(op, pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid pattern: %w", op, err)
	}
	return re, nil
}

// firstMatch returns the submatch indices of the leftmost match among res.
func firstMatch(text string, res ...*regexp.Regexp) []int {
	var best []int
	for _, re := range res {
		loc := re.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}
		if best == nil || loc[0] < best[0] {
			best = loc
		}
	}
	return best
}
