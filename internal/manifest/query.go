package manifest

import (
	"regexp"
	"strings"
)

var (
	filenameSplit = regexp.MustCompile(`[ /)(\t\n\r\f\v]`)
	filenameShape = regexp.MustCompile(`^[a-zA-Z]\w+\.\w{1,5}$`)
)

// FindFilenamesMatch lists the file names mentioned on live lines that also
// match pattern. Results are de-duplicated and keep first-seen order.
func (b *Buffer) FindFilenamesMatch(pattern string) ([]string, error) {
	re, err := compile("find filenames", pattern)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var names []string
	for _, line := range strings.Split(b.text, "\n") {
		if isCommentOrBlank(line) {
			continue
		}
		for _, tok := range filenameSplit.Split(line, -1) {
			if !filenameShape.MatchString(tok) || !re.MatchString(tok) {
				continue
			}
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			names = append(names, tok)
		}
	}
	return names, nil
}

// CheckForGlob reports whether a file(GLOB var "glob") statement covers the
// given glob, case-insensitively.
func (b *Buffer) CheckForGlob(glob string) bool {
	re := regexp.MustCompile(`(?im)GLOB\s[a-z_]+\s"` + regexp.QuoteMeta(glob) + `"`)
	return re.MatchString(b.text)
}

// Mentions reports whether value appears as a whole word on a live line.
func (b *Buffer) Mentions(value string) bool {
	re := regexp.MustCompile(wordBounded(value))
	for _, line := range strings.Split(b.text, "\n") {
		if isCommentOrBlank(line) {
			continue
		}
		if loc := re.FindStringIndex(line); loc != nil && !commentedBefore(line, loc[0]) {
			return true
		}
	}
	return false
}

// StatementBodies returns the trimmed bodies of every statement named name,
// in order of appearance.
func (b *Buffer) StatementBodies(name string) []string {
	re := regexp.MustCompile(`(?m)^[ \t]*` + regexp.QuoteMeta(name) + `[ \t]*\(([^()]*)\)`)
	var out []string
	for _, m := range re.FindAllStringSubmatch(b.text, -1) {
		out = append(out, strings.TrimSpace(m[1]))
	}
	return out
}
