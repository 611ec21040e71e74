package manifest

import (
	"regexp"
	"strings"
)

// AppendValue inserts value into the first statement named stmt whose body
// satisfies the anchors. The separator and value are inserted right after the
// last entry that precedes the suffix anchor (or the closing parenthesis);
// nothing else in the statement is rewritten, so RemoveValue with the same
// anchors restores the original text.
//
// Returns 0 when no statement matched, otherwise 1.
func (b *Buffer) AppendValue(stmt, value string, a Anchors) (int, error) {
	re, err := compile("append value",
		statementHead(stmt, a.Prefix)+`(?:[^()]*?[^()\s])?)(\s*`+suffixTail(a.Suffix)+`)`)
	if err != nil {
		return 0, err
	}
	loc := re.FindStringSubmatchIndex(b.text)
	if loc == nil {
		return 0, nil
	}
	at := loc[3]
	b.text = b.text[:at] + b.separator + value + b.text[at:]
	return 1, nil
}

// RemoveValue deletes one occurrence of the literal value from the first
// statement named stmt that contains it.
//
// Three placements are handled:
//   - value right after the opening parenthesis (only without a prefix anchor)
//   - value preceded by whitespace after other entries
//   - value preceded by whitespace after the prefix anchor
//
// In the whitespace cases the whitespace run before the value is removed with
// it; in the first case the whitespace after it is. Returns 0 or 1.
func (b *Buffer) RemoveValue(stmt, value string, a Anchors) (int, error) {
	v := regexp.QuoteMeta(value)
	var rest string
	if a.Suffix == "" {
		rest = `((?:\s[^()]*)?\))`
	} else {
		rest = `(\s[^()]*?` + suffixTail(a.Suffix) + `)`
	}

	patterns := []string{
		statementHead(stmt, a.Prefix) + `[^()]*?)\s+` + v + rest,
	}
	if a.Prefix == "" {
		patterns = append(patterns,
			statementHead(stmt, "")+`)`+v+`\s+([^()]*`+suffixTail(a.Suffix)+`)`,
		)
		if a.Suffix == "" {
			patterns = append(patterns, statementHead(stmt, "")+`)`+v+`(\))`)
		}
	}

	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := compile("remove value", p)
		if err != nil {
			return 0, err
		}
		res = append(res, re)
	}

	loc := firstMatch(b.text, res...)
	if loc == nil {
		return 0, nil
	}
	head := b.text[loc[2]:loc[3]]
	tail := b.text[loc[4]:loc[5]]
	b.text = b.text[:loc[0]] + head + tail + b.text[loc[1]:]
	return 1, nil
}

// DeleteEntry removes the first whole statement named stmt whose body matches
// valuePattern, together with its indentation and trailing newline.
// Returns 0 or 1.
func (b *Buffer) DeleteEntry(stmt, valuePattern string) (int, error) {
	re, err := compile("delete entry",
		`(?m)^[ \t]*`+stmt+`[ \t]*\([^()]*`+valuePattern+`[^()]*\)[^\n]*(?:\n|\z)`)
	if err != nil {
		return 0, err
	}
	loc := re.FindStringIndex(b.text)
	if loc == nil {
		return 0, nil
	}
	b.text = b.text[:loc[0]] + b.text[loc[1]:]
	return 1, nil
}

// DisableFile comments out the entry for fname.
//
// When fname starts its line the marker is put in front of it and the
// following entries move to a new line; otherwise a line break is inserted
// before the commented entry as well, so the comment never swallows sibling
// entries. Occurrences that are already commented are ignored, which makes
// the call idempotent.
//
// Returns the number of live occurrences found. Only the first is rewritten;
// zero or several occurrences record an AmbiguousEditWarning.
func (b *Buffer) DisableFile(fname string) int {
	re := regexp.MustCompile(`(` + wordBounded(fname) + `)\s*`)
	var live [][]int
	for _, loc := range re.FindAllStringIndex(b.text, -1) {
		lineStart := strings.LastIndexByte(b.text[:loc[0]], '\n') + 1
		if commentedBefore(b.text[lineStart:], loc[0]-lineStart) {
			continue
		}
		live = append(live, loc)
	}

	if n := len(live); n != 1 {
		b.warn("disable file", fname, n)
		if n == 0 {
			return 0
		}
	}

	loc := live[0]
	lineStart := strings.LastIndexByte(b.text[:loc[0]], '\n') + 1
	repl := CommentMarker + fname + "\n" + b.indent
	if strings.TrimLeft(b.text[lineStart:loc[0]], " \t") != "" {
		repl = "\n" + b.indent + repl
	}
	b.text = b.text[:loc[0]] + repl + b.text[loc[1]:]
	return len(live)
}

// CommentOutLines prefixes every line matching pattern with marker. Lines
// that already start with marker are left alone. Returns the number of lines
// changed.
func (b *Buffer) CommentOutLines(pattern, marker string) (int, error) {
	re, err := compile("comment out lines", pattern)
	if err != nil {
		return 0, err
	}
	if marker == "" {
		marker = CommentMarker
	}
	lines := strings.Split(b.text, "\n")
	n := 0
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimLeft(line, " \t"), marker) || !re.MatchString(line) {
			continue
		}
		lines[i] = marker + line
		n++
	}
	b.text = strings.Join(lines, "\n")
	return n, nil
}

var tripleNewline = regexp.MustCompile(`\n\n\n+`)

// RemoveDoubleNewlines collapses runs of blank lines down to one blank line.
// Returns the number of runs collapsed.
func (b *Buffer) RemoveDoubleNewlines() int {
	n := len(tripleNewline.FindAllStringIndex(b.text, -1))
	if n > 0 {
		b.text = tripleNewline.ReplaceAllString(b.text, "\n\n")
	}
	return n
}

func isCommentOrBlank(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" || strings.HasPrefix(trimmed, CommentMarker)
}

// commentedBefore reports whether a comment marker precedes offset on line.
func commentedBefore(line string, offset int) bool {
	return strings.Contains(line[:offset], CommentMarker)
}

// DeleteLines removes every whole line matching pattern, including its
// newline. Returns the number of lines removed.
func (b *Buffer) DeleteLines(pattern string) (int, error) {
	re, err := compile("delete lines", pattern)
	if err != nil {
		return 0, err
	}
	lines := strings.SplitAfter(b.text, "\n")
	kept := lines[:0]
	n := 0
	for _, line := range lines {
		if line != "" && re.MatchString(strings.TrimSuffix(line, "\n")) {
			n++
			continue
		}
		kept = append(kept, line)
	}
	b.text = strings.Join(kept, "")
	return n, nil
}
