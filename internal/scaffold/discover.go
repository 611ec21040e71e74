package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Glob returns the files under dir matching any of globs, sorted and
// de-duplicated. Globs use doublestar syntax relative to dir. A missing dir
// yields no files.
func Glob(dir string, globs ...string) ([]string, error) {
	fsys := os.DirFS(dir)
	seen := make(map[string]struct{})
	var files []string
	for _, g := range globs {
		matches, err := doublestar.Glob(fsys, g, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %s in %s: %w", g, dir, err)
		}
		for _, m := range matches {
			path := filepath.Join(dir, filepath.FromSlash(m))
			if _, ok := seen[path]; ok {
				continue
			}
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}
	sort.Strings(files)
	return files, nil
}

// Discover returns the files under dir that match a glob and whose base
// name matches pattern.
func Discover(dir string, pattern *regexp.Regexp, globs ...string) ([]string, error) {
	files, err := Glob(dir, globs...)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, f := range files {
		if pattern.MatchString(filepath.Base(f)) {
			out = append(out, f)
		}
	}
	return out, nil
}

// compilePattern validates a block-name pattern. Empty or blank patterns
// are rejected unless fallback is set, in which case they match everything.
func compilePattern(pattern, fallback string) (*regexp.Regexp, error) {
	if isBlank(pattern) {
		if fallback == "" {
			return nil, &ConfigurationError{Field: "pattern", Message: "block name pattern must not be empty"}
		}
		pattern = fallback
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &ConfigurationError{Field: "pattern", Message: err.Error()}
	}
	return re, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
