package introspect

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/roach88/blockbind/internal/ir"
)

var (
	factoryDecl = regexp.MustCompile(`\bstatic\s+sptr\s+make\s*\(`)
	paramDecl   = regexp.MustCompile(`^(.*?)\s*\b([A-Za-z_]\w*)$`)
)

// legacyFactoryDecl matches "<MOD>_API <mod>_<block>_sptr <mod>_make_<block>(".
func legacyFactoryDecl(block string) *regexp.Regexp {
	return regexp.MustCompile(`\b\w+_API\s+\w+_sptr\s+\w*make_` + regexp.QuoteMeta(block) + `\s*\(`)
}

// findFactory returns the parameter list text of the block's factory.
func findFactory(text, block string) (string, bool) {
	loc := factoryDecl.FindStringIndex(text)
	if loc == nil && block != "" {
		loc = legacyFactoryDecl(block).FindStringIndex(text)
	}
	if loc == nil {
		return "", false
	}
	open := loc[1] - 1
	end := balancedEnd(text, open)
	if end < 0 {
		return "", false
	}
	return text[open+1 : end-1], true
}

// parseParams scans a factory parameter list. Each entry goes through three
// stages: the type, the name (the last identifier before the default), and
// the optional default literal after a top-level "=".
func parseParams(list string) ([]ir.Parameter, error) {
	var params []ir.Parameter
	for _, raw := range splitTopLevel(list, ',') {
		entry := strings.TrimSpace(raw)
		if entry == "" || entry == "void" {
			continue
		}

		parts := splitTopLevel(entry, '=')
		decl := strings.TrimSpace(strings.ReplaceAll(parts[0], "&", " "))
		def := strings.TrimSpace(strings.Join(parts[1:], "="))

		m := paramDecl.FindStringSubmatch(decl)
		if m == nil || strings.TrimSpace(m[1]) == "" {
			return nil, fmt.Errorf("parameter %q has no type", entry)
		}
		typ := ir.NormalizeSourceType(m[1])
		key := m[2]

		params = append(params, ir.Parameter{
			Key:           key,
			Type:          ir.MapType(typ, def),
			Name:          DisplayName(key),
			Default:       def,
			InConstructor: true,
			SourceType:    typ,
		})
	}
	return params, nil
}
