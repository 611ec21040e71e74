package introspect

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/roach88/blockbind/internal/ir"
)

var (
	ioSignatureCall = regexp.MustCompile(`\b(?:gr::)?io_signature::(make[23v]?)\s*\(`)
	sizeofExpr      = regexp.MustCompile(`sizeof\s*\(\s*([^)]*?)\s*\)`)
)

// parseIOSignature reads the first two io_signature calls in text as the
// input and output signatures.
func parseIOSignature(text string) (ir.PortSignature, error) {
	calls := ioSignatureCall.FindAllStringSubmatchIndex(text, 2)
	if len(calls) < 2 {
		return ir.PortSignature{}, fmt.Errorf("found %d io_signature calls, need 2", len(calls))
	}

	var sig ir.PortSignature
	for i, dir := range ir.Directions {
		loc := calls[i]
		if name := text[loc[2]:loc[3]]; name == "makev" {
			return ir.PortSignature{}, fmt.Errorf("%s signature uses io_signature::makev, which is not supported", dir.Plural())
		}
		open := loc[1] - 1
		end := balancedEnd(text, open)
		if end < 0 {
			return ir.PortSignature{}, fmt.Errorf("unterminated io_signature call for %s", dir.Plural())
		}
		spec, err := parsePortSpec(text[open+1 : end-1])
		if err != nil {
			return ir.PortSignature{}, fmt.Errorf("%s: %w", dir.Plural(), err)
		}
		*sig.Spec(dir) = spec
	}
	return sig, nil
}

// parsePortSpec reads "min, max, sizeof(T)[ * vlen], ...".
func parsePortSpec(args string) (ir.PortSpec, error) {
	parts := splitTopLevel(args, ',')
	if len(parts) < 3 {
		return ir.PortSpec{}, fmt.Errorf("io_signature needs at least 3 arguments, got %d", len(parts))
	}
	spec := ir.PortSpec{
		Min: ir.ParseBound(parts[0]),
		Max: ir.ParseBound(parts[1]),
	}
	if spec.Max.Kind == ir.BoundFixed && spec.Max.Count == 0 {
		return spec, nil
	}
	for _, p := range parts[2:] {
		spec.Ports = append(spec.Ports, parsePort(p))
	}
	return spec, nil
}

// parsePort splits an item-size expression into the sizeof operand, which
// gives the port type, and the remaining factors, which give the vector
// length. Without a sizeof the port is byte-typed.
func parsePort(expr string) ir.Port {
	port := ir.Port{Type: ir.TypeByte}
	var vlen []string
	for _, f := range splitTopLevel(expr, '*') {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if m := sizeofExpr.FindStringSubmatch(f); m != nil {
			port.Type = ir.MapType(m[1], "")
			continue
		}
		vlen = append(vlen, f)
	}
	port.VectorLength = "1"
	if len(vlen) > 0 {
		port.VectorLength = strings.Join(vlen, "*")
	}
	return port
}
