package binding

import (
	"fmt"
	"strings"

	"github.com/roach88/blockbind/internal/ir"
)

// Format selects the descriptor file format.
type Format string

const (
	// FormatYAML is the current block file format.
	FormatYAML Format = "yaml"
	// FormatXML is the legacy block file format.
	FormatXML Format = "xml"
)

// ParseFormat accepts "yaml"/"yml" and "xml", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "yaml", "yml":
		return FormatYAML, nil
	case "xml":
		return FormatXML, nil
	}
	return "", fmt.Errorf("unknown descriptor format %q (want yaml or xml)", s)
}

// Ext returns the file extension including the leading dot.
func (f Format) Ext() string {
	if f == FormatXML {
		return ".xml"
	}
	return ".block.yml"
}

// FileName returns "<module>_<block><ext>".
func FileName(d ir.Descriptor, f Format) string {
	return d.ID() + f.Ext()
}
