package binding

import (
	"fmt"
	"strings"

	"github.com/roach88/blockbind/internal/ir"
)

// StreamDomain is the port domain of every extracted port.
const StreamDomain = "stream"

// Document is the format-independent descriptor tree. Field order is the
// rendering order.
type Document struct {
	ID         string       `yaml:"id" json:"id"`
	Module     string       `yaml:"module" json:"module"`
	Block      string       `yaml:"block" json:"block"`
	Label      string       `yaml:"label" json:"label"`
	Category   string       `yaml:"category" json:"category"`
	Templates  Templates    `yaml:"templates" json:"templates"`
	Parameters []ParamDoc   `yaml:"parameters" json:"parameters"`
	Signature  SignatureDoc `yaml:"signature" json:"signature"`
	FileFormat int          `yaml:"file_format" json:"file_format"`
}

// Templates hold the code the visual tool emits for the block.
type Templates struct {
	Imports string `yaml:"imports" json:"imports"`
	Make    string `yaml:"make" json:"make"`
}

// ParamDoc is one rendered parameter.
type ParamDoc struct {
	ID      string `yaml:"id" json:"id"`
	Label   string `yaml:"label" json:"label"`
	DType   string `yaml:"dtype" json:"dtype"`
	Default string `yaml:"default,omitempty" json:"default,omitempty"`
}

// SignatureDoc holds both port directions.
type SignatureDoc struct {
	Inputs  PortsDoc `yaml:"inputs" json:"inputs"`
	Outputs PortsDoc `yaml:"outputs" json:"outputs"`
}

// PortsDoc is one direction. Min and Max are an int or a "${ expr }" string.
type PortsDoc struct {
	Min   any       `yaml:"min" json:"min"`
	Max   any       `yaml:"max" json:"max"`
	Ports []PortDoc `yaml:"ports" json:"ports"`
}

// PortDoc is one rendered port. VLen is omitted for scalar streams.
type PortDoc struct {
	Domain string `yaml:"domain" json:"domain"`
	DType  string `yaml:"dtype" json:"dtype"`
	VLen   string `yaml:"vlen,omitempty" json:"vlen,omitempty"`
}

// Build lays out an adapted descriptor as a Document.
func Build(d ir.Descriptor) *Document {
	doc := &Document{
		ID:       d.ID(),
		Module:   d.Module,
		Block:    d.Block,
		Label:    d.Block,
		Category: fmt.Sprintf("[%s]", d.Module),
		Templates: Templates{
			Imports: "import " + d.Module,
			Make:    makeTemplate(d, func(key string) string { return "${" + key + "}" }),
		},
		Parameters: make([]ParamDoc, 0, len(d.Params)),
		FileFormat: ir.FileFormat,
	}
	for _, p := range d.Params {
		doc.Parameters = append(doc.Parameters, ParamDoc{
			ID:      p.Key,
			Label:   p.Name,
			DType:   string(p.Type),
			Default: p.Default,
		})
	}
	doc.Signature.Inputs = buildPorts(d.Signature.Inputs)
	doc.Signature.Outputs = buildPorts(d.Signature.Outputs)
	return doc
}

// makeTemplate renders "<module>.<block>(a, b)" over the constructor
// parameters, formatting each reference with ref.
func makeTemplate(d ir.Descriptor, ref func(key string) string) string {
	var args []string
	for _, p := range d.Params {
		if p.InConstructor {
			args = append(args, ref(p.Key))
		}
	}
	return fmt.Sprintf("%s.%s(%s)", d.Module, d.Block, strings.Join(args, ", "))
}

func buildPorts(spec ir.PortSpec) PortsDoc {
	out := PortsDoc{
		Min:   boundValue(spec.Min),
		Max:   boundValue(spec.Max),
		Ports: make([]PortDoc, 0, len(spec.Ports)),
	}
	for _, p := range spec.Ports {
		port := PortDoc{Domain: StreamDomain, DType: string(p.Type)}
		if p.VectorLength != "" && p.VectorLength != "1" {
			port.VLen = p.VectorLength
		}
		out.Ports = append(out.Ports, port)
	}
	return out
}

// boundValue renders a fixed bound as an int and a symbolic one as a
// template expression. Unbounded counts must be adapted first; they render
// as -1 and fail validation.
func boundValue(b ir.PortBound) any {
	switch b.Kind {
	case ir.BoundSymbol:
		return "${ " + b.Symbol + " }"
	case ir.BoundUnbounded:
		return -1
	default:
		return b.Count
	}
}
