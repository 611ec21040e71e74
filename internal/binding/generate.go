package binding

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/roach88/blockbind/internal/ir"
)

// Generate adapts d, validates the resulting document and renders it in the
// requested format.
func Generate(d ir.Descriptor, f Format) ([]byte, error) {
	adapted := Adapt(d)
	doc := Build(adapted)
	if err := Validate(doc); err != nil {
		return nil, err
	}

	switch f {
	case FormatYAML:
		return renderYAML(doc)
	case FormatXML:
		return renderXML(adapted)
	}
	return nil, fmt.Errorf("unknown descriptor format %q", f)
}

// Save writes data to path, creating parent directories. An existing file is
// replaced wholesale.
func Save(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write descriptor %s: %w", path, err)
	}
	return nil
}

func renderYAML(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("render %s as yaml: %w", doc.ID, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("render %s as yaml: %w", doc.ID, err)
	}
	return buf.Bytes(), nil
}

type xmlBlock struct {
	XMLName  xml.Name   `xml:"block"`
	Name     string     `xml:"name"`
	Key      string     `xml:"key"`
	Category string     `xml:"category"`
	Import   string     `xml:"import"`
	Make     string     `xml:"make"`
	Params   []xmlParam `xml:"param"`
	Sinks    []xmlPort  `xml:"sink"`
	Sources  []xmlPort  `xml:"source"`
}

type xmlParam struct {
	Name  string `xml:"name"`
	Key   string `xml:"key"`
	Value string `xml:"value,omitempty"`
	Type  string `xml:"type"`
}

type xmlPort struct {
	Name   string `xml:"name"`
	Type   string `xml:"type"`
	Vlen   string `xml:"vlen,omitempty"`
	NPorts string `xml:"nports,omitempty"`
}

// renderXML writes the legacy format, where references are "$key".
func renderXML(d ir.Descriptor) ([]byte, error) {
	blk := xmlBlock{
		Name:     d.Block,
		Key:      d.ID(),
		Category: fmt.Sprintf("[%s]", d.Module),
		Import:   "import " + d.Module,
		Make:     makeTemplate(d, func(key string) string { return "$" + key }),
	}
	for _, p := range d.Params {
		blk.Params = append(blk.Params, xmlParam{
			Name:  p.Name,
			Key:   p.Key,
			Value: p.Default,
			Type:  string(p.Type),
		})
	}
	blk.Sinks = xmlPorts("in", d.Signature.Inputs)
	blk.Sources = xmlPorts("out", d.Signature.Outputs)

	out, err := xml.MarshalIndent(blk, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render %s as xml: %w", d.ID(), err)
	}
	data := append([]byte(`<?xml version="1.0"?>`+"\n"), out...)
	return append(data, '\n'), nil
}

func xmlPorts(name string, spec ir.PortSpec) []xmlPort {
	var nports string
	switch {
	case spec.Max.Kind == ir.BoundSymbol:
		nports = "$" + spec.Max.Symbol
	case spec.Max.Kind == ir.BoundFixed && spec.Max.Count > 1 && len(spec.Ports) == 1:
		nports = strconv.Itoa(spec.Max.Count)
	}

	ports := make([]xmlPort, 0, len(spec.Ports))
	for _, p := range spec.Ports {
		port := xmlPort{Name: name, Type: string(p.Type), NPorts: nports}
		if p.VectorLength != "" && p.VectorLength != "1" {
			port.Vlen = p.VectorLength
		}
		ports = append(ports, port)
	}
	return ports
}
