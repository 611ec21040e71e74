package ir

import "fmt"

// Parameter is one construction parameter of a block.
type Parameter struct {
	// Key is the identifier used in the constructor signature.
	Key string `json:"key"`

	// Type is the normalized descriptor type tag.
	Type TypeTag `json:"type"`

	// Name is the human readable label shown by the visual tool.
	Name string `json:"name"`

	// Default is the literal default value as written in the source.
	// Empty means the parameter has no default.
	Default string `json:"default,omitempty"`

	// InConstructor is true when the block's factory consumes the
	// parameter positionally. Synthetic parameters are false.
	InConstructor bool `json:"in_constructor"`

	// SourceType is the type as written in the source, kept for diagnostics.
	SourceType string `json:"source_type,omitempty"`
}

// HasDefault reports whether the parameter carries a default literal.
func (p Parameter) HasDefault() bool {
	return p.Default != ""
}

// Descriptor is the transient per-block record fed into the binding generator.
type Descriptor struct {
	Module    string        `json:"module"`
	Block     string        `json:"block"`
	Params    []Parameter   `json:"params"`
	Signature PortSignature `json:"signature"`
}

// ID returns the fully qualified block identifier, "<module>_<block>".
func (d Descriptor) ID() string {
	return fmt.Sprintf("%s_%s", d.Module, d.Block)
}

// Param returns the parameter with the given key.
func (d Descriptor) Param(key string) (Parameter, bool) {
	for _, p := range d.Params {
		if p.Key == key {
			return p, true
		}
	}
	return Parameter{}, false
}

// Clone returns a deep copy so transformations never alias the caller's slices.
func (d Descriptor) Clone() Descriptor {
	out := d
	out.Params = append([]Parameter(nil), d.Params...)
	out.Signature = d.Signature.Clone()
	return out
}
