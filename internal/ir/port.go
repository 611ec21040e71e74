package ir

import (
	"strconv"
	"strings"
)

// Direction selects the input or output half of a port signature.
type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

// Directions lists both directions in rendering order.
var Directions = []Direction{DirectionIn, DirectionOut}

// Plural returns "inputs" or "outputs".
func (d Direction) Plural() string {
	return string(d) + "puts"
}

// CountParam returns the key of the synthetic parameter that controls the
// number of ports when the maximum is unbounded ("num_inputs"/"num_outputs").
func (d Direction) CountParam() string {
	return "num_" + d.Plural()
}

// BoundKind classifies a port count.
type BoundKind int

const (
	// BoundFixed is a literal port count.
	BoundFixed BoundKind = iota
	// BoundUnbounded is a count that is not fixed at compile time (-1 in source).
	BoundUnbounded
	// BoundSymbol is a count given by an expression or parameter reference.
	BoundSymbol
)

// PortBound is a minimum or maximum port count.
type PortBound struct {
	Kind   BoundKind `json:"kind"`
	Count  int       `json:"count,omitempty"`
	Symbol string    `json:"symbol,omitempty"`
}

// Fixed returns a literal bound.
func Fixed(n int) PortBound { return PortBound{Kind: BoundFixed, Count: n} }

// Unbounded returns the "any number of ports" bound.
func Unbounded() PortBound { return PortBound{Kind: BoundUnbounded} }

// Symbol returns a bound that refers to an expression or parameter key.
func Symbol(name string) PortBound { return PortBound{Kind: BoundSymbol, Symbol: name} }

// ParseBound interprets a count as written in an io signature call.
// Negative integers are unbounded; non-numeric text is kept as a symbol.
func ParseBound(s string) PortBound {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return Symbol(s)
	}
	if n < 0 {
		return Unbounded()
	}
	return Fixed(n)
}

// IsUnbounded reports whether the bound is the unbounded marker.
func (b PortBound) IsUnbounded() bool { return b.Kind == BoundUnbounded }

// String renders the bound the way it appears in source code.
func (b PortBound) String() string {
	switch b.Kind {
	case BoundUnbounded:
		return "-1"
	case BoundSymbol:
		return b.Symbol
	default:
		return strconv.Itoa(b.Count)
	}
}

// Port is one stream port.
type Port struct {
	Type TypeTag `json:"type"`

	// VectorLength is "1" for scalar streams, otherwise the literal or
	// symbolic vector length.
	VectorLength string `json:"vlen"`
}

// PortSpec is the signature of one direction.
type PortSpec struct {
	Min   PortBound `json:"min"`
	Max   PortBound `json:"max"`
	Ports []Port    `json:"ports"`
}

// Types returns the per-port type list.
func (s PortSpec) Types() []TypeTag {
	types := make([]TypeTag, len(s.Ports))
	for i, p := range s.Ports {
		types[i] = p.Type
	}
	return types
}

// PortSignature holds both directions.
type PortSignature struct {
	Inputs  PortSpec `json:"inputs"`
	Outputs PortSpec `json:"outputs"`
}

// Spec returns a pointer to the half selected by dir.
func (s *PortSignature) Spec(dir Direction) *PortSpec {
	if dir == DirectionOut {
		return &s.Outputs
	}
	return &s.Inputs
}

// Clone returns a deep copy.
func (s PortSignature) Clone() PortSignature {
	out := s
	out.Inputs.Ports = append([]Port(nil), s.Inputs.Ports...)
	out.Outputs.Ports = append([]Port(nil), s.Outputs.Ports...)
	return out
}
