package ir

import "strings"

// TypeTag is a descriptor-level parameter or port type.
type TypeTag string

const (
	TypeFloat         TypeTag = "float"
	TypeReal          TypeTag = "real"
	TypeInt           TypeTag = "int"
	TypeComplex       TypeTag = "complex"
	TypeByte          TypeTag = "byte"
	TypeString        TypeTag = "string"
	TypeIntVector     TypeTag = "int_vector"
	TypeRealVector    TypeTag = "real_vector"
	TypeComplexVector TypeTag = "complex_vector"
	TypeHex           TypeTag = "hex"

	// TypeRaw is the fallback for every source type outside the table.
	TypeRaw TypeTag = "raw"
)

// TypeTags lists every tag the mapper can produce.
var TypeTags = []TypeTag{
	TypeFloat, TypeReal, TypeInt, TypeComplex, TypeByte, TypeString,
	TypeIntVector, TypeRealVector, TypeComplexVector, TypeHex, TypeRaw,
}

var typeTable = map[string]TypeTag{
	"float":                   TypeFloat,
	"double":                  TypeReal,
	"int":                     TypeInt,
	"gr_complex":              TypeComplex,
	"char":                    TypeByte,
	"unsigned char":           TypeByte,
	"std::string":             TypeString,
	"std::vector<int>":        TypeIntVector,
	"std::vector<float>":      TypeRealVector,
	"std::vector<gr_complex>": TypeComplexVector,
}

// MapType maps a source type name and optional default literal to a type tag.
//
// An int whose default starts with 0x (any case) maps to TypeHex. Types not in
// the table map to TypeRaw; MapType never fails.
func MapType(sourceType, defaultLiteral string) TypeTag {
	t := NormalizeSourceType(sourceType)
	if t == "int" && isHexLiteral(defaultLiteral) {
		return TypeHex
	}
	if tag, ok := typeTable[t]; ok {
		return tag
	}
	return TypeRaw
}

// NormalizeSourceType collapses whitespace and drops qualifiers that do not
// change the mapped type ("const", trailing "&"), so "const std::vector< float > &"
// becomes "std::vector<float>".
func NormalizeSourceType(s string) string {
	fields := strings.Fields(strings.ReplaceAll(s, "&", " "))
	kept := fields[:0]
	for _, f := range fields {
		if f == "const" {
			continue
		}
		kept = append(kept, f)
	}
	t := strings.Join(kept, " ")
	for _, tight := range []string{"<", ">", "::", ","} {
		t = strings.ReplaceAll(t, " "+tight, tight)
		t = strings.ReplaceAll(t, tight+" ", tight)
	}
	return t
}

func isHexLiteral(s string) bool {
	s = strings.TrimSpace(s)
	return len(s) > 1 && strings.EqualFold(s[:2], "0x")
}
