package introspect

import (
	"path/filepath"
	"strings"
)

// ImplSuffix marks implementation sources ("square_ff_impl.cc").
const ImplSuffix = "_impl"

// BlockName derives a block's short name and its header file name from a
// source path.
//
// The implementation suffix is dropped first, so both "square_ff_impl.cc"
// and "square_ff.cc" name the header "square_ff.h". The module prefix is then
// stripped from the block name only: "howto_square_ff.cc" in module "howto"
// yields block "square_ff" with header "howto_square_ff.h".
func BlockName(sourcePath, module string) (block, header string) {
	base := filepath.Base(sourcePath)
	base = strings.Replace(base, ImplSuffix+".", ".", 1)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	header = stem + ".h"
	block = stem
	if module != "" {
		block = strings.TrimPrefix(block, module+"_")
	}
	return block, header
}

// DisplayName turns a parameter key into a label: underscores become spaces
// and the first letter is upper-cased ("num_taps" becomes "Num taps").
func DisplayName(key string) string {
	s := strings.ReplaceAll(key, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
