package introspect

import (
	"os"

	"github.com/roach88/blockbind/internal/ir"
)

// Extract reads a block's source/header pair and returns its factory
// parameters and port signature. block is the short name used to find a
// legacy-style factory declaration.
//
// Unreadable files yield *IOAccessError; a header without a factory or a
// source without two io_signature calls yields *ParseError.
func Extract(sourcePath, headerPath, block string) ([]ir.Parameter, ir.PortSignature, error) {
	src, err := readSource(sourcePath)
	if err != nil {
		return nil, ir.PortSignature{}, err
	}
	hdr, err := readSource(headerPath)
	if err != nil {
		return nil, ir.PortSignature{}, err
	}

	list, ok := findFactory(hdr, block)
	if !ok {
		return nil, ir.PortSignature{}, &ParseError{Path: headerPath, Message: "no factory (make) declaration found"}
	}
	params, err := parseParams(list)
	if err != nil {
		return nil, ir.PortSignature{}, &ParseError{Path: headerPath, Message: err.Error()}
	}

	sig, err := parseIOSignature(src)
	if err != nil {
		return nil, ir.PortSignature{}, &ParseError{Path: sourcePath, Message: err.Error()}
	}
	return params, sig, nil
}

// ExtractDescriptor is Extract packaged as an ir.Descriptor.
func ExtractDescriptor(module, block, sourcePath, headerPath string) (ir.Descriptor, error) {
	params, sig, err := Extract(sourcePath, headerPath, block)
	if err != nil {
		return ir.Descriptor{}, err
	}
	return ir.Descriptor{Module: module, Block: block, Params: params, Signature: sig}, nil
}

func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &IOAccessError{Path: path, Err: err}
	}
	return stripComments(string(data)), nil
}
