package ir

// Version constants for generated descriptors.
const (
	// FileFormat is the descriptor file format version written into every
	// generated document.
	FileFormat = 1

	// ToolVersion is the blockbind version.
	ToolVersion = "0.1.0"
)
