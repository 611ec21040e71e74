package manifest

import (
	"fmt"
	"log/slog"
	"os"
)

const (
	// DefaultIndent is the indentation used for inserted entries.
	DefaultIndent = "    "

	// DefaultSeparator precedes every appended value.
	DefaultSeparator = "\n" + DefaultIndent

	// CommentMarker starts a comment in the manifest language.
	CommentMarker = "#"
)

// Buffer owns the text of one manifest file until it is written back.
// A Buffer is not safe for concurrent use, and no two buffers should target
// the same path within one run.
type Buffer struct {
	path      string
	text      string
	original  string
	separator string
	indent    string
	logger    *slog.Logger
	warnings  []AmbiguousEditWarning
}

// Option configures a Buffer.
type Option func(*Buffer)

// WithSeparator sets the text inserted before every appended value.
func WithSeparator(sep string) Option {
	return func(b *Buffer) { b.separator = sep }
}

// WithIndent sets the indentation used when DisableFile breaks lines.
func WithIndent(indent string) Option {
	return func(b *Buffer) { b.indent = indent }
}

// WithLogger sets the logger that receives edit warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Buffer) { b.logger = logger }
}

// New creates a buffer over text that will be written to path.
func New(path, text string, opts ...Option) *Buffer {
	b := &Buffer{
		path:      path,
		text:      text,
		original:  text,
		separator: DefaultSeparator,
		indent:    DefaultIndent,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Load reads the manifest at path into a new buffer.
func Load(path string, opts ...Option) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load manifest %s: %w", path, err)
	}
	return New(path, string(data), opts...), nil
}

// Path returns the file the buffer is written to.
func (b *Buffer) Path() string { return b.path }

// Text returns the current buffer content.
func (b *Buffer) Text() string { return b.text }

// Modified reports whether the text differs from what was loaded or last written.
func (b *Buffer) Modified() bool { return b.text != b.original }

// Warnings returns the advisory warnings recorded so far.
func (b *Buffer) Warnings() []AmbiguousEditWarning {
	return append([]AmbiguousEditWarning(nil), b.warnings...)
}

// Write replaces the file at Path with the buffer content. The existing file
// mode is kept; new files are created 0644.
func (b *Buffer) Write() error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(b.path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(b.path, []byte(b.text), mode); err != nil {
		return fmt.Errorf("write manifest %s: %w", b.path, err)
	}
	b.original = b.text
	return nil
}

func (b *Buffer) warn(op, target string, count int) {
	w := AmbiguousEditWarning{Op: op, Path: b.path, Target: target, Count: count}
	b.warnings = append(b.warnings, w)
	b.logger.Warn(w.Error(), "op", op, "path", b.path, "target", target, "matches", count)
}
