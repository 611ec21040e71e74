package introspect

import "fmt"

// IOAccessError reports a source or header file that could not be read.
type IOAccessError struct {
	Path string
	Err  error
}

func (e *IOAccessError) Error() string {
	return fmt.Sprintf("cannot open %s: %v", e.Path, e.Err)
}

func (e *IOAccessError) Unwrap() error {
	return e.Err
}

// ParseError reports a file that was readable but lacked a declaration the
// scanner needs.
type ParseError struct {
	Path    string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}
