package binding

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaSource string

// SchemaError reports a document that does not satisfy the descriptor schema.
type SchemaError struct {
	ID       string
	Problems []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("descriptor %s is malformed: %s", e.ID, strings.Join(e.Problems, "; "))
}

// Validate checks doc against the #Descriptor definition. Definitions are
// closed, so unknown fields are rejected as well as missing or mistyped ones.
func Validate(doc *Document) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile descriptor schema: %w", err)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode descriptor %s: %w", doc.ID, err)
	}
	value := ctx.CompileBytes(data, cue.Filename(doc.ID+".json"))
	if err := value.Err(); err != nil {
		return fmt.Errorf("load descriptor %s: %w", doc.ID, err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Descriptor")).Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return schemaError(doc.ID, err)
	}
	return nil
}

func schemaError(id string, err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &SchemaError{ID: id, Problems: []string{err.Error()}}
	}
	problems := make([]string, 0, len(errs))
	for _, e := range errs {
		problems = append(problems, e.Error())
	}
	return &SchemaError{ID: id, Problems: problems}
}
