package binding

import "github.com/roach88/blockbind/internal/ir"

// DefaultPortCount is the default of a synthetic port-count parameter.
const DefaultPortCount = "2"

// Adapt rewrites every unbounded maximum port count into a reference to a
// synthetic integer parameter (num_inputs / num_outputs) and appends that
// parameter. Inputs are handled before outputs. An existing parameter with the
// same key is reused rather than duplicated, so Adapt is idempotent.
func Adapt(d ir.Descriptor) ir.Descriptor {
	out := d.Clone()
	for _, dir := range ir.Directions {
		spec := out.Signature.Spec(dir)
		if !spec.Max.IsUnbounded() {
			continue
		}
		key := dir.CountParam()
		spec.Max = ir.Symbol(key)
		if _, ok := out.Param(key); ok {
			continue
		}
		out.Params = append(out.Params, ir.Parameter{
			Key:           key,
			Type:          ir.TypeInt,
			Name:          "Num " + dir.Plural(),
			Default:       DefaultPortCount,
			InConstructor: false,
		})
	}
	return out
}
