package mergeop

import (
	"fmt"

	"github.com/davethomas11/vectrune/debug"
	"github.com/davethomas11/vectrune/ir"
	"github.com/davethomas11/vectrune/selector"
)

type keyedUpdateOp struct {
	k *selector.KeyedUpdate
}

func (op keyedUpdateOp) String() string { return "keyed-update" }

// Apply scans target, which must be an array, for the first object
// element whose key field equals the instruction's target value, and sets
// that element's value field from the input document. Elements past the
// first match are left alone. No match is recorded as unmatched, not an
// error.
func (op keyedUpdateOp) Apply(target, input *ir.Node, rep *Report) error {
	if debug.Op() {
		debug.Logf("keyed-update %s at %q\n", op.k, target.Path())
	}
	rep.Locations++
	if target.Type != ir.ArrayType {
		return &TypeMismatchError{Path: target.Path(), Want: ir.ArrayType, Got: target.Type}
	}
	src := lookupSource(input, op.k.SourceKey)
	if src == nil {
		return fmt.Errorf("%w: %q", ErrNoSource, op.k.SourceKey)
	}
	for _, elem := range target.Values {
		if elem.Type != ir.ObjectType {
			continue
		}
		key := ir.Get(elem, op.k.KeyField)
		if key == nil || !key.Type.IsScalar() {
			continue
		}
		if ir.ScalarString(key) != op.k.TargetValue {
			continue
		}
		ir.Set(elem, op.k.ValueField, src.Clone())
		rep.Applied++
		return nil
	}
	rep.Unmatched++
	return nil
}
