package mergeop

import (
	"fmt"

	"github.com/davethomas11/vectrune/debug"
	"github.com/davethomas11/vectrune/ir"
	"github.com/davethomas11/vectrune/selector"
)

type directAssignOp struct {
	d *selector.DirectAssign
}

func (op directAssignOp) String() string { return "direct-assign" }

// Apply sets every dest field of target, which must be an object, from
// the input document, creating fields that are absent and overwriting
// whatever type is present.
func (op directAssignOp) Apply(target, input *ir.Node, rep *Report) error {
	if debug.Op() {
		debug.Logf("direct-assign %s at %q\n", op.d, target.Path())
	}
	rep.Locations++
	if target.Type != ir.ObjectType {
		return &TypeMismatchError{Path: target.Path(), Want: ir.ObjectType, Got: target.Type}
	}
	for _, pair := range op.d.Pairs {
		src := lookupSource(input, pair.Source)
		if src == nil {
			return fmt.Errorf("%w: %q", ErrNoSource, pair.Source)
		}
		ir.Set(target, pair.Dest, src.Clone())
	}
	rep.Applied++
	return nil
}
