package mergeop

import (
	"github.com/davethomas11/vectrune/debug"
	"github.com/davethomas11/vectrune/ir"
)

// objectMergeOp serves selectors without a trailing instruction: the
// input document's top-level fields are assigned into each matched
// object, overwriting existing fields.
type objectMergeOp struct{}

func (objectMergeOp) String() string { return "object-merge" }

func (op objectMergeOp) Apply(target, input *ir.Node, rep *Report) error {
	if debug.Op() {
		debug.Logf("object-merge at %q\n", target.Path())
	}
	rep.Locations++
	if target.Type != ir.ObjectType {
		return &TypeMismatchError{Path: target.Path(), Want: ir.ObjectType, Got: target.Type}
	}
	if input.Type != ir.ObjectType {
		return &TypeMismatchError{Path: "", Want: ir.ObjectType, Got: input.Type}
	}
	for i, field := range input.Fields {
		ir.Set(target, field.String, input.Values[i].Clone())
	}
	rep.Applied++
	return nil
}
