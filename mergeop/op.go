package mergeop

import (
	"fmt"

	"github.com/davethomas11/vectrune/ir"
	"github.com/davethomas11/vectrune/selector"
)

// Report aggregates the outcome of evaluating an instruction over all
// resolved locations. Zero Locations means the selector matched nothing,
// which is not an error by itself; the caller decides what to make of it.
type Report struct {
	Locations int // locations the instruction was evaluated at
	Applied   int // locations where a write happened
	Unmatched int // keyed updates that found no element with the target value
}

// Op applies a merge instruction at one resolved location. target is the
// value at the location in the base tree; input is the input document
// root, which Apply never mutates.
type Op interface {
	Apply(target, input *ir.Node, rep *Report) error
	String() string
}

// ForInstruction returns the Op evaluating instr. A nil instruction maps
// to a plain object merge of the input document's top-level fields into
// each matched object.
func ForInstruction(instr selector.Instruction) (Op, error) {
	switch x := instr.(type) {
	case nil:
		return objectMergeOp{}, nil
	case *selector.KeyedUpdate:
		return keyedUpdateOp{k: x}, nil
	case *selector.DirectAssign:
		return directAssignOp{d: x}, nil
	default:
		return nil, fmt.Errorf("unknown instruction kind %T", instr)
	}
}

// lookupSource finds key in the input document: at the root first, then
// one object level down in document order, so sectioned documents can
// carry their merge sources inside any section.
func lookupSource(input *ir.Node, key string) *ir.Node {
	if v := ir.Get(input, key); v != nil {
		return v
	}
	if input.Type != ir.ObjectType {
		return nil
	}
	for _, section := range input.Values {
		if v := ir.Get(section, key); v != nil {
			return v
		}
	}
	return nil
}
