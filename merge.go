package vectrune

import (
	"github.com/davethomas11/vectrune/debug"
	"github.com/davethomas11/vectrune/format"
	"github.com/davethomas11/vectrune/ir"
	"github.com/davethomas11/vectrune/mergeop"
	"github.com/davethomas11/vectrune/selector"
)

// Document pairs a tree with the format tag its serializer should use.
// The merge engine never inspects Format.
type Document struct {
	Root   *ir.Node
	Format format.Format
}

// Merge parses selectorText, resolves it against base and evaluates the
// trailing instruction at every matched location, pulling values from
// input. base is mutated in place; input never is. The report counts
// evaluated locations, applied writes and unmatched keyed-update targets.
// Zero matches is reported, not an error. Any type mismatch aborts the
// merge and leaves base in an unspecified state.
func Merge(base, input *ir.Node, selectorText string) (*mergeop.Report, error) {
	sel, err := selector.Parse(selectorText)
	if err != nil {
		return nil, err
	}
	op, err := mergeop.ForInstruction(sel.Instruction)
	if err != nil {
		return nil, err
	}
	locs := Resolve(base, targetSelector(sel))
	rep := &mergeop.Report{}
	if debug.Merge() {
		debug.Logf("merge: %s resolved %d location(s) for %q\n", op, len(locs), sel)
	}
	for _, loc := range locs {
		if err := op.Apply(loc.Value(), input, rep); err != nil {
			return nil, err
		}
	}
	return rep, nil
}

// targetSelector picks the path the instruction evaluates at. A keyed
// update scans the elements of its series itself, so a trailing
// wildcard written before it addresses those same elements and is
// folded away, leaving the containing list as the one location.
func targetSelector(sel *selector.Selector) *selector.Selector {
	n := len(sel.Segments)
	if n == 0 || !sel.Segments[n-1].Wildcard {
		return sel
	}
	if _, ok := sel.Instruction.(*selector.KeyedUpdate); !ok {
		return sel
	}
	return &selector.Selector{
		Segments:    sel.Segments[:n-1],
		Instruction: sel.Instruction,
	}
}

// MergeDocuments merges input into base per selectorText. The merged
// document keeps base's format tag.
func MergeDocuments(base, input *Document, selectorText string) (*mergeop.Report, error) {
	return Merge(base.Root, input.Root, selectorText)
}
