// Package vectrune implements the selector-driven merge engine: resolving
// a parsed selector against a document tree and applying its merge
// instruction at every matched location.
package vectrune

import (
	"github.com/davethomas11/vectrune/debug"
	"github.com/davethomas11/vectrune/ir"
	"github.com/davethomas11/vectrune/selector"
)

// Location is a non-owning handle on a position in the base tree: the
// owning container plus the index within it. Locations are only valid
// between resolution and apply of one merge and must not be retained.
type Location struct {
	Container *ir.Node // owning container; nil when the match is the root
	Index     int      // position in Container.Values; -1 at the root

	root *ir.Node
}

// Value returns the node currently at the location.
func (l Location) Value() *ir.Node {
	if l.Container == nil {
		return l.root
	}
	return l.Container.Values[l.Index]
}

// Path returns the location's path in the base tree, "" for the root.
func (l Location) Path() string {
	return l.Value().Path()
}

func locationOf(y *ir.Node) Location {
	if y.Parent == nil {
		return Location{Index: -1, root: y}
	}
	return Location{Container: y.Parent, Index: y.ParentIndex}
}

// Resolve walks root following the selector's path segments and returns
// the matched locations in document order. An empty result is not an
// error; it means the selector touched nothing.
func Resolve(root *ir.Node, sel *selector.Selector) []Location {
	var res []Location
	resolveSegs(root, sel.Segments, func(l Location) bool {
		res = append(res, l)
		return true
	})
	return res
}

// resolveSegs is the restartable match walk: one tree level per segment,
// fanning out on groups and wildcards, yielding matches lazily in
// document order. It returns false when yield stops the walk.
func resolveSegs(y *ir.Node, segs []selector.Segment, yield func(Location) bool) bool {
	if len(segs) == 0 {
		if debug.Resolve() {
			debug.Logf("resolve: match at %q\n", y.Path())
		}
		return yield(locationOf(y))
	}
	seg := &segs[0]
	rest := segs[1:]
	switch {
	case seg.Wildcard:
		switch y.Type {
		case ir.ArrayType, ir.ObjectType:
			for _, v := range y.Values {
				if !resolveSegs(v, rest, yield) {
					return false
				}
			}
		}
		// a scalar fans out to nothing
	case len(seg.Group) > 0:
		if y.Type != ir.ObjectType {
			return true
		}
		// absent alternatives are skipped silently; present ones are
		// visited in document order
		for i, field := range y.Fields {
			for _, alt := range seg.Group {
				if field.String != alt {
					continue
				}
				if !resolveSegs(y.Values[i], rest, yield) {
					return false
				}
				break
			}
		}
	default:
		if y.Type != ir.ObjectType {
			return true
		}
		if v := ir.Get(y, seg.Literal); v != nil {
			return resolveSegs(v, rest, yield)
		}
		// absent key: this branch contributes zero matches
	}
	return true
}
