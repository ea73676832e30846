package selector

import (
	"strings"
)

// Selector is a parsed merge selector: a path of segments plus an
// optional trailing merge instruction. Selectors are immutable after
// Parse.
type Selector struct {
	Segments    []Segment
	Instruction Instruction
}

// Segment is one path step. Exactly one of the variant fields is set:
// Literal for a plain key, Group for an alternation, Wildcard for "[]".
type Segment struct {
	Literal  string
	Group    []string
	Wildcard bool
}

func (s *Segment) String() string {
	switch {
	case s.Wildcard:
		return "[]"
	case len(s.Group) > 0:
		return "(" + strings.Join(s.Group, "|") + ")"
	default:
		return s.Literal
	}
}

// Instruction is the trailing merge instruction of a selector.
type Instruction interface {
	String() string
	instruction()
}

// KeyedUpdate targets a list of objects: the first element whose KeyField
// equals TargetValue gets ValueField set from the input document's
// SourceKey.
type KeyedUpdate struct {
	KeyField    string
	TargetValue string
	ValueField  string
	SourceKey   string
}

func (k *KeyedUpdate) instruction() {}

func (k *KeyedUpdate) String() string {
	return "(" + k.KeyField + "=" + k.TargetValue +
		" on " + k.ValueField + " from " + k.SourceKey + ")"
}

// FieldPair is one dest-from-source assignment of a DirectAssign.
type FieldPair struct {
	Dest   string
	Source string
}

// DirectAssign targets an object: each pair sets Dest from the input
// document's Source, creating the field when absent.
type DirectAssign struct {
	Pairs []FieldPair
}

func (d *DirectAssign) instruction() {}

func (d *DirectAssign) String() string {
	parts := make([]string, len(d.Pairs))
	for i, p := range d.Pairs {
		parts[i] = p.Dest + " from " + p.Source
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// String returns the canonical text of the selector.
func (s *Selector) String() string {
	if s == nil {
		return ""
	}
	parts := make([]string, 0, len(s.Segments)+1)
	for i := range s.Segments {
		parts = append(parts, s.Segments[i].String())
	}
	if s.Instruction != nil {
		parts = append(parts, s.Instruction.String())
	}
	return strings.Join(parts, ".")
}
