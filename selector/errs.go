package selector

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax is wrapped by all SyntaxError values.
	ErrSyntax = errors.New("selector syntax error")
	// ErrInstruction is wrapped by all InstructionError values.
	ErrInstruction = errors.New("merge instruction error")
)

// SyntaxError reports malformed selector text, with the byte offset of
// the offending fragment.
type SyntaxError struct {
	Text string // full selector text
	Pos  int    // byte offset of the error
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at offset %d in %q: %s", ErrSyntax, e.Pos, e.Text, e.Msg)
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }

// InstructionError reports an instruction that is well-formed at the
// character level but semantically incomplete, such as a keyed update
// missing its "on" or "from" keyword.
type InstructionError struct {
	Text string // full selector text
	Pos  int    // byte offset of the instruction
	Msg  string
}

func (e *InstructionError) Error() string {
	return fmt.Sprintf("%s at offset %d in %q: %s", ErrInstruction, e.Pos, e.Text, e.Msg)
}

func (e *InstructionError) Unwrap() error { return ErrInstruction }
