package mergeop

import (
	"errors"
	"fmt"

	"github.com/davethomas11/vectrune/ir"
)

var (
	// ErrTypeMismatch is wrapped by all TypeMismatchError values.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrNoSource reports a source key absent from the input document.
	ErrNoSource = errors.New("source key not found in input document")
)

// TypeMismatchError reports a resolved location whose shape does not
// match what the instruction requires. It aborts the whole merge; the
// base tree must not be trusted afterwards.
type TypeMismatchError struct {
	Path string // location path in the base tree; "" for the root
	Want ir.Type
	Got  ir.Type
}

func (e *TypeMismatchError) Error() string {
	p := e.Path
	if p == "" {
		p = "$"
	}
	return fmt.Sprintf("%s at %s: instruction requires %s, found %s",
		ErrTypeMismatch, p, e.Want, e.Got)
}

func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }
