package codec

import (
	"bytes"
	"fmt"

	"github.com/davethomas11/vectrune/ir"

	jsonpatch "github.com/evanphx/json-patch"
)

// ApplyPatch applies an RFC 6902 patch document to y and returns the
// patched tree. Both trees go through their JSON form, so key order in
// untouched objects is preserved by the ordered JSON codec on the way
// back.
func ApplyPatch(y, patch *ir.Node) (*ir.Node, error) {
	var pbuf bytes.Buffer
	if err := encodeJSON(patch, &pbuf); err != nil {
		return nil, err
	}
	ops, err := jsonpatch.DecodePatch(pbuf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("patch: %w", err)
	}
	var dbuf bytes.Buffer
	if err := encodeJSON(y, &dbuf); err != nil {
		return nil, err
	}
	out, err := ops.Apply(dbuf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("patch: %w", err)
	}
	return parseJSON(out)
}
