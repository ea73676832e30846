// Package codec parses and encodes documents in any of the supported
// formats, mapping each onto the shared ir tree model.
package codec

import (
	"fmt"
	"io"

	"github.com/davethomas11/vectrune/format"
	"github.com/davethomas11/vectrune/ir"
	"github.com/davethomas11/vectrune/runefmt"
)

// Parse decodes d according to f.
func Parse(d []byte, f format.Format) (*ir.Node, error) {
	switch f {
	case format.RuneFormat:
		return runefmt.Parse(d)
	case format.YAMLFormat:
		return parseYAML(d)
	case format.JSONFormat:
		return parseJSON(d)
	case format.XMLFormat:
		return parseXML(d)
	}
	return nil, fmt.Errorf("unknown format %v", f)
}

// Encode writes y to w according to f.
func Encode(y *ir.Node, w io.Writer, f format.Format, opts ...runefmt.EncodeOption) error {
	switch f {
	case format.RuneFormat:
		return runefmt.Encode(y, w, opts...)
	case format.YAMLFormat:
		return encodeYAML(y, w)
	case format.JSONFormat:
		return encodeJSON(y, w)
	case format.XMLFormat:
		return encodeXML(y, w)
	}
	return fmt.Errorf("unknown format %v", f)
}
