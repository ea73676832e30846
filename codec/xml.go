package codec

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/davethomas11/vectrune/ir"
)

// parseXML builds an ir tree from XML. Child elements become object
// fields, repeated element names collect into arrays, and text content
// is re-typed so numbers and booleans survive a round trip. There is
// no XML document model library in use here because none of the usual
// Go XML helpers keep repeated-element ordering; the token stream does.
func parseXML(d []byte) (*ir.Node, error) {
	dec := xml.NewDecoder(bytes.NewReader(d))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("xml: no root element")
		}
		if err != nil {
			return nil, fmt.Errorf("xml: %w", err)
		}
		if start, ok := tok.(xml.StartElement); ok {
			node, err := parseXMLElement(dec, start)
			if err != nil {
				return nil, fmt.Errorf("xml: %w", err)
			}
			if start.Name.Local == "root" {
				return node, nil
			}
			root := ir.Object()
			ir.Set(root, start.Name.Local, node)
			return root, nil
		}
	}
}

func parseXMLElement(dec *xml.Decoder, start xml.StartElement) (*ir.Node, error) {
	obj := ir.Object()
	var text strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := parseXMLElement(dec, t)
			if err != nil {
				return nil, err
			}
			addXMLChild(obj, t.Name.Local, child)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			if len(obj.Fields) > 0 {
				return obj, nil
			}
			s := strings.TrimSpace(text.String())
			if s == "" {
				return ir.Null(), nil
			}
			leaf := ir.FromString(s)
			leaf.ReType()
			return leaf, nil
		}
	}
}

// addXMLChild sets a field, promoting it to an array when the element
// name repeats.
func addXMLChild(obj *ir.Node, name string, child *ir.Node) {
	prev := ir.Get(obj, name)
	if prev == nil {
		ir.Set(obj, name, child)
		return
	}
	if prev.Type == ir.ArrayType {
		ir.Append(prev, child)
		return
	}
	arr := ir.FromSlice([]*ir.Node{prev.Clone(), child})
	ir.Set(obj, name, arr)
}

// encodeXML writes an ir tree as XML under a single "root" element.
// Array values repeat their field's element name; a document-level
// array has no field name, so its elements become "item" children of
// root.
func encodeXML(y *ir.Node, w io.Writer) error {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if y != nil && y.Type == ir.ArrayType {
		wrapped := ir.Object()
		ir.Set(wrapped, "item", y.Clone())
		y = wrapped
	}
	if err := writeXMLNamed(&buf, "root", y, 0); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func writeXMLNamed(buf *bytes.Buffer, name string, y *ir.Node, depth int) error {
	if y != nil && y.Type == ir.ArrayType {
		for _, v := range y.Values {
			if err := writeXMLNamed(buf, name, v, depth); err != nil {
				return err
			}
		}
		return nil
	}
	xmlIndent(buf, depth)
	buf.WriteByte('<')
	buf.WriteString(name)
	buf.WriteByte('>')
	if y == nil || y.Type != ir.ObjectType {
		if err := xml.EscapeText(buf, []byte(ir.ScalarString(y))); err != nil {
			return err
		}
	} else {
		buf.WriteByte('\n')
		for i, f := range y.Fields {
			child := y.Values[i]
			if child.Type == ir.ArrayType && len(child.Values) == 0 {
				continue
			}
			if err := writeXMLNamed(buf, f.String, child, depth+1); err != nil {
				return err
			}
		}
		xmlIndent(buf, depth)
	}
	buf.WriteString("</")
	buf.WriteString(name)
	buf.WriteString(">\n")
	return nil
}

func xmlIndent(buf *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		buf.WriteString("  ")
	}
}
