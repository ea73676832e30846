package runefmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/davethomas11/vectrune/ir"
)

type EncState struct {
	indent int

	Color func(ir.Type, ColorAttr, string) string
}

type EncodeOption func(*EncState)

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}

// Encode writes node as rune text. The node must be an object; its
// fields become sections and nested objects become deeper section
// paths. Map blocks parsed from "k { }" syntax re-encode as sections,
// which parses back to the same tree.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	if node == nil || node.Type != ir.ObjectType {
		return fmt.Errorf("rune documents are objects, have %v", nodeType(node))
	}
	for i, f := range node.Fields {
		v := node.Values[i]
		if v.Type != ir.ObjectType {
			return fmt.Errorf("top level field %q is not a section", f.String)
		}
		if err := encodeSection(w, es, f.String, v); err != nil {
			return err
		}
	}
	return nil
}

func nodeType(y *ir.Node) ir.Type {
	if y == nil {
		return ir.NullType
	}
	return y.Type
}

func encodeSection(w io.Writer, es *EncState, path string, sec *ir.Node) error {
	header := "@" + path
	if es.Color != nil {
		header = es.Color(ir.ObjectType, SectionColor, header)
	}
	if err := writeString(w, header+"\n"); err != nil {
		return err
	}
	var subSections []int
	for i, f := range sec.Fields {
		v := sec.Values[i]
		switch {
		case v.Type == ir.ObjectType:
			subSections = append(subSections, i)
		case f.String == "record" && isRecordArray(v):
			// emitted after plain pairs so following kv lines
			// stay attached to their record
		case v.Type == ir.ArrayType && !isInlineList(v):
			if err := encodeSeries(w, es, f.String, v, 0); err != nil {
				return err
			}
		default:
			if err := encodePair(w, es, f.String, v, ""); err != nil {
				return err
			}
		}
	}
	for i, f := range sec.Fields {
		v := sec.Values[i]
		if f.String == "record" && isRecordArray(v) {
			if err := encodeRecords(w, es, v); err != nil {
				return err
			}
		}
	}
	if err := writeString(w, "\n"); err != nil {
		return err
	}
	for _, i := range subSections {
		if err := encodeSection(w, es, path+"/"+sec.Fields[i].String, sec.Values[i]); err != nil {
			return err
		}
	}
	return nil
}

func encodePair(w io.Writer, es *EncState, field string, v *ir.Node, prefix string) error {
	if v.Type == ir.StringType && strings.Contains(v.String, "\n") {
		return encodeMultiline(w, es, field, v)
	}
	f, sep, val := field, " = ", scalarText(v)
	if es.Color != nil {
		f = es.Color(v.Type, FieldColor, f)
		sep = es.Color(v.Type, SepColor, sep)
		val = es.Color(v.Type, ValueColor, val)
	}
	return writeString(w, prefix+f+sep+val+"\n")
}

func encodeMultiline(w io.Writer, es *EncState, field string, v *ir.Node) error {
	f := field
	if es.Color != nil {
		f = es.Color(ir.StringType, FieldColor, f)
	}
	if err := writeString(w, f+" >\n"); err != nil {
		return err
	}
	for _, line := range strings.Split(v.String, "\n") {
		if es.Color != nil {
			line = es.Color(ir.StringType, ValueColor, line)
		}
		if err := writeString(w, "  "+line+"\n"); err != nil {
			return err
		}
	}
	return writeString(w, "\n")
}

func encodeSeries(w io.Writer, es *EncState, field string, list *ir.Node, depth int) error {
	pad := strings.Repeat("  ", depth)
	f := field + ":"
	if es.Color != nil {
		f = es.Color(ir.ArrayType, FieldColor, f)
	}
	if err := writeString(w, pad+f+"\n"); err != nil {
		return err
	}
	for _, item := range list.Values {
		// nested series parse back as single-field objects holding a list
		if item.Type == ir.ObjectType && len(item.Fields) == 1 && item.Values[0].Type == ir.ArrayType {
			if err := encodeSeries(w, es, item.Fields[0].String, item.Values[0], depth+1); err != nil {
				return err
			}
			continue
		}
		text := seriesItemText(item)
		if es.Color != nil {
			text = es.Color(item.Type, ValueColor, text)
		}
		if err := writeString(w, pad+"  "+text+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func encodeRecords(w io.Writer, es *EncState, records *ir.Node) error {
	for _, rec := range records.Values {
		marker := "+"
		if es.Color != nil {
			marker = es.Color(ir.ObjectType, SepColor, marker)
		}
		for i, f := range rec.Fields {
			if i == 0 {
				if err := encodePair(w, es, f.String, rec.Values[i], marker+" "); err != nil {
					return err
				}
				continue
			}
			if err := encodePair(w, es, f.String, rec.Values[i], ""); err != nil {
				return err
			}
		}
		if len(rec.Fields) == 0 {
			if err := writeString(w, marker+"\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

func isRecordArray(v *ir.Node) bool {
	if v.Type != ir.ArrayType {
		return false
	}
	for _, e := range v.Values {
		if e.Type != ir.ObjectType {
			return false
		}
	}
	return true
}

// isInlineList reports whether an array encodes as a "(a b c)" value
// rather than a series: all elements scalar strings with no spaces.
func isInlineList(v *ir.Node) bool {
	for _, e := range v.Values {
		if e.Type != ir.StringType || strings.ContainsAny(e.String, " \n") {
			return false
		}
	}
	return len(v.Values) > 0
}

func seriesItemText(item *ir.Node) string {
	if item.Type == ir.ObjectType {
		pairs := make([]string, 0, len(item.Fields))
		for i, f := range item.Fields {
			pairs = append(pairs, f.String+" = "+scalarText(item.Values[i]))
		}
		return "{" + strings.Join(pairs, ", ") + "}"
	}
	return ir.ScalarString(item)
}

func scalarText(v *ir.Node) string {
	switch v.Type {
	case ir.ArrayType:
		parts := make([]string, 0, len(v.Values))
		for _, e := range v.Values {
			parts = append(parts, ir.ScalarString(e))
		}
		return "(" + strings.Join(parts, " ") + ")"
	case ir.StringType:
		if needsQuotes(v.String) {
			return strconv.Quote(v.String)
		}
		return v.String
	default:
		return ir.ScalarString(v)
	}
}

// needsQuotes reports whether a string would re-parse as a different
// scalar type without quoting.
func needsQuotes(s string) bool {
	if s == "" || s == "true" || s == "false" {
		return true
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return true
	}
	return strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")")
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}
