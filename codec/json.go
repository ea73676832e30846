package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/davethomas11/vectrune/ir"
)

// parseJSON builds an ir tree from JSON, walking the token stream so
// object key order is preserved. json.Unmarshal into map[string]any
// would lose it.
func parseJSON(d []byte) (*ir.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	n, err := decodeJSONValue(dec)
	if err != nil {
		return nil, fmt.Errorf("json: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("json: trailing data after document")
	}
	return n, nil
}

func decodeJSONValue(dec *json.Decoder) (*ir.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return jsonToken(dec, tok)
}

func jsonToken(dec *json.Decoder, tok json.Token) (*ir.Node, error) {
	switch t := tok.(type) {
	case nil:
		return ir.Null(), nil
	case bool:
		return ir.FromBool(t), nil
	case string:
		return ir.FromString(t), nil
	case json.Number:
		if i, err := strconv.ParseInt(t.String(), 10, 64); err == nil {
			return ir.FromInt(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, err
		}
		return ir.FromFloat(f), nil
	case json.Delim:
		switch t {
		case '{':
			obj := ir.Object()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key %v", keyTok)
				}
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				ir.Set(obj, key, val)
			}
			if _, err := dec.Token(); err != nil { // closing '}'
				return nil, err
			}
			return obj, nil
		case '[':
			arr := ir.FromSlice(nil)
			for dec.More() {
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				ir.Append(arr, val)
			}
			if _, err := dec.Token(); err != nil { // closing ']'
				return nil, err
			}
			return arr, nil
		}
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

// encodeJSON writes an ir tree as indented JSON, emitting object
// fields in document order.
func encodeJSON(y *ir.Node, w io.Writer) error {
	var buf bytes.Buffer
	if err := writeJSONValue(&buf, y, 0); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}

func writeJSONValue(buf *bytes.Buffer, y *ir.Node, depth int) error {
	if y == nil {
		buf.WriteString("null")
		return nil
	}
	switch y.Type {
	case ir.NullType:
		buf.WriteString("null")
	case ir.BoolType:
		buf.WriteString(strconv.FormatBool(y.Bool))
	case ir.NumberType:
		buf.WriteString(ir.ScalarString(y))
	case ir.StringType:
		d, err := json.Marshal(y.String)
		if err != nil {
			return err
		}
		buf.Write(d)
	case ir.ArrayType:
		if len(y.Values) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteString("[\n")
		for i, v := range y.Values {
			jsonIndent(buf, depth+1)
			if err := writeJSONValue(buf, v, depth+1); err != nil {
				return err
			}
			if i < len(y.Values)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		jsonIndent(buf, depth)
		buf.WriteByte(']')
	case ir.ObjectType:
		if len(y.Fields) == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteString("{\n")
		for i, f := range y.Fields {
			jsonIndent(buf, depth+1)
			d, err := json.Marshal(f.String)
			if err != nil {
				return err
			}
			buf.Write(d)
			buf.WriteString(": ")
			if err := writeJSONValue(buf, y.Values[i], depth+1); err != nil {
				return err
			}
			if i < len(y.Fields)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		jsonIndent(buf, depth)
		buf.WriteByte('}')
	default:
		return fmt.Errorf("cannot encode node type %v", y.Type)
	}
	return nil
}

func jsonIndent(buf *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		buf.WriteString("  ")
	}
}
