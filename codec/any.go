package codec

import (
	"fmt"
	"math"
	"sort"

	"github.com/davethomas11/vectrune/ir"

	"github.com/goccy/go-yaml"
)

// ToAny converts an ir tree to plain Go values. Objects become
// yaml.MapSlice so field order survives re-encoding.
func ToAny(y *ir.Node) any {
	if y == nil {
		return nil
	}
	switch y.Type {
	case ir.NullType:
		return nil
	case ir.BoolType:
		return y.Bool
	case ir.NumberType:
		if y.Int64 != nil {
			return *y.Int64
		}
		if y.Float64 != nil {
			return *y.Float64
		}
		return 0
	case ir.StringType:
		return y.String
	case ir.ArrayType:
		res := make([]any, len(y.Values))
		for i, v := range y.Values {
			res[i] = ToAny(v)
		}
		return res
	case ir.ObjectType:
		res := make(yaml.MapSlice, len(y.Fields))
		for i, f := range y.Fields {
			res[i] = yaml.MapItem{Key: f.String, Value: ToAny(y.Values[i])}
		}
		return res
	}
	return nil
}

// FromAny converts plain Go values to an ir tree.
func FromAny(v any) (*ir.Node, error) {
	switch t := v.(type) {
	case nil:
		return ir.Null(), nil
	case bool:
		return ir.FromBool(t), nil
	case string:
		return ir.FromString(t), nil
	case int:
		return ir.FromInt(int64(t)), nil
	case int64:
		return ir.FromInt(t), nil
	case uint64:
		if t > math.MaxInt64 {
			return ir.FromFloat(float64(t)), nil
		}
		return ir.FromInt(int64(t)), nil
	case float64:
		if t == math.Trunc(t) && math.Abs(t) < 1<<53 {
			return ir.FromInt(int64(t)), nil
		}
		return ir.FromFloat(t), nil
	case []any:
		items := make([]*ir.Node, len(t))
		for i, e := range t {
			n, err := FromAny(e)
			if err != nil {
				return nil, err
			}
			items[i] = n
		}
		return ir.FromSlice(items), nil
	case yaml.MapSlice:
		obj := ir.Object()
		for _, item := range t {
			key, ok := item.Key.(string)
			if !ok {
				key = fmt.Sprint(item.Key)
			}
			n, err := FromAny(item.Value)
			if err != nil {
				return nil, err
			}
			ir.Set(obj, key, n)
		}
		return obj, nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := ir.Object()
		for _, k := range keys {
			n, err := FromAny(t[k])
			if err != nil {
				return nil, err
			}
			ir.Set(obj, k, n)
		}
		return obj, nil
	}
	return nil, fmt.Errorf("cannot convert %T to a document node", v)
}
