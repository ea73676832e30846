// Package calc evaluates calculations over a parsed document:
// aggregate queries of the form "avg Section.field" (also sum, min,
// max, count) over a section's records, and general expressions
// against the document's values for everything else.
package calc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/davethomas11/vectrune/ir"

	"github.com/expr-lang/expr"
)

var ErrQuery = errors.New("calc query error")

type aggregate int

const (
	aggAvg aggregate = iota
	aggSum
	aggMin
	aggMax
	aggCount
)

var aggregates = map[string]aggregate{
	"avg":   aggAvg,
	"sum":   aggSum,
	"min":   aggMin,
	"max":   aggMax,
	"count": aggCount,
}

// Eval evaluates query against root and returns the result value.
func Eval(root *ir.Node, query string) (any, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", ErrQuery)
	}
	if word, rest, ok := strings.Cut(query, " "); ok {
		if agg, isAgg := aggregates[word]; isAgg {
			return evalAggregate(root, agg, word, strings.TrimSpace(rest))
		}
	}
	return evalExpr(root, query)
}

func evalAggregate(root *ir.Node, agg aggregate, name, target string) (any, error) {
	section, field, ok := strings.Cut(target, ".")
	if !ok && agg != aggCount {
		return nil, fmt.Errorf("%w: %s needs Section.field, got %q", ErrQuery, name, target)
	}
	sec := sectionByPath(root, section)
	if sec == nil {
		return nil, fmt.Errorf("%w: no section %q", ErrQuery, section)
	}
	records := ir.Get(sec, "record")
	if records == nil || records.Type != ir.ArrayType {
		return nil, fmt.Errorf("%w: section %q has no records", ErrQuery, section)
	}
	if agg == aggCount && field == "" {
		return int64(len(records.Values)), nil
	}

	var (
		vals []float64
		ints = true
	)
	for _, rec := range records.Values {
		v := ir.Get(rec, field)
		if v == nil || v.Type != ir.NumberType {
			continue
		}
		if v.Int64 != nil {
			vals = append(vals, float64(*v.Int64))
		} else if v.Float64 != nil {
			vals = append(vals, *v.Float64)
			ints = false
		}
	}
	if agg == aggCount {
		return int64(len(vals)), nil
	}
	if len(vals) == 0 {
		return nil, fmt.Errorf("%w: no numeric %q values in %q", ErrQuery, field, section)
	}
	var res float64
	switch agg {
	case aggSum, aggAvg:
		for _, v := range vals {
			res += v
		}
		if agg == aggAvg {
			res /= float64(len(vals))
			ints = false
		}
	case aggMin:
		res = vals[0]
		for _, v := range vals[1:] {
			if v < res {
				res = v
			}
		}
	case aggMax:
		res = vals[0]
		for _, v := range vals[1:] {
			if v > res {
				res = v
			}
		}
	}
	if ints && res == float64(int64(res)) {
		return int64(res), nil
	}
	return res, nil
}

// sectionByPath walks dotted or slashed section paths: "App" or
// "App/Resources".
func sectionByPath(root *ir.Node, path string) *ir.Node {
	cur := root
	for _, part := range strings.FieldsFunc(path, func(r rune) bool { return r == '/' }) {
		cur = ir.Get(cur, part)
		if cur == nil || cur.Type != ir.ObjectType {
			return nil
		}
	}
	if cur == root && path != "" {
		return nil
	}
	return cur
}

func evalExpr(root *ir.Node, query string) (any, error) {
	env := exprEnv(root)
	prog, err := expr.Compile(query, expr.Env(env))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	out, err := expr.Run(prog, env)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	return out, nil
}

// exprEnv converts the document to the nested maps and slices the
// expression engine understands. Field order does not matter here.
func exprEnv(root *ir.Node) map[string]any {
	v, _ := exprValue(root).(map[string]any)
	if v == nil {
		v = map[string]any{}
	}
	return v
}

func exprValue(y *ir.Node) any {
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
			res[i] = exprValue(v)
		}
		return res
	case ir.ObjectType:
		res := make(map[string]any, len(y.Fields))
		for i, f := range y.Fields {
			res[f.String] = exprValue(y.Values[i])
		}
		return res
	}
	return nil
}
