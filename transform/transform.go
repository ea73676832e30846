// Package transform builds a new document from values gathered out of
// another document's records.
//
// A transform spec names a target section and one or more key specs:
//
//	@Target names:[@Skateboarder.name|unique|sort]
//	@Target ages:[@Skateboarder.age|sort:desc]
//	@Target pros:[@Skateboarder.name=="Tony Hawk"|unique]
//
// Each key spec collects the named field from every record of the
// source section, optionally filtered by an equality test, then runs
// the gathered values through the listed modifiers.
package transform

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/davethomas11/vectrune/ir"
)

var ErrSpec = errors.New("transform spec error")

// Apply evaluates spec against root and returns the new document.
func Apply(root *ir.Node, spec string) (*ir.Node, error) {
	spec = strings.TrimSpace(spec)
	if !strings.HasPrefix(spec, "@") {
		return nil, fmt.Errorf("%w: spec must start with '@'", ErrSpec)
	}
	target, rest, ok := strings.Cut(spec, " ")
	if !ok {
		return nil, fmt.Errorf("%w: missing key specifications after target section", ErrSpec)
	}
	targetSection := strings.TrimPrefix(target, "@")

	section := ir.Object()
	for _, tok := range splitKeySpecs(rest) {
		key, listPart, ok := strings.Cut(tok, ":")
		if !ok {
			return nil, fmt.Errorf("%w: missing ':' after key in %q", ErrSpec, tok)
		}
		listPart = strings.TrimSpace(listPart)
		if !strings.HasPrefix(listPart, "[") || !strings.HasSuffix(listPart, "]") {
			return nil, fmt.Errorf("%w: list spec must be in [ ... ], got %q", ErrSpec, listPart)
		}
		values, err := evalListSpec(root, strings.TrimSpace(listPart[1:len(listPart)-1]))
		if err != nil {
			return nil, err
		}
		list := ir.FromSlice(nil)
		for _, v := range values {
			ir.Append(list, ir.FromString(v))
		}
		ir.Set(section, strings.TrimSpace(key), list)
	}
	if len(section.Fields) == 0 {
		return nil, fmt.Errorf("%w: expected at least one key specification like key:[@Section.field]", ErrSpec)
	}

	out := ir.Object()
	ir.Set(out, targetSection, section)
	return out, nil
}

// splitKeySpecs tokenizes on spaces outside brackets.
func splitKeySpecs(s string) []string {
	var (
		toks  []string
		start int
		level int
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			level++
		case ']':
			level--
		case ' ':
			if level == 0 {
				if start < i {
					toks = append(toks, s[start:i])
				}
				start = i + 1
			}
		}
	}
	if start < len(s) {
		toks = append(toks, s[start:])
	}
	return toks
}

func evalListSpec(root *ir.Node, inner string) ([]string, error) {
	if !strings.HasPrefix(inner, "@") {
		return nil, fmt.Errorf("%w: list selector must start with '@'", ErrSpec)
	}
	parts := strings.Split(inner, "|")
	selector := strings.TrimSpace(parts[0])
	modifiers := parts[1:]

	var filter *literal
	if lhs, rhs, ok := strings.Cut(selector, "=="); ok {
		filter = parseLiteral(strings.TrimSpace(rhs))
		selector = strings.TrimSpace(lhs)
	}
	section, field, ok := strings.Cut(strings.TrimPrefix(selector, "@"), ".")
	if !ok {
		return nil, fmt.Errorf("%w: selector must be @Section.field, got %q", ErrSpec, selector)
	}
	section, field = strings.TrimSpace(section), strings.TrimSpace(field)

	var values []string
	sec := ir.Get(root, section)
	if sec != nil && sec.Type == ir.ObjectType {
		if records := ir.Get(sec, "record"); records != nil && records.Type == ir.ArrayType {
			for _, rec := range records.Values {
				v := ir.Get(rec, field)
				if v == nil || !v.Type.IsScalar() || v.Type == ir.NullType {
					continue
				}
				if filter != nil && !filter.matches(v) {
					continue
				}
				values = append(values, ir.ScalarString(v))
			}
		}
	}

	for _, m := range modifiers {
		m = strings.TrimSpace(m)
		switch {
		case strings.EqualFold(m, "unique"), strings.EqualFold(m, "distinct"):
			values = uniqueStable(values)
		case strings.HasPrefix(strings.ToLower(m), "sort"):
			desc := strings.HasPrefix(strings.ToLower(m), "sort:desc")
			sortMaybeNumeric(values, desc)
		}
	}
	return values, nil
}

type literal struct {
	s string
	n *float64
	b *bool
}

func parseLiteral(s string) *literal {
	if strings.EqualFold(s, "true") {
		b := true
		return &literal{b: &b}
	}
	if strings.EqualFold(s, "false") {
		b := false
		return &literal{b: &b}
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return &literal{n: &n}
	}
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return &literal{s: s[1 : len(s)-1]}
		}
	}
	return &literal{s: s}
}

func (l *literal) matches(v *ir.Node) bool {
	switch v.Type {
	case ir.StringType:
		if l.n != nil || l.b != nil {
			return false
		}
		return l.s == v.String
	case ir.NumberType:
		var f float64
		if v.Int64 != nil {
			f = float64(*v.Int64)
		} else if v.Float64 != nil {
			f = *v.Float64
		}
		if l.n != nil {
			return *l.n == f
		}
		if l.b == nil {
			n, err := strconv.ParseFloat(l.s, 64)
			return err == nil && n == f
		}
	case ir.BoolType:
		if l.b != nil {
			return *l.b == v.Bool
		}
		if l.n == nil {
			if strings.EqualFold(l.s, "true") {
				return v.Bool
			}
			if strings.EqualFold(l.s, "false") {
				return !v.Bool
			}
		}
	}
	return false
}

func uniqueStable(v []string) []string {
	seen := make(map[string]bool, len(v))
	res := v[:0]
	for _, s := range v {
		if !seen[s] {
			seen[s] = true
			res = append(res, s)
		}
	}
	return res
}

func sortMaybeNumeric(v []string, desc bool) {
	allNumeric := len(v) > 0
	for _, s := range v {
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			allNumeric = false
			break
		}
	}
	if allNumeric {
		sort.SliceStable(v, func(i, j int) bool {
			fi, _ := strconv.ParseFloat(v[i], 64)
			fj, _ := strconv.ParseFloat(v[j], 64)
			return fi < fj
		})
	} else {
		sort.Strings(v)
	}
	if desc {
		for i, j := 0, len(v)-1; i < j; i, j = i+1, j-1 {
			v[i], v[j] = v[j], v[i]
		}
	}
}
