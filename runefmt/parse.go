package runefmt

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/davethomas11/vectrune/ir"
)

var ErrParse = errors.New("rune parse error")

type parser struct {
	root    *ir.Node
	section *ir.Node
	records *ir.Node // pending "+" records of the current section

	// seriesStack tracks open (possibly nested) series by the indent of
	// their "key:" line
	seriesStack []seriesLevel

	multilineKey string
	multilineBuf []string

	lines []string
	ln    int // current line, 1-based for errors
}

type seriesLevel struct {
	indent int
	list   *ir.Node
}

// Parse parses rune text into an ir tree.
func Parse(d []byte) (*ir.Node, error) {
	p := &parser{
		root:  ir.Object(),
		lines: strings.Split(string(d), "\n"),
	}
	for p.ln = 1; p.ln <= len(p.lines); p.ln++ {
		if err := p.line(strings.TrimRight(p.lines[p.ln-1], " \t\r")); err != nil {
			return nil, err
		}
	}
	p.flushMultiline()
	p.flushRecords()
	return p.root, nil
}

func (p *parser) errf(msg string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrParse, p.ln, fmt.Sprintf(msg, args...))
}

func (p *parser) line(line string) error {
	if line == "" {
		p.flushMultiline()
		return nil
	}
	if strings.HasPrefix(strings.TrimSpace(line), "#") {
		return nil
	}
	if strings.HasPrefix(line, "@") {
		return p.startSection(line[1:])
	}
	if p.multilineKey != "" {
		p.multilineBuf = append(p.multilineBuf, strings.TrimLeft(line, " \t"))
		return nil
	}
	if p.section == nil {
		return p.errf("no section for line %q", line)
	}
	indent := len(line) - len(strings.TrimLeft(line, " \t"))
	trimmed := strings.TrimSpace(line)

	// map block: "key {"
	if strings.HasSuffix(trimmed, "{") && !strings.Contains(trimmed, "=") {
		key := strings.TrimSpace(trimmed[:len(trimmed)-1])
		m, err := p.mapBlock()
		if err != nil {
			return err
		}
		ir.Set(p.section, key, m)
		p.seriesStack = nil
		return nil
	}

	// multiline string: "key >"
	if strings.HasSuffix(trimmed, ">") && !strings.Contains(trimmed, "=") {
		p.multilineKey = strings.TrimSpace(trimmed[:len(trimmed)-1])
		p.multilineBuf = nil
		return nil
	}

	// series start: "key:"
	if strings.HasSuffix(trimmed, ":") && !strings.Contains(trimmed, "=") {
		p.startSeries(strings.TrimSpace(trimmed[:len(trimmed)-1]), indent)
		return nil
	}

	// series item: indented or dashed while a series is open
	if indent > 0 || strings.HasPrefix(trimmed, "-") {
		for len(p.seriesStack) > 0 && indent <= p.seriesStack[len(p.seriesStack)-1].indent {
			p.seriesStack = p.seriesStack[:len(p.seriesStack)-1]
		}
		if n := len(p.seriesStack); n > 0 {
			item := strings.TrimSpace(strings.TrimPrefix(trimmed, "-"))
			ir.Append(p.seriesStack[n-1].list, p.itemValue(item))
			return nil
		}
	}
	p.seriesStack = nil

	// record start: "+" optionally followed by the first pair
	if strings.HasPrefix(trimmed, "+") {
		if p.records == nil {
			p.records = ir.FromSlice(nil)
		}
		ir.Append(p.records, ir.Object())
		trimmed = strings.TrimSpace(trimmed[1:])
		if trimmed == "" {
			return nil
		}
	}

	if key, val, ok := strings.Cut(trimmed, "="); ok {
		target := p.section
		if p.records != nil && len(p.records.Values) > 0 {
			target = p.records.Values[len(p.records.Values)-1]
		}
		ir.Set(target, strings.TrimSpace(key), scalarValue(strings.TrimSpace(val)))
		return nil
	}

	return p.errf("unrecognized line %q", line)
}

func (p *parser) startSection(header string) error {
	p.flushMultiline()
	p.flushRecords()
	p.seriesStack = nil
	parts := strings.Split(header, "/")
	cur := p.root
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return p.errf("empty section path element in %q", header)
		}
		next := ir.Get(cur, part)
		if next == nil || next.Type != ir.ObjectType {
			next = ir.Object()
			ir.Set(cur, part, next)
		}
		cur = next
	}
	p.section = cur
	return nil
}

func (p *parser) startSeries(key string, indent int) {
	for len(p.seriesStack) > 0 && indent <= p.seriesStack[len(p.seriesStack)-1].indent {
		p.seriesStack = p.seriesStack[:len(p.seriesStack)-1]
	}
	list := ir.FromSlice(nil)
	if n := len(p.seriesStack); n > 0 {
		// nested series: a fresh {key: []} object on the parent list
		parent := p.seriesStack[n-1].list
		ir.Append(parent, ir.FromKeyVals([]ir.KeyVal{{Key: key, Val: list}}))
	} else {
		ir.Set(p.section, key, list)
	}
	p.seriesStack = append(p.seriesStack, seriesLevel{indent: indent, list: list})
}

// itemValue interprets one series item. Inline objects are written
// "{k = v, k2 = v2}"; everything else stays a string.
func (p *parser) itemValue(item string) *ir.Node {
	if strings.HasPrefix(item, "{") && strings.HasSuffix(item, "}") {
		inner := item[1 : len(item)-1]
		obj := ir.Object()
		for _, pair := range splitTop(inner, ',') {
			if k, v, ok := strings.Cut(pair, "="); ok {
				ir.Set(obj, strings.TrimSpace(k), scalarValue(strings.TrimSpace(v)))
			}
		}
		return obj
	}
	return ir.FromString(item)
}

func (p *parser) mapBlock() (*ir.Node, error) {
	obj := ir.Object()
	for p.ln++; p.ln <= len(p.lines); p.ln++ {
		trimmed := strings.TrimSpace(p.lines[p.ln-1])
		if trimmed == "}" {
			return obj, nil
		}
		if k, v, ok := strings.Cut(trimmed, "="); ok {
			ir.Set(obj, strings.TrimSpace(k), scalarValue(strings.TrimSpace(v)))
		}
	}
	return nil, p.errf("unterminated map block")
}

func (p *parser) flushMultiline() {
	if p.multilineKey == "" {
		return
	}
	ir.Set(p.section, p.multilineKey, ir.FromString(strings.Join(p.multilineBuf, "\n")))
	p.multilineKey = ""
	p.multilineBuf = nil
}

func (p *parser) flushRecords() {
	if p.records == nil || p.section == nil {
		p.records = nil
		return
	}
	if len(p.records.Values) > 0 {
		ir.Set(p.section, "record", p.records)
	}
	p.records = nil
}

// scalarValue interprets a kv value: parenthesized space-separated list,
// boolean, number, $NAME$ environment reference, quoted or bare string.
func scalarValue(raw string) *ir.Node {
	if strings.HasPrefix(raw, "(") && strings.HasSuffix(raw, ")") && len(raw) >= 2 {
		var items []*ir.Node
		for _, f := range strings.Fields(raw[1 : len(raw)-1]) {
			items = append(items, ir.FromString(expandEnv(f)))
		}
		return ir.FromSlice(items)
	}
	switch raw {
	case "true":
		return ir.FromBool(true)
	case "false":
		return ir.FromBool(false)
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return ir.FromInt(i)
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return ir.FromFloat(f)
	}
	return ir.FromString(expandEnv(strings.Trim(raw, `"`)))
}

func expandEnv(v string) string {
	if len(v) > 2 && strings.HasPrefix(v, "$") && strings.HasSuffix(v, "$") {
		return os.Getenv(v[1 : len(v)-1])
	}
	return v
}

// splitTop splits s at sep, ignoring separators inside quotes.
func splitTop(s string, sep byte) []string {
	var (
		res    []string
		start  int
		quoted bool
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			quoted = !quoted
		case sep:
			if !quoted {
				res = append(res, s[start:i])
				start = i + 1
			}
		}
	}
	return append(res, s[start:])
}
