package selector

import (
	"strings"
)

// Parse parses selector text into a Selector. It returns a *SyntaxError
// for malformed path structure and an *InstructionError for a merge
// instruction that is incomplete at the keyword level.
func Parse(text string) (*Selector, error) {
	if text == "" {
		return nil, &SyntaxError{Text: text, Pos: 0, Msg: "empty selector"}
	}
	raws, err := splitSegments(text)
	if err != nil {
		return nil, err
	}
	sel := &Selector{}
	raws, sel.Instruction, err = extractInstruction(text, raws)
	if err != nil {
		return nil, err
	}
	for _, rs := range raws {
		switch {
		case rs.text == "":
			return nil, &SyntaxError{Text: text, Pos: rs.pos, Msg: "empty segment"}
		case rs.text == "[]":
			sel.Segments = append(sel.Segments, Segment{Wildcard: true})
		case strings.HasPrefix(rs.text, "["):
			return nil, &SyntaxError{Text: text, Pos: rs.pos, Msg: "wildcard segment must be exactly []"}
		case strings.HasPrefix(rs.text, "("):
			if !strings.HasSuffix(rs.text, ")") || len(rs.text) < 2 {
				return nil, &SyntaxError{Text: text, Pos: rs.pos, Msg: "unterminated group"}
			}
			inner := rs.text[1 : len(rs.text)-1]
			if inner == "" {
				return nil, &SyntaxError{Text: text, Pos: rs.pos, Msg: "empty group"}
			}
			if isInstructionText(inner) {
				// a real instruction was already peeled off the end
				return nil, &SyntaxError{
					Text: text, Pos: rs.pos,
					Msg: "merge instruction must be the final segment",
				}
			}
			grp, err := parseGroup(text, inner, rs.pos)
			if err != nil {
				return nil, err
			}
			sel.Segments = append(sel.Segments, Segment{Group: grp})
		default:
			if j := strings.IndexAny(rs.text, "()[]"); j >= 0 {
				return nil, &SyntaxError{
					Text: text, Pos: rs.pos + j,
					Msg: "unexpected " + rs.text[j:j+1] + " in name",
				}
			}
			sel.Segments = append(sel.Segments, Segment{Literal: rs.text})
		}
	}
	if len(sel.Segments) == 0 && sel.Instruction == nil {
		return nil, &SyntaxError{Text: text, Pos: 0, Msg: "empty selector"}
	}
	return sel, nil
}

type rawSegment struct {
	text string
	pos  int
}

// extractInstruction peels a trailing merge instruction off the last
// segment. The instruction may stand as its own dot-separated segment
// or sit directly attached to the final path segment.
func extractInstruction(text string, raws []rawSegment) ([]rawSegment, Instruction, error) {
	last := &raws[len(raws)-1]
	if !strings.HasSuffix(last.text, ")") {
		return raws, nil, nil
	}
	open, depth := -1, 0
	for i := len(last.text) - 1; i >= 0 && open < 0; i-- {
		switch last.text[i] {
		case ')':
			depth++
		case '(':
			depth--
			if depth == 0 {
				open = i
			}
		}
	}
	if open < 0 {
		return raws, nil, nil
	}
	inner := last.text[open+1 : len(last.text)-1]
	if !isInstructionText(inner) {
		return raws, nil, nil
	}
	instr, err := parseInstruction(text, inner, last.pos+open)
	if err != nil {
		return nil, nil, err
	}
	if head := last.text[:open]; head == "" {
		raws = raws[:len(raws)-1]
	} else {
		last.text = head
	}
	return raws, instr, nil
}

// splitSegments cuts the selector at top-level dots; dots inside a
// parenthesized group or instruction do not split.
func splitSegments(text string) ([]rawSegment, error) {
	var (
		res   []rawSegment
		depth int
		open  int
		start int
	)
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '(':
			if depth == 0 {
				open = i
			}
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, &SyntaxError{Text: text, Pos: i, Msg: "unbalanced )"}
			}
		case '.':
			if depth == 0 {
				res = append(res, rawSegment{text: text[start:i], pos: start})
				start = i + 1
			}
		}
	}
	if depth > 0 {
		return nil, &SyntaxError{Text: text, Pos: open, Msg: "unterminated group or instruction"}
	}
	res = append(res, rawSegment{text: text[start:], pos: start})
	return res, nil
}

// isInstructionText distinguishes the instruction sub-grammar from an
// alternation group: instructions carry the "on"/"from" keywords.
func isInstructionText(inner string) bool {
	return strings.Contains(inner, " from ") || strings.Contains(inner, " on ")
}

func parseGroup(text, inner string, pos int) ([]string, error) {
	alts := strings.Split(inner, "|")
	for _, alt := range alts {
		if alt == "" {
			return nil, &SyntaxError{Text: text, Pos: pos, Msg: "empty group alternative"}
		}
	}
	return alts, nil
}

func parseInstruction(text, inner string, pos int) (Instruction, error) {
	if strings.Contains(inner, " on ") {
		return parseKeyedUpdate(text, inner, pos)
	}
	return parseDirectAssign(text, inner, pos)
}

func parseKeyedUpdate(text, inner string, pos int) (Instruction, error) {
	left, rest, _ := strings.Cut(inner, " on ")
	keyField, target, ok := strings.Cut(left, "=")
	if !ok {
		return nil, &InstructionError{
			Text: text, Pos: pos,
			Msg: "keyed update requires key_field=target_value before 'on'",
		}
	}
	valueField, sourceKey, ok := strings.Cut(rest, " from ")
	if !ok {
		return nil, &InstructionError{
			Text: text, Pos: pos,
			Msg: "keyed update missing 'from' after value field",
		}
	}
	k := &KeyedUpdate{
		KeyField:    strings.TrimSpace(keyField),
		TargetValue: strings.TrimSpace(target),
		ValueField:  strings.TrimSpace(valueField),
		SourceKey:   strings.TrimSpace(sourceKey),
	}
	if k.KeyField == "" || k.TargetValue == "" || k.ValueField == "" || k.SourceKey == "" {
		return nil, &InstructionError{
			Text: text, Pos: pos,
			Msg: "keyed update has an empty field",
		}
	}
	return k, nil
}

// parseDirectAssign accepts both "a from x, b from y" and the
// shared-source form "a, b from s", where the trailing source covers
// every preceding bare field.
func parseDirectAssign(text, inner string, pos int) (Instruction, error) {
	d := &DirectAssign{}
	var pending []string
	for _, clause := range strings.Split(inner, ",") {
		dest, src, ok := strings.Cut(clause, " from ")
		if !ok {
			name := strings.TrimSpace(clause)
			if name == "" {
				return nil, &InstructionError{
					Text: text, Pos: pos,
					Msg: "assignment has an empty field",
				}
			}
			pending = append(pending, name)
			continue
		}
		p := FieldPair{Dest: strings.TrimSpace(dest), Source: strings.TrimSpace(src)}
		if p.Dest == "" || p.Source == "" {
			return nil, &InstructionError{
				Text: text, Pos: pos,
				Msg: "assignment has an empty field",
			}
		}
		for _, name := range pending {
			d.Pairs = append(d.Pairs, FieldPair{Dest: name, Source: p.Source})
		}
		pending = nil
		d.Pairs = append(d.Pairs, p)
	}
	if len(pending) > 0 {
		return nil, &InstructionError{
			Text: text, Pos: pos,
			Msg: "assignment requires 'dest_field from source_key'",
		}
	}
	return d, nil
}
