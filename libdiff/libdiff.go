// Package libdiff renders line diffs between two serialized documents,
// used to show what a merge changed.
package libdiff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Lines computes a line-level diff between two texts. Each returned
// line carries a "+ ", "- " or "  " prefix.
func Lines(from, to string) []string {
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	var res []string
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		}
		text := strings.TrimSuffix(d.Text, "\n")
		for _, line := range strings.Split(text, "\n") {
			res = append(res, prefix+line)
		}
	}
	return res
}

// Changed filters a diff down to its insertions and deletions.
func Changed(lines []string) []string {
	var res []string
	for _, line := range lines {
		if strings.HasPrefix(line, "+ ") || strings.HasPrefix(line, "- ") {
			res = append(res, line)
		}
	}
	return res
}
