// Package debug provides env-gated debug logging for the merge engine.
// Set VECTRUNE_DEBUG_RESOLVE, VECTRUNE_DEBUG_OP or VECTRUNE_DEBUG_MERGE
// to a truthy value to enable the corresponding trace on stderr.
package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Resolve bool
	Op      bool
	Merge   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Resolve = boolEnv("VECTRUNE_DEBUG_RESOLVE")
	d.Op = boolEnv("VECTRUNE_DEBUG_OP")
	d.Merge = boolEnv("VECTRUNE_DEBUG_MERGE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Resolve() bool {
	return d.Resolve
}
func Op() bool {
	return d.Op
}
func Merge() bool {
	return d.Merge
}
