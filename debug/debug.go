package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Merge bool
	Value bool
	Skip  bool
	Ident bool
}

var d *debug

func init() {
	d = &debug{}
	d.Merge = boolEnv("CALDIFF_DEBUG_MERGE")
	d.Value = boolEnv("CALDIFF_DEBUG_VALUE")
	d.Skip = boolEnv("CALDIFF_DEBUG_SKIP")
	d.Ident = boolEnv("CALDIFF_DEBUG_IDENT")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Merge() bool {
	return d.Merge
}
func Value() bool {
	return d.Value
}
func Skip() bool {
	return d.Skip
}
func Ident() bool {
	return d.Ident
}
