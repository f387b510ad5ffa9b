package value

import (
	"cmp"
	"strings"
)

// Pair is one tagged element of a canonical value.
type Pair struct {
	Tag   string
	Value string
}

// Comparator is the canonical comparable form of a leaf value.
type Comparator []Pair

func (c Comparator) Add(tag, v string) Comparator {
	return append(c, Pair{Tag: tag, Value: v})
}

// Compare returns an integer comparing two comparators pair by pair, tag
// before value; a comparator which is a prefix of the other sorts first.
func (c Comparator) Compare(o Comparator) int {
	n := min(len(c), len(o))
	for i := 0; i < n; i++ {
		if r := strings.Compare(c[i].Tag, o[i].Tag); r != 0 {
			return r
		}
		if r := strings.Compare(c[i].Value, o[i].Value); r != 0 {
			return r
		}
	}
	return cmp.Compare(len(c), len(o))
}

func (c Comparator) Equal(o Comparator) bool {
	if len(c) != len(o) {
		return false
	}
	for i := range c {
		if c[i] != o[i] {
			return false
		}
	}
	return true
}

func (c Comparator) String() string {
	buf := &strings.Builder{}
	for i, p := range c {
		if i != 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(p.Tag)
		buf.WriteByte('=')
		buf.WriteString(p.Value)
	}
	return buf.String()
}
