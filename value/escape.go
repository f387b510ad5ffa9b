package value

import (
	"fmt"
	"strings"

	"github.com/emersion/go-ical"
)

// splitEscaped splits s on sep, ignoring separators escaped with a
// backslash. Escapes are kept in the returned elements.
func splitEscaped(s string, sep byte) []string {
	var (
		res []string
		cur strings.Builder
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s):
			cur.WriteByte(c)
			cur.WriteByte(s[i+1])
			i++
		case c == sep:
			res = append(res, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	return append(res, cur.String())
}

func unescapeText(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n', 'N':
			b.WriteByte('\n')
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func badValue(p *ical.Prop, msg string) error {
	return fmt.Errorf("%w: %s %q: %s", ErrBadValue, p.Name, p.Value, msg)
}
