package debug

import (
	"bytes"
	"fmt"
	"os"

	"github.com/emersion/go-ical"
)

// Prop formats a property as a single content line.
type Prop struct{ *ical.Prop }

func (p Prop) String() string {
	if p.Prop == nil {
		return "<nil prop>"
	}
	buf := bytes.NewBuffer(nil)
	buf.WriteString(p.Name)
	for name, vs := range p.Params {
		for _, v := range vs {
			fmt.Fprintf(buf, ";%s=%s", name, v)
		}
	}
	buf.WriteByte(':')
	buf.WriteString(p.Value)
	return buf.String()
}

func Logf(msg string, args ...any) {
	for i := range args {
		switch x := args[i].(type) {
		case *ical.Prop:
			args[i] = Prop{x}.String()
		case *ical.Component:
			if x == nil {
				args[i] = "<nil component>"
				continue
			}
			args[i] = x.Name
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
