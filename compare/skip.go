package compare

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/signadot/caldiff/debug"
)

type Level int

const (
	ComponentLevel Level = iota
	PropertyLevel
	ParameterLevel
)

func (l Level) String() string {
	s, ok := map[Level]string{
		ComponentLevel: "component",
		PropertyLevel:  "property",
		ParameterLevel: "parameter",
	}[l]
	if ok {
		return s
	}
	return "<unknown level>"
}

func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *Level) UnmarshalText(d []byte) error {
	ll, ok := map[string]Level{
		"component": ComponentLevel,
		"property":  PropertyLevel,
		"parameter": ParameterLevel,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized level %q", d)
	}
	*l = ll
	return nil
}

// SkipKey names a kind of node.
type SkipKey struct {
	Level Level
	Name  string
}

func (k SkipKey) canon() SkipKey {
	k.Name = strings.ToUpper(k.Name)
	return k
}

func SkipComponent(name string) SkipKey {
	return SkipKey{Level: ComponentLevel, Name: name}
}

func SkipProperty(name string) SkipKey {
	return SkipKey{Level: PropertyLevel, Name: name}
}

func SkipParameter(name string) SkipKey {
	return SkipKey{Level: ParameterLevel, Name: name}
}

// Node is what skip expressions see.
type Node struct {
	Level  string
	Name   string
	Parent string
	Value  string
}

type skipExpr struct {
	src string
	prg *vm.Program
}

func compileSkipExpr(src string) (*skipExpr, error) {
	prg, err := expr.Compile(src, expr.Env(Node{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("skip expression %q: %w", src, err)
	}
	return &skipExpr{src: src, prg: prg}, nil
}

func (se *skipExpr) eval(n *Node) (bool, error) {
	res, err := expr.Run(se.prg, n)
	if err != nil {
		return false, fmt.Errorf("skip expression %q: %w", se.src, err)
	}
	b, _ := res.(bool)
	if debug.Skip() && b {
		debug.Logf("skip %s %s (parent %s) by %q\n", n.Level, n.Name, n.Parent, se.src)
	}
	return b, nil
}
