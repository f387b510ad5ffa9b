package changeset

import (
	"fmt"

	"github.com/fatih/color"
)

type ColorAttr int

const (
	AddColor ColorAttr = iota
	RemoveColor
	ChangeColor
	NameColor
	ValueColor
	ParamColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[ColorAttr]func(string, ...any) string
}

func NewColors() *Colors {
	return &Colors{
		Default: colorDefault,
		Map: map[ColorAttr]func(string, ...any) string{
			AddColor:    color.RGB(8, 196, 16).SprintfFunc(),
			RemoveColor: color.RGB(196, 48, 48).SprintfFunc(),
			ChangeColor: color.RGB(198, 198, 46).SprintfFunc(),
			NameColor:   color.CyanString,
			ValueColor:  color.RGB(196, 168, 128).SprintfFunc(),
			ParamColor:  color.RGB(128, 168, 196).SprintfFunc(),
		},
	}
}

func colorDefault(f string, args ...any) string {
	return fmt.Sprintf(f, args...)
}

func (c *Colors) Color(attr ColorAttr) func(string, ...any) string {
	if c == nil {
		return colorDefault
	}
	if f, ok := c.Map[attr]; ok {
		return f
	}
	return c.Default
}
