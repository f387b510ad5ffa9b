package changeset

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type renderConfig struct {
	colors *Colors
	inline bool
	indent string
}

type RenderOption func(*renderConfig)

// RenderColors colors the output; nil colors disable coloring.
func RenderColors(c *Colors) RenderOption {
	return func(cfg *renderConfig) {
		cfg.colors = c
	}
}

// RenderInline shows changed values as character level edits of the old
// value.
func RenderInline(v bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.inline = v
	}
}

func RenderIndent(s string) RenderOption {
	return func(cfg *renderConfig) {
		cfg.indent = s
	}
}

type renderer struct {
	renderConfig
	w   io.Writer
	err error
}

// Render writes a line oriented view of sel: '+' marks added, '-' removed
// and '~' changed nodes.
func Render(w io.Writer, sel *ComponentSelection, opts ...RenderOption) error {
	r := &renderer{w: w, renderConfig: renderConfig{indent: "  "}}
	for _, opt := range opts {
		opt(&r.renderConfig)
	}
	if sel == nil {
		return nil
	}
	r.selection(0, sel)
	return r.err
}

func (r *renderer) printf(depth int, f string, args ...any) {
	if r.err != nil {
		return
	}
	args = append([]any{strings.Repeat(r.indent, depth)}, args...)
	_, r.err = fmt.Fprintf(r.w, "%s"+f+"\n", args...)
}

func (r *renderer) paint(attr ColorAttr, s string) string {
	return r.colors.Color(attr)("%s", s)
}

func (r *renderer) mark(attr ColorAttr) string {
	switch attr {
	case AddColor:
		return r.paint(attr, "+")
	case RemoveColor:
		return r.paint(attr, "-")
	default:
		return r.paint(attr, "~")
	}
}

func (r *renderer) selection(depth int, sel *ComponentSelection) {
	r.printf(depth, "%s %s", r.mark(ChangeColor), r.compRef(sel.Ref))
	if ps := sel.Properties; ps != nil {
		for _, p := range ps.Add {
			r.printf(depth+1, "%s %s", r.mark(AddColor), r.prop(p))
		}
		for _, p := range ps.Remove {
			r.printf(depth+1, "%s %s", r.mark(RemoveColor), r.prop(p))
		}
		for _, ps := range ps.Select {
			r.propSelection(depth+1, ps)
		}
	}
	if cs := sel.Components; cs != nil {
		for _, c := range cs.Add {
			r.printf(depth+1, "%s %s", r.mark(AddColor), r.paint(NameColor, c.Name))
			r.component(depth+2, c)
		}
		for _, c := range cs.Remove {
			r.printf(depth+1, "%s %s", r.mark(RemoveColor), r.compRef(c))
		}
		for _, s := range cs.Select {
			r.selection(depth+1, s)
		}
	}
}

func (r *renderer) component(depth int, c *Component) {
	for _, p := range c.Props {
		r.printf(depth, "%s", r.prop(p))
	}
	for _, child := range c.Components {
		r.printf(depth, "%s", r.paint(NameColor, child.Name))
		r.component(depth+1, child)
	}
}

func (r *renderer) propSelection(depth int, ps *PropertySelection) {
	switch {
	case ps.Changed == nil:
		r.printf(depth, "%s %s", r.mark(ChangeColor), r.prop(ps.Ref))
	case r.inline:
		r.printf(depth, "%s %s: %s", r.mark(ChangeColor),
			r.paint(NameColor, ps.Ref.Name), r.inlineDiff(ps.Ref.Value, ps.Changed.Value))
	default:
		r.printf(depth, "%s %s: %s -> %s", r.mark(ChangeColor),
			r.paint(NameColor, ps.Ref.Name),
			r.paint(ValueColor, ps.Ref.Value),
			r.paint(ValueColor, ps.Changed.Value))
	}
	pa := ps.Parameters
	if pa == nil {
		return
	}
	for _, p := range pa.Add {
		r.printf(depth+1, "%s %s", r.mark(AddColor), r.param(p))
	}
	for _, p := range pa.Remove {
		r.printf(depth+1, "%s %s", r.mark(RemoveColor), r.param(p))
	}
	for _, s := range pa.Select {
		r.printf(depth+1, "%s %s -> %s", r.mark(ChangeColor), r.param(s.Ref), r.param(s.Changed))
	}
}

func (r *renderer) inlineDiff(from, to string) string {
	dmp := diffpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(from, to, false))
	buf := &strings.Builder{}
	for _, d := range diffs {
		switch d.Type {
		case diffpatch.DiffEqual:
			buf.WriteString(r.paint(ValueColor, d.Text))
		case diffpatch.DiffDelete:
			buf.WriteString(r.paint(RemoveColor, "[-"+d.Text+"-]"))
		case diffpatch.DiffInsert:
			buf.WriteString(r.paint(AddColor, "{+"+d.Text+"+}"))
		}
	}
	return buf.String()
}

func (r *renderer) compRef(c *Component) string {
	if c == nil {
		return "<nil>"
	}
	buf := &strings.Builder{}
	buf.WriteString(r.paint(NameColor, c.Name))
	for _, p := range c.Props {
		fmt.Fprintf(buf, " %s=%s", strings.ToLower(p.Name), r.paint(ValueColor, p.Value))
	}
	return buf.String()
}

func (r *renderer) prop(p *Prop) string {
	buf := &strings.Builder{}
	buf.WriteString(r.paint(NameColor, p.Name))
	for _, k := range slices.Sorted(maps.Keys(p.Params)) {
		buf.WriteString(r.colors.Color(ParamColor)(";%s=%s", k, strings.Join(p.Params[k], ",")))
	}
	buf.WriteString(": ")
	buf.WriteString(r.paint(ValueColor, p.Value))
	return buf.String()
}

func (r *renderer) param(p *Param) string {
	return r.colors.Color(ParamColor)("%s=%s", p.Name, p.Value)
}
