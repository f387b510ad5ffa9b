package wrap

import (
	"fmt"
	"strings"

	"github.com/emersion/go-ical"

	"github.com/signadot/caldiff/changeset"
	"github.com/signadot/caldiff/compare"
	"github.com/signadot/caldiff/libdiff"
	"github.com/signadot/caldiff/value"
)

// Property wraps one single valued property.
type Property struct {
	ctx    *compare.Context
	parent *Component
	prop   *ical.Prop
	mapped string
	params *Set[*Parameter]

	cmp value.Comparator
}

func newProperty(ctx *compare.Context, parent *Component, prop *ical.Prop) (*Property, error) {
	p := &Property{
		ctx:    ctx,
		parent: parent,
		prop:   prop,
		mapped: ctx.MappedName(compare.PropertyLevel, prop.Name),
	}
	var params []*Parameter
	for _, name := range value.ParamNames(prop.Params) {
		for _, v := range prop.Params[name] {
			skip, err := ctx.Skip(compare.ParameterLevel, name, prop.Name, v)
			if err != nil {
				return nil, err
			}
			if skip {
				continue
			}
			param := newParameter(ctx, p, name, v)
			if _, err := param.Comparator(); err != nil {
				return nil, err
			}
			params = append(params, param)
		}
	}
	p.params = newSet(params)
	if _, err := p.Comparator(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Property) Name() string             { return p.prop.Name }
func (p *Property) MappedName() string       { return p.mapped }
func (p *Property) Parent() *Component       { return p.parent }
func (p *Property) Prop() *ical.Prop         { return p.prop }
func (p *Property) Params() *Set[*Parameter] { return p.params }

func (p *Property) key() string {
	if p.mapped != "" {
		return p.mapped
	}
	return p.prop.Name
}

// Comparator returns the canonical value of p, computing it on first use.
func (p *Property) Comparator() (value.Comparator, error) {
	if p.cmp != nil {
		return p.cmp, nil
	}
	c, err := p.ctx.Registry().Canonical(p.prop)
	if err != nil {
		return nil, err
	}
	p.cmp = c
	return c, nil
}

func (p *Property) Compare(o *Property) int {
	if c := strings.Compare(p.key(), o.key()); c != 0 {
		return c
	}
	if c := p.cmp.Compare(o.cmp); c != 0 {
		return c
	}
	return p.params.Compare(o.params)
}

// SameEntity reports whether p and o have the same name. Same named
// properties are always diffed as a change, never as an add and a remove.
func (p *Property) SameEntity(o *Property) bool {
	return p.key() == o.key()
}

func (p *Property) String() string {
	return p.prop.Name + ":" + p.prop.Value
}

// Diff returns the changes turning o into p, or nil if there are none.
func (p *Property) Diff(o *Property) (*changeset.PropertySelection, error) {
	params, err := diffParams(p.params, o.params)
	if err != nil {
		return nil, err
	}
	valueChanged := !p.cmp.Equal(o.cmp)
	if !valueChanged && params == nil {
		return nil, nil
	}
	ref, err := o.valueOnly()
	if err != nil {
		return nil, err
	}
	res := &changeset.PropertySelection{Ref: ref, Parameters: params}
	if valueChanged {
		changed, err := p.valueOnly()
		if err != nil {
			return nil, err
		}
		res.Changed = changed
	}
	return res, nil
}

func (p *Property) valueOnly() (*changeset.Prop, error) {
	vo, err := p.ctx.Registry().ValueOnly(p.prop)
	if err != nil {
		return nil, err
	}
	return changeset.FromProp(vo), nil
}

// full returns p with its compared parameters.
func (p *Property) full() *changeset.Prop {
	res := &changeset.Prop{Name: p.prop.Name, Value: p.prop.Value}
	for _, param := range p.params.All() {
		if res.Params == nil {
			res.Params = map[string][]string{}
		}
		res.Params[param.name] = append(res.Params[param.name], param.value)
	}
	return res
}

func diffParams(news, olds *Set[*Parameter]) (*changeset.ParametersSelection, error) {
	res := &changeset.ParametersSelection{}
	_, err := libdiff.Merge[*Parameter](news, olds, libdiff.MergeFuncs[*Parameter]{
		Added: func(n *Parameter) error {
			res.Add = append(res.Add, n.ref())
			return nil
		},
		Removed: func(o *Parameter) error {
			res.Remove = append(res.Remove, o.ref())
			return nil
		},
		Changed: func(n, o *Parameter) error {
			if n.cmp.Equal(o.cmp) {
				return nil
			}
			res.Select = append(res.Select, &changeset.ParameterSelection{
				Ref:     o.ref(),
				Changed: n.ref(),
			})
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("parameters: %w", err)
	}
	if res.Empty() {
		return nil, nil
	}
	return res, nil
}
