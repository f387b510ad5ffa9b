package wrap

import (
	"strings"

	"github.com/signadot/caldiff/changeset"
	"github.com/signadot/caldiff/compare"
	"github.com/signadot/caldiff/value"
)

// Parameter wraps one value of a property parameter.
type Parameter struct {
	ctx    *compare.Context
	parent *Property
	name   string
	mapped string
	value  string

	cmp value.Comparator
}

func newParameter(ctx *compare.Context, parent *Property, name, v string) *Parameter {
	return &Parameter{
		ctx:    ctx,
		parent: parent,
		name:   name,
		mapped: ctx.MappedName(compare.ParameterLevel, name),
		value:  v,
	}
}

func (p *Parameter) Name() string       { return p.name }
func (p *Parameter) MappedName() string { return p.mapped }
func (p *Parameter) Value() string      { return p.value }
func (p *Parameter) Parent() *Property  { return p.parent }

func (p *Parameter) key() string {
	if p.mapped != "" {
		return p.mapped
	}
	return p.name
}

// Comparator returns the canonical value of p, computing it on first use.
func (p *Parameter) Comparator() (value.Comparator, error) {
	if p.cmp != nil {
		return p.cmp, nil
	}
	c, err := p.ctx.Registry().CanonicalParam(p.name, p.value)
	if err != nil {
		return nil, err
	}
	p.cmp = c
	return c, nil
}

func (p *Parameter) Compare(o *Parameter) int {
	if c := strings.Compare(p.key(), o.key()); c != 0 {
		return c
	}
	return p.cmp.Compare(o.cmp)
}

func (p *Parameter) SameEntity(o *Parameter) bool {
	return p.key() == o.key()
}

func (p *Parameter) String() string {
	return p.name + "=" + p.value
}

func (p *Parameter) ref() *changeset.Param {
	return &changeset.Param{Name: p.name, Value: p.value}
}
