package changeset

import (
	"maps"
	"slices"

	"github.com/emersion/go-ical"
)

func FromProp(p *ical.Prop) *Prop {
	res := &Prop{Name: p.Name, Value: p.Value}
	if len(p.Params) != 0 {
		res.Params = make(map[string][]string, len(p.Params))
		for k, vs := range p.Params {
			res.Params[k] = slices.Clone(vs)
		}
	}
	return res
}

func (p *Prop) ICal() *ical.Prop {
	res := &ical.Prop{Name: p.Name, Value: p.Value, Params: ical.Params{}}
	for k, vs := range p.Params {
		res.Params[k] = slices.Clone(vs)
	}
	return res
}

// FromComponent copies c with its properties in name order.
func FromComponent(c *ical.Component) *Component {
	res := &Component{Name: c.Name}
	for _, name := range slices.Sorted(maps.Keys(c.Props)) {
		for i := range c.Props[name] {
			res.Props = append(res.Props, FromProp(&c.Props[name][i]))
		}
	}
	for _, child := range c.Children {
		res.Components = append(res.Components, FromComponent(child))
	}
	return res
}

func (c *Component) ICal() *ical.Component {
	res := ical.NewComponent(c.Name)
	for _, p := range c.Props {
		res.Props.Add(p.ICal())
	}
	for _, child := range c.Components {
		res.Children = append(res.Children, child.ICal())
	}
	return res
}

// Get returns the first property of c named name.
func (c *Component) Get(name string) *Prop {
	for _, p := range c.Props {
		if p.Name == name {
			return p
		}
	}
	return nil
}
