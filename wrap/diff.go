package wrap

import (
	"fmt"

	"github.com/signadot/caldiff/changeset"
	"github.com/signadot/caldiff/libdiff"
)

// Diff returns the changes turning the component o into c, or nil if
// there are none. c and o must be the same entity.
func (c *Component) Diff(o *Component) (*changeset.ComponentSelection, error) {
	switch c.kind {
	case KindTimezone, KindObservance:
		return nil, nil
	}
	props, err := c.diffProperties(o)
	if err != nil {
		return nil, err
	}
	comps, err := c.diffComponents(o)
	if err != nil {
		return nil, err
	}
	if props == nil && comps == nil {
		return nil, nil
	}
	ref, err := o.Reference()
	if err != nil {
		return nil, err
	}
	return &changeset.ComponentSelection{
		Ref:        ref,
		Properties: props,
		Components: comps,
	}, nil
}

func (c *Component) diffProperties(o *Component) (*changeset.PropertiesSelection, error) {
	res := &changeset.PropertiesSelection{}
	st, err := libdiff.Merge[*Property](c.props, o.props, libdiff.MergeFuncs[*Property]{
		Added: func(n *Property) error {
			res.Add = append(res.Add, n.full())
			return nil
		},
		Removed: func(o *Property) error {
			vo, err := o.valueOnly()
			if err != nil {
				return err
			}
			res.Remove = append(res.Remove, vo)
			return nil
		},
		Changed: func(n, o *Property) error {
			sel, err := n.Diff(o)
			if err != nil {
				return err
			}
			if sel != nil {
				res.Select = append(res.Select, sel)
			}
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("properties of %s: %w", c, err)
	}
	c.ctx.Log().Debug("merged properties", "component", c.String(),
		"added", st.Added, "removed", st.Removed, "paired", st.Paired, "changed", len(res.Select))
	if res.Empty() {
		return nil, nil
	}
	return res, nil
}

func (c *Component) diffComponents(o *Component) (*changeset.ComponentsSelection, error) {
	res := &changeset.ComponentsSelection{}
	st, err := libdiff.Merge[*Component](c.comps, o.comps, libdiff.MergeFuncs[*Component]{
		Added: func(n *Component) error {
			res.Add = append(res.Add, n.Full())
			return nil
		},
		Removed: func(o *Component) error {
			ref, err := o.Reference()
			if err != nil {
				return err
			}
			res.Remove = append(res.Remove, ref)
			return nil
		},
		Changed: func(n, o *Component) error {
			sel, err := n.Diff(o)
			if err != nil {
				return err
			}
			if sel != nil {
				res.Select = append(res.Select, sel)
			}
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("components of %s: %w", c, err)
	}
	c.ctx.Log().Debug("merged components", "component", c.String(),
		"added", st.Added, "removed", st.Removed, "paired", st.Paired, "changed", len(res.Select))
	if res.Empty() {
		return nil, nil
	}
	return res, nil
}

// Diff compares two wrapped documents. The roots must be the same entity,
// which holds for any two VCALENDAR roots.
func Diff(n, o *Component) (*changeset.ComponentSelection, error) {
	if !n.SameEntity(o) {
		return nil, fmt.Errorf("cannot diff %s against %s", n, o)
	}
	return n.Diff(o)
}
