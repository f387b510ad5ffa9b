package wrap

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/emersion/go-ical"

	"github.com/signadot/caldiff/compare"
	"github.com/signadot/caldiff/debug"
)

// Component wraps a component together with its properties and
// sub-components.
type Component struct {
	ctx    *compare.Context
	parent *Component
	comp   *ical.Component
	kind   Kind
	mapped string
	props  *Set[*Property]
	comps  *Set[*Component]

	id identity
}

// Calendar wraps the VCALENDAR root of cal.
func Calendar(ctx *compare.Context, cal *ical.Calendar) (*Component, error) {
	if cal == nil || cal.Component == nil {
		return nil, fmt.Errorf("nil calendar")
	}
	return Wrap(ctx, cal.Component)
}

// Wrap wraps c as a root component.
func Wrap(ctx *compare.Context, c *ical.Component) (*Component, error) {
	return newComponent(ctx, nil, c)
}

func newComponent(ctx *compare.Context, parent *Component, c *ical.Component) (*Component, error) {
	w := &Component{
		ctx:    ctx,
		parent: parent,
		comp:   c,
		kind:   KindOf(c.Name),
		mapped: ctx.MappedName(compare.ComponentLevel, c.Name),
	}
	w.id = newIdentity(ctx, w.kind, c)
	if w.kind == KindAlarm && w.id.action == "" {
		return nil, fmt.Errorf("%w: %s without ACTION", ErrMissingIdentity, c.Name)
	}

	var props []*Property
	for _, name := range slices.Sorted(maps.Keys(c.Props)) {
		for i := range c.Props[name] {
			prop := &c.Props[name][i]
			skip, err := ctx.Skip(compare.PropertyLevel, prop.Name, c.Name, prop.Value)
			if err != nil {
				return nil, err
			}
			if skip {
				if debug.Skip() {
					debug.Logf("skip %s in %s\n", prop, c.Name)
				}
				continue
			}
			elems, err := ctx.Registry().Normalize(prop)
			if err != nil {
				return nil, err
			}
			for _, elem := range elems {
				p, err := newProperty(ctx, w, elem)
				if err != nil {
					return nil, err
				}
				props = append(props, p)
			}
		}
	}
	w.props = newSet(props)

	var comps []*Component
	for _, child := range c.Children {
		skip, err := ctx.Skip(compare.ComponentLevel, child.Name, c.Name, "")
		if err != nil {
			return nil, err
		}
		if skip {
			if debug.Skip() {
				debug.Logf("skip %s in %s\n", child, c.Name)
			}
			continue
		}
		cw, err := newComponent(ctx, w, child)
		if err != nil {
			return nil, err
		}
		comps = append(comps, cw)
	}
	w.comps = newSet(comps)
	return w, nil
}

func (c *Component) Name() string                { return c.comp.Name }
func (c *Component) MappedName() string          { return c.mapped }
func (c *Component) Kind() Kind                  { return c.kind }
func (c *Component) Parent() *Component          { return c.parent }
func (c *Component) Component() *ical.Component  { return c.comp }
func (c *Component) Properties() *Set[*Property] { return c.props }
func (c *Component) Components() *Set[*Component] {
	return c.comps
}

func (c *Component) key() string {
	if c.mapped != "" {
		return c.mapped
	}
	return c.comp.Name
}

// Compare orders sibling components by name, kind, the identity of their
// kind and finally their content.
func (c *Component) Compare(o *Component) int {
	if r := strings.Compare(c.key(), o.key()); r != 0 {
		return r
	}
	if r := cmp.Compare(c.kind, o.kind); r != 0 {
		return r
	}
	switch c.kind {
	case KindContainer:
		return 0
	case KindRecurring:
		if r := strings.Compare(c.id.uid, o.id.uid); r != 0 {
			return r
		}
		return c.id.compareRecurrenceID(&o.id)
	case KindUIDOnly:
		return strings.Compare(c.id.uid, o.id.uid)
	case KindTimezone:
		return strings.Compare(c.id.tzid, o.id.tzid)
	case KindAlarm:
		if r := strings.Compare(c.id.action, o.id.action); r != 0 {
			return r
		}
	case KindObservance:
		if r := strings.Compare(c.id.dtstart, o.id.dtstart); r != 0 {
			return r
		}
	}
	if r := c.props.Compare(o.props); r != 0 {
		return r
	}
	return c.comps.Compare(o.comps)
}

func (c *Component) SameEntity(o *Component) bool {
	if c.key() != o.key() || c.kind != o.kind {
		return false
	}
	var same bool
	switch c.kind {
	case KindContainer, KindObservance:
		same = true
	case KindTimezone:
		same = c.id.tzid == o.id.tzid
	case KindRecurring:
		same = c.id.uid == o.id.uid && c.id.compareRecurrenceID(&o.id) == 0
	case KindUIDOnly:
		same = c.id.uid == o.id.uid
	case KindAlarm:
		same = c.id.action != "" && c.id.action == o.id.action
	default:
		same = c.Compare(o) == 0
	}
	if debug.Ident() {
		debug.Logf("same entity %s %s: %t\n", c, o, same)
	}
	return same
}

func (c *Component) String() string {
	switch c.kind {
	case KindRecurring:
		if c.id.hasRID {
			return fmt.Sprintf("%s[uid=%s recurrence-id=%s]", c.comp.Name, c.id.uid, c.id.rid.Value)
		}
		return fmt.Sprintf("%s[uid=%s]", c.comp.Name, c.id.uid)
	case KindUIDOnly:
		return fmt.Sprintf("%s[uid=%s]", c.comp.Name, c.id.uid)
	case KindAlarm:
		return fmt.Sprintf("%s[action=%s]", c.comp.Name, c.id.action)
	case KindTimezone:
		return fmt.Sprintf("%s[tzid=%s]", c.comp.Name, c.id.tzid)
	}
	return c.comp.Name
}
