package wrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"github.com/signadot/caldiff/changeset"
	"github.com/signadot/caldiff/compare"
	"github.com/signadot/caldiff/debug"
)

// identity holds the fields the identity rule of a component kind looks at.
type identity struct {
	uid     string
	hasUID  bool
	action  string
	tzid    string
	dtstart string

	rid     *ical.Prop
	hasRID  bool
	ridTime time.Time
	ridUTC  bool
}

func newIdentity(ctx *compare.Context, kind Kind, c *ical.Component) identity {
	var id identity
	switch kind {
	case KindRecurring, KindUIDOnly:
		if p := c.Props.Get("UID"); p != nil {
			id.uid, id.hasUID = p.Value, true
		}
		if kind == KindUIDOnly {
			break
		}
		if p := c.Props.Get("RECURRENCE-ID"); p != nil {
			id.rid, id.hasRID = p, true
			id.ridTime, id.ridUTC = instant(ctx, p)
		}
	case KindAlarm:
		if p := c.Props.Get("ACTION"); p != nil {
			id.action = strings.ToUpper(p.Value)
		}
	case KindTimezone:
		if p := c.Props.Get("TZID"); p != nil {
			id.tzid = p.Value
		}
	case KindObservance:
		if p := c.Props.Get("DTSTART"); p != nil {
			id.dtstart = p.Value
		}
	}
	return id
}

// instant returns the UTC instant of a DATE or DATE-TIME property. Floating
// times and dates are read as UTC, and TZIDs are looked up with the
// context's resolver. ok is false if the value could not be placed in time.
func instant(ctx *compare.Context, p *ical.Prop) (time.Time, bool) {
	v := strings.ToUpper(p.Value)
	loc := time.UTC
	if tzid := p.Params.Get("TZID"); tzid != "" && !strings.HasSuffix(v, "Z") {
		loc = ctx.Resolve(tzid)
		if loc == nil {
			if debug.Ident() {
				debug.Logf("unresolved tzid %q\n", tzid)
			}
			return time.Time{}, false
		}
	}
	for _, layout := range []string{"20060102T150405Z", "20060102T150405", "20060102"} {
		t, err := time.ParseInLocation(layout, v, loc)
		if err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// compareRecurrenceID orders components without a RECURRENCE-ID first,
// then those whose RECURRENCE-ID resolves to an instant, by instant, and
// last the unresolved ones by literal value.
func (id *identity) compareRecurrenceID(o *identity) int {
	switch {
	case !id.hasRID && !o.hasRID:
		return 0
	case !id.hasRID:
		return -1
	case !o.hasRID:
		return 1
	}
	switch {
	case id.ridUTC && o.ridUTC:
		return id.ridTime.Compare(o.ridTime)
	case id.ridUTC:
		return -1
	case o.ridUTC:
		return 1
	}
	return strings.Compare(id.rid.Value, o.rid.Value)
}

// Reference returns the fragment addressing c in the document it belongs
// to.
func (c *Component) Reference() (*changeset.Component, error) {
	res := &changeset.Component{Name: c.comp.Name}
	switch c.kind {
	case KindContainer:
	case KindRecurring, KindUIDOnly:
		if !c.id.hasUID {
			return nil, fmt.Errorf("%w: %s without UID", ErrMissingIdentity, c.comp.Name)
		}
		res.Props = append(res.Props, &changeset.Prop{Name: "UID", Value: c.id.uid})
		if c.id.hasRID {
			rid := &changeset.Prop{Name: "RECURRENCE-ID", Value: c.id.rid.Value}
			for _, name := range []string{"TZID", "VALUE", "RANGE"} {
				if v := c.id.rid.Params.Get(name); v != "" {
					if rid.Params == nil {
						rid.Params = map[string][]string{}
					}
					rid.Params[name] = []string{v}
				}
			}
			res.Props = append(res.Props, rid)
		}
	case KindAlarm:
		if c.id.action == "" {
			return nil, fmt.Errorf("%w: %s without ACTION", ErrMissingIdentity, c.comp.Name)
		}
		res.Props = append(res.Props, &changeset.Prop{Name: "ACTION", Value: c.id.action})
		if p := c.comp.Props.Get("TRIGGER"); p != nil {
			vo, err := c.ctx.Registry().ValueOnly(p)
			if err != nil {
				return nil, err
			}
			res.Props = append(res.Props, changeset.FromProp(vo))
		}
	case KindTimezone:
		if c.id.tzid == "" {
			return nil, fmt.Errorf("%w: %s without TZID", ErrMissingIdentity, c.comp.Name)
		}
		res.Props = append(res.Props, &changeset.Prop{Name: "TZID", Value: c.id.tzid})
	case KindObservance:
		if c.id.dtstart == "" {
			return nil, fmt.Errorf("%w: %s without DTSTART", ErrMissingIdentity, c.comp.Name)
		}
		res.Props = append(res.Props, &changeset.Prop{Name: "DTSTART", Value: c.id.dtstart})
	default:
		return c.Full(), nil
	}
	return res, nil
}

// Full returns c with all of its compared properties and sub-components.
func (c *Component) Full() *changeset.Component {
	res := &changeset.Component{Name: c.comp.Name}
	for _, p := range c.props.All() {
		res.Props = append(res.Props, p.full())
	}
	for _, child := range c.comps.All() {
		res.Components = append(res.Components, child.Full())
	}
	return res
}
