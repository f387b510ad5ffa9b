package value

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/emersion/go-ical"
)

var defaultPropKinds = map[string]Kind{
	"CATEGORIES":     TextList,
	"RESOURCES":      TextList,
	"FREEBUSY":       PeriodList,
	"EXDATE":         DateTimeList,
	"RDATE":          DateTimeList,
	"RRULE":          Recur,
	"EXRULE":         Recur,
	"GEO":            Geo,
	"REQUEST-STATUS": RequestStatus,
	"TRIGGER":        Trigger,
	"ATTENDEE":       CalAddress,
	"ORGANIZER":      CalAddress,
}

var defaultConverters = map[Kind]Converter{
	Extension:     Funcs{CanonicalFunc: literal("x")},
	Text:          Funcs{CanonicalFunc: canonicalText},
	TextList:      listConverter{elem: canonicalText},
	URI:           Funcs{CanonicalFunc: literal("uri")},
	CalAddress:    Funcs{CanonicalFunc: canonicalCalAddress},
	Binary:        Funcs{CanonicalFunc: literal("binary")},
	Boolean:       Funcs{CanonicalFunc: upper("boolean")},
	Integer:       Funcs{CanonicalFunc: canonicalInteger},
	Float:         Funcs{CanonicalFunc: canonicalFloat},
	Date:          Funcs{CanonicalFunc: upper("date")},
	DateTime:      Funcs{CanonicalFunc: canonicalDateTime},
	DateTimeList:  listConverter{elem: canonicalDateTime},
	Time:          Funcs{CanonicalFunc: upper("time")},
	Duration:      Funcs{CanonicalFunc: canonicalDuration},
	Trigger:       Funcs{CanonicalFunc: canonicalTrigger},
	Period:        Funcs{CanonicalFunc: canonicalPeriod},
	PeriodList:    listConverter{elem: canonicalPeriod},
	Recur:         Funcs{CanonicalFunc: canonicalRecur},
	UTCOffset:     Funcs{CanonicalFunc: canonicalUTCOffset},
	Geo:           Funcs{CanonicalFunc: canonicalGeo},
	RequestStatus: Funcs{CanonicalFunc: canonicalRequestStatus},
	Parameter:     Funcs{CanonicalFunc: literal("param")},
}

func valueOnly(p *ical.Prop) *ical.Prop {
	res := &ical.Prop{Name: p.Name, Params: ical.Params{}, Value: p.Value}
	// VALUE selects the value type, so the value is not meaningful without it.
	if vt := p.Params.Get("VALUE"); vt != "" {
		res.Params["VALUE"] = []string{vt}
	}
	return res
}

func literal(tag string) func(*ical.Prop) (Comparator, error) {
	return func(p *ical.Prop) (Comparator, error) {
		return Comparator{{Tag: tag, Value: p.Value}}, nil
	}
}

func upper(tag string) func(*ical.Prop) (Comparator, error) {
	return func(p *ical.Prop) (Comparator, error) {
		return Comparator{{Tag: tag, Value: strings.ToUpper(p.Value)}}, nil
	}
}

// canonicalText unescapes the whole value. Prop.Text would stop at the
// first unescaped comma.
func canonicalText(p *ical.Prop) (Comparator, error) {
	return Comparator{{Tag: "text", Value: unescapeText(p.Value)}}, nil
}

func canonicalCalAddress(p *ical.Prop) (Comparator, error) {
	v := p.Value
	if scheme, rest, ok := strings.Cut(v, ":"); ok {
		v = strings.ToLower(scheme) + ":" + rest
	}
	return Comparator{{Tag: "cal-address", Value: v}}, nil
}

func canonicalInteger(p *ical.Prop) (Comparator, error) {
	i, err := p.Int()
	if err != nil {
		return Comparator{{Tag: "integer", Value: p.Value}}, nil
	}
	return Comparator{{Tag: "integer", Value: strconv.Itoa(i)}}, nil
}

func canonicalFloat(p *ical.Prop) (Comparator, error) {
	return Comparator{{Tag: "float", Value: formatFloat(p.Value)}}, nil
}

func formatFloat(v string) string {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return v
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func canonicalDateTime(p *ical.Prop) (Comparator, error) {
	v := strings.ToUpper(p.Value)
	if len(v) == len("20060102") {
		return Comparator{{Tag: "date", Value: v}}, nil
	}
	return Comparator{{Tag: "date-time", Value: v}}, nil
}

func canonicalDuration(p *ical.Prop) (Comparator, error) {
	return Comparator{{Tag: "duration", Value: durationString(p)}}, nil
}

func durationString(p *ical.Prop) string {
	d, err := p.Duration()
	if err != nil {
		return strings.ToUpper(p.Value)
	}
	return d.String()
}

func canonicalTrigger(p *ical.Prop) (Comparator, error) {
	if strings.EqualFold(p.Params.Get("VALUE"), "DATE-TIME") {
		return canonicalDateTime(p)
	}
	return canonicalDuration(p)
}

func canonicalPeriod(p *ical.Prop) (Comparator, error) {
	start, end, ok := strings.Cut(strings.ToUpper(p.Value), "/")
	if !ok {
		return nil, badValue(p, "period without '/'")
	}
	res := Comparator{{Tag: "start", Value: start}}
	if strings.HasPrefix(end, "P") || strings.HasPrefix(end, "+P") || strings.HasPrefix(end, "-P") {
		dp := &ical.Prop{Name: "DURATION", Params: ical.Params{}, Value: end}
		return res.Add("duration", durationString(dp)), nil
	}
	return res.Add("end", end), nil
}

func canonicalUTCOffset(p *ical.Prop) (Comparator, error) {
	v := strings.TrimSpace(p.Value)
	if len(v) != 5 && len(v) != 7 || (v[0] != '+' && v[0] != '-') {
		return nil, badValue(p, "utc offset must be [+-]HHMM[SS]")
	}
	if len(v) == 5 {
		v += "00"
	}
	return Comparator{{Tag: "utc-offset", Value: v}}, nil
}

func canonicalGeo(p *ical.Prop) (Comparator, error) {
	lat, lon, ok := strings.Cut(p.Value, ";")
	if !ok {
		return nil, badValue(p, "geo without ';'")
	}
	return Comparator{
		{Tag: "latitude", Value: formatFloat(lat)},
		{Tag: "longitude", Value: formatFloat(lon)},
	}, nil
}

func canonicalRequestStatus(p *ical.Prop) (Comparator, error) {
	parts := splitEscaped(p.Value, ';')
	res := Comparator{{Tag: "code", Value: parts[0]}}
	if len(parts) > 1 {
		res = res.Add("description", unescapeText(parts[1]))
	}
	if len(parts) > 2 {
		res = res.Add("extdata", unescapeText(strings.Join(parts[2:], ";")))
	}
	return res, nil
}

// listConverter handles comma separated multi-valued leaves.
type listConverter struct {
	elem func(*ical.Prop) (Comparator, error)
}

func (l listConverter) Canonical(p *ical.Prop) (Comparator, error) {
	var res Comparator
	for _, e := range l.split(p) {
		c, err := l.elem(e)
		if err != nil {
			return nil, err
		}
		res = append(res, c...)
	}
	return res, nil
}

func (l listConverter) ValueOnly(p *ical.Prop) *ical.Prop {
	return valueOnly(p)
}

func (l listConverter) Normalize(p *ical.Prop) ([]*ical.Prop, error) {
	return l.split(p), nil
}

func (l listConverter) split(p *ical.Prop) []*ical.Prop {
	elems := splitEscaped(p.Value, ',')
	if len(elems) == 1 {
		return []*ical.Prop{p}
	}
	res := make([]*ical.Prop, 0, len(elems))
	for _, e := range elems {
		res = append(res, &ical.Prop{
			Name:   p.Name,
			Params: cloneParams(p.Params),
			Value:  e,
		})
	}
	return res
}

// Join reassembles normalized leaves of a multi-valued property into one.
// The parameters of the first leaf are kept.
func Join(ps []*ical.Prop) *ical.Prop {
	if len(ps) == 0 {
		return nil
	}
	vals := make([]string, len(ps))
	for i, p := range ps {
		vals[i] = p.Value
	}
	return &ical.Prop{
		Name:   ps[0].Name,
		Params: cloneParams(ps[0].Params),
		Value:  strings.Join(vals, ","),
	}
}

func cloneParams(ps ical.Params) ical.Params {
	res := make(ical.Params, len(ps))
	for k, vs := range ps {
		res[k] = slices.Clone(vs)
	}
	return res
}

// ParamNames returns the parameter names of ps in sorted order.
func ParamNames(ps ical.Params) []string {
	return slices.Sorted(maps.Keys(ps))
}
