package value

import (
	"strings"

	"github.com/emersion/go-ical"
	"github.com/teambition/rrule-go"
)

// recurParts lists the sub-fields of a recurrence rule in canonical order.
var recurParts = []string{
	"FREQ",
	"COUNT",
	"UNTIL",
	"INTERVAL",
	"BYSECOND",
	"BYMINUTE",
	"BYHOUR",
	"BYDAY",
	"BYMONTHDAY",
	"BYYEARDAY",
	"BYWEEKNO",
	"BYMONTH",
	"BYSETPOS",
	"WKST",
}

// canonicalRecur decomposes a recurrence rule into one pair per sub-field
// present in the rule. Absent sub-fields are omitted, so INTERVAL=1 is not
// equal to a rule without INTERVAL.
func canonicalRecur(p *ical.Prop) (Comparator, error) {
	opt, err := rrule.StrToROption(p.Value)
	if err != nil {
		return nil, badValue(p, err.Error())
	}
	parts := map[string]string{}
	for _, kv := range strings.Split(p.Value, ";") {
		if kv == "" {
			continue
		}
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, badValue(p, "rule part without '='")
		}
		parts[strings.ToUpper(k)] = strings.ToUpper(v)
	}
	var res Comparator
	for _, name := range recurParts {
		v, ok := parts[name]
		if !ok {
			continue
		}
		if name == "UNTIL" && len(v) > len("20060102") && !opt.Until.IsZero() {
			v = opt.Until.UTC().Format("20060102T150405Z")
		}
		res = res.Add(strings.ToLower(name), v)
	}
	return res, nil
}
