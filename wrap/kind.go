package wrap

import "strings"

// Kind classifies a component by its identity rule.
type Kind int

const (
	KindContainer Kind = iota
	KindRecurring
	KindUIDOnly
	KindAlarm
	KindTimezone
	KindObservance
	KindOther
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		KindContainer:  "container",
		KindRecurring:  "recurring",
		KindUIDOnly:    "uid-only",
		KindAlarm:      "alarm",
		KindTimezone:   "timezone",
		KindObservance: "observance",
		KindOther:      "other",
	}[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

func KindOf(name string) Kind {
	switch strings.ToUpper(name) {
	case "VCALENDAR":
		return KindContainer
	case "VEVENT", "VTODO", "VJOURNAL", "AVAILABLE":
		return KindRecurring
	case "VFREEBUSY", "VAVAILABILITY", "VPOLL":
		return KindUIDOnly
	case "VALARM":
		return KindAlarm
	case "VTIMEZONE":
		return KindTimezone
	case "STANDARD", "DAYLIGHT":
		return KindObservance
	}
	return KindOther
}
