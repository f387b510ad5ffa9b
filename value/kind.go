package value

import "fmt"

type Kind int

const (
	Extension Kind = iota
	Text
	TextList
	URI
	CalAddress
	Binary
	Boolean
	Integer
	Float
	Date
	DateTime
	DateTimeList
	Time
	Duration
	Trigger
	Period
	PeriodList
	Recur
	UTCOffset
	Geo
	RequestStatus
	Parameter
)

var kindNames = map[Kind]string{
	Extension:     "extension",
	Text:          "text",
	TextList:      "text-list",
	URI:           "uri",
	CalAddress:    "cal-address",
	Binary:        "binary",
	Boolean:       "boolean",
	Integer:       "integer",
	Float:         "float",
	Date:          "date",
	DateTime:      "date-time",
	DateTimeList:  "date-time-list",
	Time:          "time",
	Duration:      "duration",
	Trigger:       "trigger",
	Period:        "period",
	PeriodList:    "period-list",
	Recur:         "recur",
	UTCOffset:     "utc-offset",
	Geo:           "geo",
	RequestStatus: "request-status",
	Parameter:     "parameter",
}

func (k Kind) String() string {
	s, ok := kindNames[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	for kk, s := range kindNames {
		if s == string(d) {
			*k = kk
			return nil
		}
	}
	return fmt.Errorf("unrecognized kind %q", d)
}

func Kinds() []Kind {
	res := make([]Kind, 0, len(kindNames))
	for k := Extension; k <= Parameter; k++ {
		res = append(res, k)
	}
	return res
}

// Parent returns the kind k falls back to when no converter is registered
// for k itself. Text is the root and has no parent.
func (k Kind) Parent() (Kind, bool) {
	switch k {
	case Text:
		return Text, false
	case CalAddress:
		return URI, true
	case DateTimeList:
		return DateTime, true
	case Trigger:
		return Duration, true
	case PeriodList:
		return Period, true
	default:
		return Text, true
	}
}

// IsList reports whether values of kind k hold several comma separated
// elements which normalize into one leaf each.
func (k Kind) IsList() bool {
	switch k {
	case TextList, DateTimeList, PeriodList:
		return true
	}
	return false
}
