package wrap

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/go-cmp/cmp"

	"github.com/signadot/caldiff/changeset"
	"github.com/signadot/caldiff/compare"
	"github.com/signadot/caldiff/tz"
)

func component(t *testing.T, lines ...string) *ical.Component {
	t.Helper()
	doc := strings.Join(append(append([]string{"BEGIN:VCALENDAR"}, lines...), "END:VCALENDAR", ""), "\r\n")
	cal, err := ical.NewDecoder(strings.NewReader(doc)).Decode()
	if err != nil {
		t.Fatal(err)
	}
	if len(cal.Children) != 1 {
		t.Fatalf("expected one component, got %d", len(cal.Children))
	}
	return cal.Children[0]
}

func wrapped(t *testing.T, ctx *compare.Context, lines ...string) *Component {
	t.Helper()
	c, err := Wrap(ctx, component(t, lines...))
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func testContext(t *testing.T) *compare.Context {
	t.Helper()
	ctx, err := compare.NewContext(compare.WithResolver(tz.Table(map[string]*time.Location{
		"Europe/Paris":     time.FixedZone("CET", 3600),
		"America/New_York": time.FixedZone("EST", -5*3600),
	})))
	if err != nil {
		t.Fatal(err)
	}
	return ctx
}

func TestKindOf(t *testing.T) {
	tests := map[string]Kind{
		"VCALENDAR":     KindContainer,
		"vevent":        KindRecurring,
		"VTODO":         KindRecurring,
		"VJOURNAL":      KindRecurring,
		"VFREEBUSY":     KindUIDOnly,
		"VALARM":        KindAlarm,
		"VTIMEZONE":     KindTimezone,
		"DAYLIGHT":      KindObservance,
		"X-VENDOR-COMP": KindOther,
	}
	for name, want := range tests {
		if got := KindOf(name); got != want {
			t.Errorf("%s: got %s want %s", name, got, want)
		}
	}
}

func TestSameEntity(t *testing.T) {
	ctx := testContext(t)
	tests := []struct {
		name string
		a, b []string
		same bool
	}{
		{
			"same uid",
			[]string{"BEGIN:VEVENT", "UID:1", "SUMMARY:a", "END:VEVENT"},
			[]string{"BEGIN:VEVENT", "UID:1", "SUMMARY:b", "END:VEVENT"},
			true,
		},
		{
			"different uid",
			[]string{"BEGIN:VEVENT", "UID:1", "END:VEVENT"},
			[]string{"BEGIN:VEVENT", "UID:2", "END:VEVENT"},
			false,
		},
		{
			"master and instance",
			[]string{"BEGIN:VEVENT", "UID:1", "END:VEVENT"},
			[]string{"BEGIN:VEVENT", "UID:1", "RECURRENCE-ID:20240101T100000Z", "END:VEVENT"},
			false,
		},
		{
			"instance across timezones",
			[]string{"BEGIN:VEVENT", "UID:1", "RECURRENCE-ID;TZID=Europe/Paris:20240101T110000", "END:VEVENT"},
			[]string{"BEGIN:VEVENT", "UID:1", "RECURRENCE-ID;TZID=America/New_York:20240101T050000", "END:VEVENT"},
			true,
		},
		{
			"unresolved timezone compares literally",
			[]string{"BEGIN:VEVENT", "UID:1", "RECURRENCE-ID;TZID=Nowhere:20240101T110000", "END:VEVENT"},
			[]string{"BEGIN:VEVENT", "UID:1", "RECURRENCE-ID:20240101T100000Z", "END:VEVENT"},
			false,
		},
		{
			"alarm action",
			[]string{"BEGIN:VALARM", "ACTION:DISPLAY", "TRIGGER:-PT5M", "END:VALARM"},
			[]string{"BEGIN:VALARM", "ACTION:display", "TRIGGER:-PT10M", "END:VALARM"},
			true,
		},
		{
			"timezones by tzid",
			[]string{"BEGIN:VTIMEZONE", "TZID:A", "BEGIN:STANDARD", "DTSTART:19701025T030000", "END:STANDARD", "END:VTIMEZONE"},
			[]string{"BEGIN:VTIMEZONE", "TZID:A", "END:VTIMEZONE"},
			true,
		},
		{
			"different timezones",
			[]string{"BEGIN:VTIMEZONE", "TZID:A", "END:VTIMEZONE"},
			[]string{"BEGIN:VTIMEZONE", "TZID:B", "END:VTIMEZONE"},
			false,
		},
		{
			"other by content",
			[]string{"BEGIN:X-THING", "X-A:1", "END:X-THING"},
			[]string{"BEGIN:X-THING", "X-A:1", "END:X-THING"},
			true,
		},
		{
			"other with different content",
			[]string{"BEGIN:X-THING", "X-A:1", "END:X-THING"},
			[]string{"BEGIN:X-THING", "X-A:2", "END:X-THING"},
			false,
		},
		{
			"different names",
			[]string{"BEGIN:VEVENT", "UID:1", "END:VEVENT"},
			[]string{"BEGIN:VTODO", "UID:1", "END:VTODO"},
			false,
		},
	}
	for _, tt := range tests {
		a, b := wrapped(t, ctx, tt.a...), wrapped(t, ctx, tt.b...)
		if got := a.SameEntity(b); got != tt.same {
			t.Errorf("%s: same=%t want %t", tt.name, got, tt.same)
		}
		if got := b.SameEntity(a); got != tt.same {
			t.Errorf("%s reversed: same=%t want %t", tt.name, got, tt.same)
		}
		if tt.same && a.Compare(b) != 0 && tt.name != "alarm action" {
			t.Errorf("%s: same entities compare %d", tt.name, a.Compare(b))
		}
	}
}

func TestComponentOrder(t *testing.T) {
	ctx := testContext(t)
	cal := component(t,
		"BEGIN:X-HOLDER",
		"BEGIN:VTODO", "UID:2", "END:VTODO",
		"BEGIN:VEVENT", "UID:2", "RECURRENCE-ID:20240102T100000Z", "END:VEVENT",
		"BEGIN:VEVENT", "UID:2", "END:VEVENT",
		"BEGIN:VEVENT", "UID:1", "END:VEVENT",
		"BEGIN:VEVENT", "UID:2", "RECURRENCE-ID;TZID=Europe/Paris:20240101T110000", "END:VEVENT",
		"BEGIN:VALARM", "ACTION:DISPLAY", "END:VALARM",
		"BEGIN:VALARM", "ACTION:AUDIO", "END:VALARM",
		"END:X-HOLDER",
	)
	w, err := Wrap(ctx, cal)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, c := range w.Components().All() {
		got = append(got, c.String())
	}
	want := []string{
		"VALARM[action=AUDIO]",
		"VALARM[action=DISPLAY]",
		"VEVENT[uid=1]",
		"VEVENT[uid=2]",
		"VEVENT[uid=2 recurrence-id=20240101T110000]",
		"VEVENT[uid=2 recurrence-id=20240102T100000Z]",
		"VTODO[uid=2]",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestSetDeduplicates(t *testing.T) {
	ctx := testContext(t)
	w := wrapped(t, ctx, "BEGIN:VEVENT", "UID:1", "CATEGORIES:a,b", "CATEGORIES:b", "END:VEVENT")
	var got []string
	for _, p := range w.Properties().All() {
		got = append(got, p.String())
	}
	want := []string{"CATEGORIES:a", "CATEGORIES:b", "UID:1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestReference(t *testing.T) {
	ctx := testContext(t)
	tests := []struct {
		lines []string
		want  *changeset.Component
	}{
		{
			[]string{"BEGIN:VEVENT", "UID:1", "SUMMARY:x", "RECURRENCE-ID;TZID=Europe/Paris;X-FOO=y:20240101T110000", "END:VEVENT"},
			&changeset.Component{Name: "VEVENT", Props: []*changeset.Prop{
				{Name: "UID", Value: "1"},
				{Name: "RECURRENCE-ID", Value: "20240101T110000", Params: map[string][]string{"TZID": {"Europe/Paris"}}},
			}},
		},
		{
			[]string{"BEGIN:VFREEBUSY", "UID:fb", "END:VFREEBUSY"},
			&changeset.Component{Name: "VFREEBUSY", Props: []*changeset.Prop{{Name: "UID", Value: "fb"}}},
		},
		{
			[]string{"BEGIN:VALARM", "ACTION:DISPLAY", "DESCRIPTION:x", "TRIGGER;VALUE=DATE-TIME:20240101T090000Z", "END:VALARM"},
			&changeset.Component{Name: "VALARM", Props: []*changeset.Prop{
				{Name: "ACTION", Value: "DISPLAY"},
				{Name: "TRIGGER", Value: "20240101T090000Z", Params: map[string][]string{"VALUE": {"DATE-TIME"}}},
			}},
		},
		{
			[]string{"BEGIN:VTIMEZONE", "TZID:Europe/Paris", "END:VTIMEZONE"},
			&changeset.Component{Name: "VTIMEZONE", Props: []*changeset.Prop{{Name: "TZID", Value: "Europe/Paris"}}},
		},
		{
			[]string{"BEGIN:X-THING", "X-B:2", "X-A:1", "END:X-THING"},
			&changeset.Component{Name: "X-THING", Props: []*changeset.Prop{
				{Name: "X-A", Value: "1"},
				{Name: "X-B", Value: "2"},
			}},
		},
	}
	for _, tt := range tests {
		got, err := wrapped(t, ctx, tt.lines...).Reference()
		if err != nil {
			t.Errorf("%s: %v", tt.lines[0], err)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("%s (-want +got):\n%s", tt.lines[0], diff)
		}
	}
}

func TestReferenceMissingIdentity(t *testing.T) {
	ctx := testContext(t)
	for _, lines := range [][]string{
		{"BEGIN:VEVENT", "SUMMARY:x", "END:VEVENT"},
		{"BEGIN:VTIMEZONE", "END:VTIMEZONE"},
	} {
		_, err := wrapped(t, ctx, lines...).Reference()
		if !errors.Is(err, ErrMissingIdentity) {
			t.Errorf("%s: got %v want ErrMissingIdentity", lines[0], err)
		}
	}
}

func TestDiffRootsMustMatch(t *testing.T) {
	ctx := testContext(t)
	a := wrapped(t, ctx, "BEGIN:VEVENT", "UID:1", "END:VEVENT")
	b := wrapped(t, ctx, "BEGIN:VEVENT", "UID:2", "END:VEVENT")
	if _, err := Diff(a, b); err == nil {
		t.Error("expected an error diffing different entities")
	}
}

func TestSkippedNodes(t *testing.T) {
	ctx, err := compare.NewContext(
		compare.WithSkip(compare.SkipComponent("VALARM"), compare.SkipParameter("X-FOO")),
	)
	if err != nil {
		t.Fatal(err)
	}
	w := wrapped(t, ctx,
		"BEGIN:VEVENT", "UID:1",
		"SUMMARY;X-FOO=bar;LANGUAGE=en:x",
		"BEGIN:VALARM", "ACTION:DISPLAY", "END:VALARM",
		"END:VEVENT")
	if n := w.Components().Len(); n != 0 {
		t.Errorf("skipped components kept: %d", n)
	}
	for _, p := range w.Properties().All() {
		for _, param := range p.Params().All() {
			if param.Name() == "X-FOO" {
				t.Errorf("skipped parameter kept on %s", p)
			}
		}
	}
}

func TestAlarmWithoutAction(t *testing.T) {
	ctx := testContext(t)
	c := component(t,
		"BEGIN:VEVENT", "UID:1",
		"BEGIN:VALARM", "TRIGGER:-PT5M", "END:VALARM",
		"BEGIN:VALARM", "TRIGGER:-PT5M", "END:VALARM",
		"END:VEVENT")
	_, err := Wrap(ctx, c)
	if !errors.Is(err, ErrMissingIdentity) {
		t.Errorf("got %v want ErrMissingIdentity", err)
	}
}

func TestRecurrenceIDOrderTransitive(t *testing.T) {
	ctx := testContext(t)
	rids := []string{
		"RECURRENCE-ID;TZID=Nowhere:20240101T090000",
		"RECURRENCE-ID:20240101T100000Z",
		"RECURRENCE-ID;TZID=Nowhere:20240101T110000",
		"RECURRENCE-ID;TZID=Europe/Paris:20240101T100000",
		"RECURRENCE-ID:20240101T093000Z",
	}
	var ws []*Component
	for _, rid := range rids {
		ws = append(ws, wrapped(t, ctx, "BEGIN:VEVENT", "UID:1", rid, "END:VEVENT"))
	}
	for _, a := range ws {
		for _, b := range ws {
			if got, rev := a.Compare(b), b.Compare(a); got != -rev {
				t.Errorf("%s vs %s: %d and %d", a, b, got, rev)
			}
			for _, c := range ws {
				if a.Compare(b) < 0 && b.Compare(c) < 0 && a.Compare(c) >= 0 {
					t.Errorf("order not transitive: %s < %s < %s", a, b, c)
				}
			}
		}
	}
}
