package compare

import (
	"testing"
	"time"
)

func TestSkipKeys(t *testing.T) {
	ctx, err := NewContext(WithDefaultSkips(), WithSkip(SkipParameter("x-foo"), SkipComponent("VALARM")))
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		level Level
		name  string
		skip  bool
	}{
		{PropertyLevel, "DTSTAMP", true},
		{PropertyLevel, "dtstamp", true},
		{PropertyLevel, "LAST-MODIFIED", true},
		{PropertyLevel, "PRODID", true},
		{PropertyLevel, "SUMMARY", false},
		{ParameterLevel, "X-FOO", true},
		{PropertyLevel, "X-FOO", false},
		{ComponentLevel, "valarm", true},
		{ComponentLevel, "VEVENT", false},
	}
	for _, tt := range tests {
		got, err := ctx.Skip(tt.level, tt.name, "VEVENT", "")
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.skip {
			t.Errorf("%s %s: skip=%t want %t", tt.level, tt.name, got, tt.skip)
		}
	}
}

func TestSkipExpr(t *testing.T) {
	ctx, err := NewContext(
		WithSkipExpr(`Level == "property" && Name startsWith "X-APPLE-"`),
		WithSkipExpr(`Level == "parameter" && Parent == "ATTENDEE" && Name == "SCHEDULE-STATUS"`),
		WithSkipExpr(`Level == "component" && Name == "VALARM" && Parent == "VTODO"`),
	)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		level        Level
		name, parent string
		skip         bool
	}{
		{PropertyLevel, "x-apple-structured-location", "VEVENT", true},
		{PropertyLevel, "X-MOZ-GENERATION", "VEVENT", false},
		{ParameterLevel, "SCHEDULE-STATUS", "attendee", true},
		{ParameterLevel, "SCHEDULE-STATUS", "ORGANIZER", false},
		{ComponentLevel, "VALARM", "VTODO", true},
		{ComponentLevel, "VALARM", "VEVENT", false},
	}
	for _, tt := range tests {
		got, err := ctx.Skip(tt.level, tt.name, tt.parent, "v")
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.skip {
			t.Errorf("%s %s in %s: skip=%t want %t", tt.level, tt.name, tt.parent, got, tt.skip)
		}
	}
}

func TestSkipExprValue(t *testing.T) {
	ctx, err := NewContext(WithSkipExpr(`Name == "STATUS" && Value == "TENTATIVE"`))
	if err != nil {
		t.Fatal(err)
	}
	if skip, _ := ctx.Skip(PropertyLevel, "STATUS", "VEVENT", "TENTATIVE"); !skip {
		t.Error("expected tentative status to be skipped")
	}
	if skip, _ := ctx.Skip(PropertyLevel, "STATUS", "VEVENT", "CONFIRMED"); skip {
		t.Error("confirmed status skipped")
	}
}

func TestSkipExprCompileErrors(t *testing.T) {
	for _, src := range []string{
		`Name +`,
		`Name`,
		`Unknown == "x"`,
	} {
		if _, err := NewContext(WithSkipExpr(src)); err == nil {
			t.Errorf("%q: expected compile error", src)
		}
	}
}

func TestAliases(t *testing.T) {
	ctx, err := NewContext(WithAlias(PropertyLevel, "x-wr-calname", "name"))
	if err != nil {
		t.Fatal(err)
	}
	if got := ctx.MappedName(PropertyLevel, "X-WR-CALNAME"); got != "NAME" {
		t.Errorf("got %q", got)
	}
	if got := ctx.MappedName(ParameterLevel, "X-WR-CALNAME"); got != "" {
		t.Errorf("alias leaked to another level: %q", got)
	}
	if _, err := NewContext(WithAlias(PropertyLevel, "X", "")); err == nil {
		t.Error("expected error for empty alias")
	}
}

func TestContextOptions(t *testing.T) {
	if _, err := NewContext(WithResolver(nil)); err == nil {
		t.Error("expected error for nil resolver")
	}
	if _, err := NewContext(WithRegistry(nil)); err == nil {
		t.Error("expected error for nil registry")
	}
	utc := func(string) *time.Location { return time.UTC }
	ctx, err := NewContext(WithResolver(utc))
	if err != nil {
		t.Fatal(err)
	}
	if ctx.Resolve("anything") != time.UTC {
		t.Error("resolver not used")
	}
	if ctx.Registry() == nil || ctx.Log() == nil {
		t.Error("defaults missing")
	}
}

func TestLevelText(t *testing.T) {
	for _, l := range []Level{ComponentLevel, PropertyLevel, ParameterLevel} {
		d, err := l.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var ll Level
		if err := ll.UnmarshalText(d); err != nil {
			t.Fatal(err)
		}
		if ll != l {
			t.Errorf("got %s want %s", ll, l)
		}
	}
	var l Level
	if err := l.UnmarshalText([]byte("calendar")); err == nil {
		t.Error("expected error")
	}
}
