// Package caldiff compares two versions of an iCalendar document.
//
// [Diff] produces a change set holding the additions, removals and changes
// that turn the old version into the new one, so that a synchronization
// protocol can send only what changed.
//
//	ctx, err := compare.NewContext(compare.WithDefaultSkips())
//	...
//	sel, err := caldiff.Diff(ctx, newCal, oldCal)
//	if sel == nil {
//	    // equivalent
//	}
package caldiff

import (
	"bytes"
	"fmt"
	"io"

	"github.com/emersion/go-ical"

	"github.com/signadot/caldiff/changeset"
	"github.com/signadot/caldiff/compare"
	"github.com/signadot/caldiff/wrap"
)

// Diff produces a comparison of newCal against oldCal. If there are no
// differences, Diff returns nil.
//
//   - components are aligned by the identity rule of their kind: UID and
//     RECURRENCE-ID for events, to-dos and journals, UID for free/busy,
//     ACTION for alarms. Timezones are present or absent as a whole.
//
//   - a component without counterpart in oldCal is added in full; one
//     without counterpart in newCal is removed by reference.
//
//   - a component with a counterpart which differs is selected by a
//     reference built from oldCal and carries the nested changes.
//
//   - properties of the same name are changed, carrying the new value;
//     multi-valued properties are compared as sets of values.
//
// Nodes excluded by the skip-set of ctx never appear in the result.
func Diff(ctx *compare.Context, newCal, oldCal *ical.Calendar) (*changeset.ComponentSelection, error) {
	n, err := wrap.Calendar(ctx, newCal)
	if err != nil {
		return nil, fmt.Errorf("new calendar: %w", err)
	}
	o, err := wrap.Calendar(ctx, oldCal)
	if err != nil {
		return nil, fmt.Errorf("old calendar: %w", err)
	}
	return wrap.Diff(n, o)
}

// DiffReaders decodes a calendar from each reader and diffs them.
func DiffReaders(ctx *compare.Context, newR, oldR io.Reader) (*changeset.ComponentSelection, error) {
	newCal, err := Decode(newR)
	if err != nil {
		return nil, fmt.Errorf("new calendar: %w", err)
	}
	oldCal, err := Decode(oldR)
	if err != nil {
		return nil, fmt.Errorf("old calendar: %w", err)
	}
	return Diff(ctx, newCal, oldCal)
}

// Equal reports whether a and b are equivalent under ctx.
func Equal(ctx *compare.Context, a, b *ical.Calendar) (bool, error) {
	sel, err := Diff(ctx, a, b)
	if err != nil {
		return false, err
	}
	return sel == nil, nil
}

// Decode reads one calendar.
func Decode(r io.Reader) (*ical.Calendar, error) {
	return ical.NewDecoder(r).Decode()
}

// Parse decodes one calendar from d.
func Parse(d []byte) (*ical.Calendar, error) {
	return Decode(bytes.NewReader(d))
}
