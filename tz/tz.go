// Package tz provides timezone resolvers for comparing RECURRENCE-ID values.
//
// A [Resolver] must answer from memory: the diff engine calls it while
// ordering components and never expects it to block.
package tz

import (
	"strings"
	"sync"
	"time"

	"github.com/emersion/go-ical"
)

// Resolver maps a TZID to a location, or nil if the TZID is unknown.
type Resolver func(tzid string) *time.Location

var sysTable sync.Map

// System resolves TZIDs against the IANA database through
// time.LoadLocation, remembering each answer.
func System(tzid string) *time.Location {
	if v, ok := sysTable.Load(tzid); ok {
		return v.(*time.Location)
	}
	loc, err := time.LoadLocation(ianaName(tzid))
	if err != nil {
		loc = nil
	}
	sysTable.Store(tzid, loc)
	return loc
}

// Preload loads the given TZIDs into the System table so later lookups
// are in memory.
func Preload(tzids ...string) {
	for _, id := range tzids {
		System(id)
	}
}

// Table resolves from a fixed map.
func Table(m map[string]*time.Location) Resolver {
	return func(tzid string) *time.Location {
		return m[tzid]
	}
}

// Chain returns the first non nil answer of rs.
func Chain(rs ...Resolver) Resolver {
	return func(tzid string) *time.Location {
		for _, r := range rs {
			if r == nil {
				continue
			}
			if loc := r(tzid); loc != nil {
				return loc
			}
		}
		return nil
	}
}

// FromCalendar resolves the TZIDs defined by the VTIMEZONE components of
// cal through fallback, trying the TZID as given and then its IANA looking
// suffix. The lookups happen once, when FromCalendar is called.
func FromCalendar(cal *ical.Calendar, fallback Resolver) Resolver {
	m := map[string]*time.Location{}
	if cal != nil && cal.Component != nil {
		for _, child := range cal.Children {
			if child.Name != "VTIMEZONE" {
				continue
			}
			p := child.Props.Get("TZID")
			if p == nil {
				continue
			}
			if loc := fallback(p.Value); loc != nil {
				m[p.Value] = loc
				continue
			}
			if loc := fallback(ianaName(p.Value)); loc != nil {
				m[p.Value] = loc
			}
		}
	}
	return Table(m)
}

// ianaName strips the prefixes some producers put in front of IANA names,
// e.g. "/mozilla.org/20050126_1/Europe/Paris" or
// "/freeassociation.sourceforge.net/Tzfile/Europe/Paris".
func ianaName(tzid string) string {
	if !strings.HasPrefix(tzid, "/") {
		return tzid
	}
	parts := strings.Split(strings.TrimPrefix(tzid, "/"), "/")
	for i := range parts {
		if isArea(parts[i]) && i+1 < len(parts) {
			return strings.Join(parts[i:], "/")
		}
	}
	return tzid
}

func isArea(s string) bool {
	switch s {
	case "Africa", "America", "Antarctica", "Arctic", "Asia", "Atlantic",
		"Australia", "Europe", "Indian", "Pacific", "Etc":
		return true
	}
	return false
}

// IDs returns the TZIDs referenced by TZID parameters or defined by
// VTIMEZONE components anywhere in cal, each once.
func IDs(cal *ical.Calendar) []string {
	if cal == nil || cal.Component == nil {
		return nil
	}
	seen := map[string]bool{}
	var res []string
	add := func(id string) {
		if id == "" || seen[id] {
			return
		}
		seen[id] = true
		res = append(res, id)
	}
	var walk func(c *ical.Component)
	walk = func(c *ical.Component) {
		if c.Name == "VTIMEZONE" {
			if p := c.Props.Get("TZID"); p != nil {
				add(p.Value)
			}
		}
		for _, ps := range c.Props {
			for i := range ps {
				add(ps[i].Params.Get("TZID"))
			}
		}
		for _, child := range c.Children {
			walk(child)
		}
	}
	walk(cal.Component)
	return res
}
