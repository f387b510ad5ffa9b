// Package wrap wraps the nodes of an iCalendar document so that siblings
// are totally ordered and nodes of two versions of a document can be
// aligned.
//
// # Wrappers
//
// [Component], [Property] and [Parameter] wrap the corresponding go-ical
// nodes. A component holds a [Set] of its properties and a [Set] of its
// sub-components; a property holds a [Set] of its parameters. Sets are
// sorted and deduplicated with the wrappers' Compare methods when they are
// built and never change afterwards.
//
// Multi-valued properties and parameters are normalized before they enter a
// set, so CATEGORIES:a,b is held as two properties.
//
// # Identity
//
// SameEntity decides whether two wrappers from different documents denote
// the same thing. Components use the rule of their [Kind]:
//
//   - KindContainer, KindTimezone, KindObservance: always the same entity
//     as a counterpart of the same name,
//   - KindRecurring: same UID and RECURRENCE-ID,
//   - KindUIDOnly: same UID,
//   - KindAlarm: same ACTION,
//   - KindOther: equal content.
//
// Properties and parameters are the same entity when their (mapped) names
// match.
//
// # Diffing
//
// [Diff] merges the sets of two wrapped documents with libdiff.Merge and
// assembles a changeset.ComponentSelection.
package wrap
