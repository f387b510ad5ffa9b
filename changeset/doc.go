// Package changeset defines the result of comparing two calendars.
//
// The shape mirrors the compared documents: a [ComponentSelection] selects
// one component of the old document, through a reference fragment, and
// describes what changes beneath it. Components, properties and parameters
// without a counterpart are listed as added or removed; those with a
// counterpart that differs are selected recursively.
//
// A nil selection means no difference.
//
// Encoding the change set for a particular synchronization protocol is up to
// the caller; [EncodeYAML], [EncodeJSON] and [Render] exist to inspect it.
package changeset
