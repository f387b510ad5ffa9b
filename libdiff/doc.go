// Package libdiff provides the ordered merge used to diff sorted sets of
// calendar nodes.
//
// # Usage
//
//	stats, err := libdiff.Merge(newSet, oldSet, libdiff.MergeFuncs[*wrap.Property]{
//	    Added:   func(n *wrap.Property) error { ... },
//	    Removed: func(o *wrap.Property) error { ... },
//	    Changed: func(n, o *wrap.Property) error { ... },
//	})
//
// Both sets must be sorted by [Entity.Compare] and hold no two elements
// comparing equal. Merge walks them once, pairing elements that denote the
// same entity and reporting the others as added or removed.
//
// # Related Packages
//
//   - github.com/signadot/caldiff/wrap - wrappers implementing Entity
//   - github.com/signadot/caldiff/changeset - the change sets built from merges
package libdiff
