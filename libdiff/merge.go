package libdiff

import (
	"errors"
	"fmt"

	"github.com/signadot/caldiff/debug"
)

var ErrOrderingInvariant = errors.New("ordering invariant violated")

// Entity is an element of a sorted set of siblings.
type Entity[T any] interface {
	// Compare orders siblings strictly.
	Compare(T) int
	// SameEntity reports whether the receiver and its argument, taken
	// from different versions of a document, denote the same thing.
	SameEntity(T) bool
}

// Sequence gives positional access to a sorted set.
type Sequence[T any] interface {
	Len() int
	At(i int) T
}

// Slice adapts an already sorted slice to a Sequence.
type Slice[T any] []T

func (s Slice[T]) Len() int   { return len(s) }
func (s Slice[T]) At(i int) T { return s[i] }

// MergeFuncs receive the classification of each element. A nil func
// ignores that class.
type MergeFuncs[T any] struct {
	Added   func(n T) error
	Removed func(o T) error
	Changed func(n, o T) error
}

func (fns *MergeFuncs[T]) added(n T) error {
	if fns.Added == nil {
		return nil
	}
	return fns.Added(n)
}

func (fns *MergeFuncs[T]) removed(o T) error {
	if fns.Removed == nil {
		return nil
	}
	return fns.Removed(o)
}

func (fns *MergeFuncs[T]) changed(n, o T) error {
	if fns.Changed == nil {
		return nil
	}
	return fns.Changed(n, o)
}

// Stats counts the classifications made by a merge.
type Stats struct {
	Added, Removed, Paired int
}

// Merge walks news and olds in tandem.
//
//   - elements denoting the same entity are passed to Changed, which
//     decides whether they actually differ;
//   - otherwise the element sorting first has no counterpart and is
//     passed to Added (from news) or Removed (from olds);
//   - two elements comparing equal without being the same entity
//     violate the ordering contract and abort the merge with
//     ErrOrderingInvariant.
//
// The first error returned by a callback aborts the merge.
func Merge[T Entity[T]](news, olds Sequence[T], fns MergeFuncs[T]) (Stats, error) {
	var st Stats
	i, j := 0, 0
	nn, on := news.Len(), olds.Len()
	for i < nn && j < on {
		n, o := news.At(i), olds.At(j)
		if n.SameEntity(o) {
			if err := fns.changed(n, o); err != nil {
				return st, err
			}
			st.Paired++
			i++
			j++
			continue
		}
		switch c := n.Compare(o); {
		case c < 0:
			if err := fns.added(n); err != nil {
				return st, err
			}
			st.Added++
			i++
		case c > 0:
			if err := fns.removed(o); err != nil {
				return st, err
			}
			st.Removed++
			j++
		default:
			return st, fmt.Errorf("%w: %v and %v compare equal", ErrOrderingInvariant, n, o)
		}
	}
	for ; i < nn; i++ {
		if err := fns.added(news.At(i)); err != nil {
			return st, err
		}
		st.Added++
	}
	for ; j < on; j++ {
		if err := fns.removed(olds.At(j)); err != nil {
			return st, err
		}
		st.Removed++
	}
	if debug.Merge() {
		debug.Logf("merge %d new %d old: %d added %d removed %d paired\n", nn, on, st.Added, st.Removed, st.Paired)
	}
	return st, nil
}
