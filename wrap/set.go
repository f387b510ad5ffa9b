package wrap

import (
	"cmp"
	"iter"
	"slices"
)

type ordered[T any] interface {
	Compare(T) int
}

// Set is a sorted set of sibling wrappers. Elements comparing equal are
// kept once.
type Set[T ordered[T]] struct {
	elems []T
}

func newSet[T ordered[T]](elems []T) *Set[T] {
	slices.SortStableFunc(elems, func(a, b T) int {
		return a.Compare(b)
	})
	elems = slices.CompactFunc(elems, func(a, b T) bool {
		return a.Compare(b) == 0
	})
	return &Set[T]{elems: elems}
}

func (s *Set[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.elems)
}

func (s *Set[T]) At(i int) T {
	return s.elems[i]
}

func (s *Set[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < s.Len(); i++ {
			if !yield(i, s.elems[i]) {
				return
			}
		}
	}
}

// Compare orders sets element by element; a prefix sorts first.
func (s *Set[T]) Compare(o *Set[T]) int {
	n := min(s.Len(), o.Len())
	for i := 0; i < n; i++ {
		if c := s.elems[i].Compare(o.elems[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(s.Len(), o.Len())
}
