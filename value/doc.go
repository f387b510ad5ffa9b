// Package value turns iCalendar leaf values into comparable canonical forms.
//
// # Kinds
//
// Every property value is classified by a [Kind]. The kind is a closed set of
// the iCalendar value types plus a few structured property kinds (free/busy
// period lists, text lists, recurrence rules, request statuses) and the
// [Extension] kind for anything unknown.
//
// Kinds form a fallback chain through [Kind.Parent]: a [CalAddress] is a
// [URI] is a [Text]. A [Registry] lookup walks that chain until it finds a
// converter.
//
// # Comparators
//
// A [Comparator] is an ordered sequence of (tag, value) [Pair]s. Two leaves are
// equal iff their comparators are equal, and comparators are totally ordered
// so that sets of leaves can be sorted.
//
// # Normalization
//
// Multi-valued leaves such as CATEGORIES:a,b or FREEBUSY:p1,p2 normalize into
// one single-valued property per element, each carrying the original
// parameters, so that they compare as sets. [Join] reverses this.
//
// # Registry
//
// A [Registry] is immutable once built:
//
//	reg, err := value.NewRegistry(
//	    value.WithPropertyKind("X-SPONSORS", value.TextList),
//	    value.WithConverter(value.Geo, myGeo),
//	)
package value
