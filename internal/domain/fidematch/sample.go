package fidematch

// DefaultMaxSamples is the number of leading members shown per group.
const DefaultMaxSamples = 3

// SampleEntry is either a member or a marker for skipped members.
type SampleEntry[T any] struct {
	value   T
	elision bool
}

func ItemEntry[T any](v T) SampleEntry[T] {
	return SampleEntry[T]{value: v}
}

func ElisionEntry[T any]() SampleEntry[T] {
	return SampleEntry[T]{elision: true}
}

func (e SampleEntry[T]) IsElision() bool {
	return e.elision
}

// Value returns the member, or false for an elision marker.
func (e SampleEntry[T]) Value() (T, bool) {
	if e.elision {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Sample previews a group: the first maxSamples members, an elision marker
// when members were skipped, then the last member. A group of exactly
// maxSamples+1 shows every member without a marker.
func Sample[T any](g MatchGroup[T], maxSamples int) []SampleEntry[T] {
	if maxSamples <= 0 {
		maxSamples = DefaultMaxSamples
	}

	n := len(g.Members)
	if n <= maxSamples {
		out := make([]SampleEntry[T], 0, n)
		for _, m := range g.Members {
			out = append(out, ItemEntry(m))
		}
		return out
	}

	out := make([]SampleEntry[T], 0, maxSamples+2)
	for _, m := range g.Members[:maxSamples] {
		out = append(out, ItemEntry(m))
	}
	if n > maxSamples+1 {
		out = append(out, ElisionEntry[T]())
	}
	return append(out, ItemEntry(g.Members[n-1]))
}
