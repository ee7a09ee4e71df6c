// Package rowspan computes how many adjacent table rows share a cell value so
// views can merge them (e.g. one round number spanning all of its boards).
package rowspan

import (
	crerr "github.com/cockroachdb/errors"
)

// ErrPrecondition marks calls made with an index outside the item slice.
var ErrPrecondition = crerr.New("rowspan precondition violated")

// Span describes the cell at one row. Rows == 0 means the row continues the
// span started above it and its cell should not be rendered.
type Span[C any] struct {
	Rows    int
	Content C
}

func (s Span[C]) IsContinuation() bool {
	return s.Rows == 0
}

// At returns the span for items[index] keyed by key.
func At[T any, K comparable](items []T, index int, key func(T) K) (Span[K], error) {
	return AtWithContent(items, index, key, key)
}

// AtWithContent is At with the span's content derived from the first row of
// the run instead of the key itself.
func AtWithContent[T any, K comparable, C any](items []T, index int, key func(T) K, content func(T) C) (Span[C], error) {
	if index < 0 || index >= len(items) {
		return Span[C]{}, crerr.Mark(
			crerr.Newf("index %d out of range [0,%d)", index, len(items)),
			ErrPrecondition,
		)
	}

	value := key(items[index])
	if index > 0 && key(items[index-1]) == value {
		return Span[C]{}, nil
	}

	rows := 1
	for i := index + 1; i < len(items) && key(items[i]) == value; i++ {
		rows++
	}

	return Span[C]{Rows: rows, Content: content(items[index])}, nil
}

// All returns one span per item in a single forward pass.
func All[T any, K comparable](items []T, key func(T) K) []Span[K] {
	out := make([]Span[K], len(items))
	for start := 0; start < len(items); {
		value := key(items[start])
		end := start + 1
		for end < len(items) && key(items[end]) == value {
			end++
		}
		out[start] = Span[K]{Rows: end - start, Content: value}
		start = end
	}
	return out
}
