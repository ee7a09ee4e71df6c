package rowspan

import (
	"strings"
	"testing"

	crerr "github.com/cockroachdb/errors"
)

func identity(s string) string { return s }

func TestAt_AdjacentRuns(t *testing.T) {
	items := []string{"A", "A", "B", "B", "B", "C"}
	want := []int{2, 0, 3, 0, 0, 1}

	for i, rows := range want {
		span, err := At(items, i, identity)
		if err != nil {
			t.Fatalf("At(%d): %v", i, err)
		}
		if span.Rows != rows {
			t.Fatalf("At(%d).Rows=%d want=%d", i, span.Rows, rows)
		}
		if rows > 0 && span.Content != items[i] {
			t.Fatalf("At(%d).Content=%q want=%q", i, span.Content, items[i])
		}
		if span.IsContinuation() != (rows == 0) {
			t.Fatalf("At(%d).IsContinuation mismatch", i)
		}
	}
}

func TestAt_NonAdjacentEqualKeysStartNewRun(t *testing.T) {
	items := []string{"A", "B", "A"}

	span, err := At(items, 2, identity)
	if err != nil {
		t.Fatalf("At: %v", err)
	}
	if span.Rows != 1 {
		t.Fatalf("expected fresh run of 1, got %d", span.Rows)
	}
}

func TestAtWithContent_UsesDerivedContent(t *testing.T) {
	type game struct {
		round int
		board int
	}
	items := []game{{1, 1}, {1, 2}, {2, 1}}

	span, err := AtWithContent(items, 0,
		func(g game) int { return g.round },
		func(g game) string { return "Round " + strings.Repeat("I", g.round) },
	)
	if err != nil {
		t.Fatalf("AtWithContent: %v", err)
	}
	if span.Rows != 2 || span.Content != "Round I" {
		t.Fatalf("unexpected span: %+v", span)
	}
}

func TestAt_OutOfRange(t *testing.T) {
	items := []string{"A"}

	for _, index := range []int{-1, 1, 5} {
		_, err := At(items, index, identity)
		if !crerr.Is(err, ErrPrecondition) {
			t.Fatalf("At(%d): expected ErrPrecondition, got %v", index, err)
		}
	}

	if _, err := At([]string(nil), 0, identity); !crerr.Is(err, ErrPrecondition) {
		t.Fatalf("expected ErrPrecondition on empty slice, got %v", err)
	}
}

func TestAll_MatchesAt(t *testing.T) {
	items := []string{"A", "A", "B", "B", "B", "C"}
	spans := All(items, identity)

	for i := range items {
		single, err := At(items, i, identity)
		if err != nil {
			t.Fatalf("At(%d): %v", i, err)
		}
		if spans[i].Rows != single.Rows {
			t.Fatalf("All[%d].Rows=%d At=%d", i, spans[i].Rows, single.Rows)
		}
	}

	if got := All([]string{}, identity); len(got) != 0 {
		t.Fatalf("expected no spans for empty input, got %d", len(got))
	}
}
