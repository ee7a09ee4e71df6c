package fidematch

import "testing"

func groupOf(n int) MatchGroup[int] {
	members := make([]int, n)
	for i := range members {
		members[i] = i + 1
	}
	return MatchGroup[int]{Members: members, Count: n}
}

func render(entries []SampleEntry[int]) []int {
	out := make([]int, 0, len(entries))
	for _, e := range entries {
		v, ok := e.Value()
		if !ok {
			out = append(out, -1)
			continue
		}
		out = append(out, v)
	}
	return out
}

func TestSample(t *testing.T) {
	tests := []struct {
		name string
		size int
		max  int
		want []int
	}{
		{name: "empty", size: 0, max: 3, want: []int{}},
		{name: "at limit", size: 3, max: 3, want: []int{1, 2, 3}},
		{name: "one over limit shows last without marker", size: 4, max: 3, want: []int{1, 2, 3, 4}},
		{name: "skips middle", size: 5, max: 3, want: []int{1, 2, 3, -1, 5}},
		{name: "large group", size: 200, max: 3, want: []int{1, 2, 3, -1, 200}},
		{name: "default max", size: 10, max: 0, want: []int{1, 2, 3, -1, 10}},
		{name: "custom max", size: 4, max: 1, want: []int{1, -1, 4}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := render(Sample(groupOf(tt.size), tt.max))
			if len(got) != len(tt.want) {
				t.Fatalf("got=%v want=%v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got=%v want=%v", got, tt.want)
				}
			}
		})
	}
}

func TestSampleEntry(t *testing.T) {
	item := ItemEntry(7)
	if item.IsElision() {
		t.Fatalf("item reported as elision")
	}
	if v, ok := item.Value(); !ok || v != 7 {
		t.Fatalf("unexpected item value %v %v", v, ok)
	}

	marker := ElisionEntry[int]()
	if !marker.IsElision() {
		t.Fatalf("expected elision marker")
	}
	if _, ok := marker.Value(); ok {
		t.Fatalf("elision marker must not carry a value")
	}
}

func TestSample_EntriesAreCopies(t *testing.T) {
	g := groupOf(6)
	entries := Sample(g, 3)

	g.Members[0] = 100
	g.Members[5] = 600

	if got := render(entries); got[0] != 1 || got[len(got)-1] != 6 {
		t.Fatalf("sample followed member mutation: %v", got)
	}
}
