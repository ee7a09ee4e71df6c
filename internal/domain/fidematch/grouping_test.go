package fidematch

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/riskibarqy/chess-ratings/internal/domain/player"
)

func samplePlayers() []player.Player {
	dob := time.Date(1985, 1, 2, 0, 0, 0, 0, time.UTC)
	return []player.Player{
		{ID: "1", LastName: "Alekhine", FirstName: "Alexander", FideID: 100, Federation: "FRA", DateOfBirth: &dob},
		{ID: "2", LastName: "Bogoljubov", FirstName: "Efim", Federation: "GER"},
		{ID: "3", LastName: "Capablanca", FirstName: "Jose", FideID: 101},
		{ID: "4", LastName: "Euwe", FirstName: "Max", Federation: "NED", DateOfBirth: &dob},
		{ID: "5", LastName: "Fischer", FirstName: "Robert"},
		{ID: "6", LastName: "Gligoric", FirstName: "Svetozar", Federation: "SRB"},
		{ID: "7", LastName: "Keres", FirstName: "Paul", FideID: 102, Federation: "EST", DateOfBirth: &dob},
	}
}

func TestAllPresenceKeys_Order(t *testing.T) {
	keys := AllPresenceKeys()
	if len(keys) != 8 {
		t.Fatalf("expected 8 keys, got %d", len(keys))
	}
	if keys[0] != (PresenceKey{true, true, true}) || keys[1] != (PresenceKey{true, true, false}) ||
		keys[2] != (PresenceKey{true, false, true}) || keys[7] != (PresenceKey{false, false, false}) {
		t.Fatalf("unexpected key order: %v", keys)
	}
	for i, k := range keys {
		if k.Index() != i {
			t.Fatalf("key %v index=%d want=%d", k, k.Index(), i)
		}
	}
}

func TestComputeGroups_PartitionsInput(t *testing.T) {
	players := samplePlayers()
	groups := ComputeGroups(players, PlayerPresence())

	seen := map[string]int{}
	lastIndex := -1
	for _, g := range groups {
		if g.Count == 0 || g.Count != len(g.Members) {
			t.Fatalf("group %v has inconsistent count %d/%d", g.Key, g.Count, len(g.Members))
		}
		if g.Key.Index() <= lastIndex {
			t.Fatalf("groups out of key order at %v", g.Key)
		}
		lastIndex = g.Key.Index()
		for _, m := range g.Members {
			seen[m.ID]++
			if PlayerPresence().KeyOf(m) != g.Key {
				t.Fatalf("player %s placed in wrong group %v", m.ID, g.Key)
			}
		}
	}
	if len(seen) != len(players) {
		t.Fatalf("expected %d distinct players, got %d", len(players), len(seen))
	}
	for id, n := range seen {
		if n != 1 {
			t.Fatalf("player %s appears %d times", id, n)
		}
	}
}

func TestComputeGroups_PreservesOrderWithinBucket(t *testing.T) {
	players := samplePlayers()
	groups := ComputeGroups(players, PlayerPresence())

	var fedOnly MatchGroup[player.Player]
	for _, g := range groups {
		if g.Key == (PresenceKey{HasFederation: true}) {
			fedOnly = g
		}
	}
	got := []string{}
	for _, m := range fedOnly.Members {
		got = append(got, m.ID)
	}
	if want := []string{"2", "6"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("federation-only group order got=%v want=%v", got, want)
	}
}

func TestComputeGroups_EmptyInput(t *testing.T) {
	groups := ComputeGroups(nil, PlayerPresence())
	if groups == nil || len(groups) != 0 {
		t.Fatalf("expected empty non-nil groups, got %#v", groups)
	}
}

func TestComputeGroups_Idempotent(t *testing.T) {
	players := samplePlayers()
	first := ComputeGroups(players, PlayerPresence())
	second := ComputeGroups(players, PlayerPresence())
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical output across calls")
	}
}

func TestComputeGroups_DoesNotAliasInput(t *testing.T) {
	players := samplePlayers()
	groups := ComputeGroups(players, PlayerPresence())
	players[0].LastName = "changed"
	if groups[0].Members[0].LastName != "Alekhine" {
		t.Fatalf("group member aliased caller slice")
	}
}

func TestPresenceKey_String(t *testing.T) {
	got := fmt.Sprint(PresenceKey{HasExternalID: true, HasDateOfBirth: true})
	if got != "+fide_id-federation+dob" {
		t.Fatalf("unexpected key string %q", got)
	}
}

func TestComputeGroups_DetachedFromInput(t *testing.T) {
	players := samplePlayers()
	groups := ComputeGroups(players, PlayerPresence())

	players[0].LastName = "Changed"
	_ = append(players[:0], player.Player{ID: "x"})

	first := groups[0]
	if first.Members[0].LastName != "Alekhine" {
		t.Fatalf("group member changed with input: %+v", first.Members[0])
	}
	for _, g := range groups {
		if cap(g.Members) != len(g.Members) || g.Count != len(g.Members) {
			t.Fatalf("group %v: len=%d cap=%d count=%d", g.Key, len(g.Members), cap(g.Members), g.Count)
		}
	}

	grown := append(first.Members, player.Player{ID: "extra"})
	if &grown[0] == &first.Members[0] {
		t.Fatalf("append reused group storage")
	}
	if len(first.Members) != first.Count {
		t.Fatalf("append changed group: len=%d count=%d", len(first.Members), first.Count)
	}
}
