package player

import (
	"sort"
	"testing"
	"time"
)

func TestPlayer_Validate(t *testing.T) {
	dob := time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)
	valid := Player{ID: "p-1", LastName: "Nimzowitsch", FirstName: "Aron", Federation: "DEN", DateOfBirth: &dob}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid player, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(p *Player)
	}{
		{name: "missing id", mutate: func(p *Player) { p.ID = "" }},
		{name: "missing last name", mutate: func(p *Player) { p.LastName = " " }},
		{name: "negative fide id", mutate: func(p *Player) { p.FideID = -1 }},
		{name: "bad federation", mutate: func(p *Player) { p.Federation = "DENMARK" }},
		{name: "negative rating", mutate: func(p *Player) { p.Rating = -5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			if err := p.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestLess_SortsByLastThenFirstName(t *testing.T) {
	players := []Player{
		{ID: "3", LastName: "tal", FirstName: "Mikhail"},
		{ID: "2", LastName: "Anderssen", FirstName: "Adolf"},
		{ID: "1", LastName: "Tal", FirstName: "Boris"},
	}
	sort.SliceStable(players, func(i, j int) bool { return Less(players[i], players[j]) })

	got := []string{players[0].ID, players[1].ID, players[2].ID}
	want := []string{"2", "1", "3"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order: got=%v want=%v", got, want)
		}
	}
}

func TestPresenceHelpers(t *testing.T) {
	var zero time.Time
	p := Player{Federation: "  ", DateOfBirth: &zero}
	if p.HasFideID() || p.HasFederation() || p.HasDateOfBirth() {
		t.Fatalf("expected no identifying fields on %+v", p)
	}
	if p.BirthYear() != 0 {
		t.Fatalf("expected zero birth year")
	}
	if got := (Player{LastName: "Lasker", FirstName: "Emanuel"}).FullName(); got != "Lasker, Emanuel" {
		t.Fatalf("unexpected full name %q", got)
	}
}
