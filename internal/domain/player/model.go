package player

import (
	"fmt"
	"strings"
	"time"
)

// Player is a national federation record, optionally cross-referenced with
// the international (FIDE) rating list.
type Player struct {
	ID          string
	LastName    string
	FirstName   string
	FideID      int64
	Federation  string
	DateOfBirth *time.Time
	Rating      int
	FideRating  int
	Club        string
}

func (p Player) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	default:
		return p.LastName + ", " + p.FirstName
	}
}

func (p Player) HasFideID() bool {
	return p.FideID > 0
}

func (p Player) HasFederation() bool {
	return strings.TrimSpace(p.Federation) != ""
}

func (p Player) HasDateOfBirth() bool {
	return p.DateOfBirth != nil && !p.DateOfBirth.IsZero()
}

func (p Player) BirthYear() int {
	if !p.HasDateOfBirth() {
		return 0
	}
	return p.DateOfBirth.Year()
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if strings.TrimSpace(p.LastName) == "" {
		return fmt.Errorf("player last name is required")
	}
	if p.FideID < 0 {
		return fmt.Errorf("player fide id must not be negative")
	}
	if p.HasFederation() && len(strings.TrimSpace(p.Federation)) != 3 {
		return fmt.Errorf("invalid player federation: %s", p.Federation)
	}
	if p.Rating < 0 {
		return fmt.Errorf("player rating must not be negative")
	}

	return nil
}

// Less orders players by last name, then first name, then id.
func Less(a, b Player) bool {
	if c := strings.Compare(strings.ToLower(a.LastName), strings.ToLower(b.LastName)); c != 0 {
		return c < 0
	}
	if c := strings.Compare(strings.ToLower(a.FirstName), strings.ToLower(b.FirstName)); c != 0 {
		return c < 0
	}
	return a.ID < b.ID
}

// FideUpdate carries cross-reference data found on the international list.
// Zero-valued fields are left untouched.
type FideUpdate struct {
	FideID     int64
	Federation string
	FideRating int
}

func (u FideUpdate) IsEmpty() bool {
	return u.FideID == 0 && u.Federation == "" && u.FideRating == 0
}
