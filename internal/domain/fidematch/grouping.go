// Package fidematch partitions a tournament's players by which identifying
// fields (FIDE ID, federation, date of birth) they carry, so operators can see
// how well a tournament is cross-referenced with the international list.
package fidematch

import "github.com/riskibarqy/chess-ratings/internal/domain/player"

// PresenceKey records which identifying fields a record has populated.
type PresenceKey struct {
	HasExternalID  bool
	HasFederation  bool
	HasDateOfBirth bool
}

// Index returns the key's position in AllPresenceKeys.
func (k PresenceKey) Index() int {
	idx := 0
	if !k.HasExternalID {
		idx += 4
	}
	if !k.HasFederation {
		idx += 2
	}
	if !k.HasDateOfBirth {
		idx++
	}
	return idx
}

func (k PresenceKey) String() string {
	flag := func(name string, ok bool) string {
		if ok {
			return "+" + name
		}
		return "-" + name
	}
	return flag("fide_id", k.HasExternalID) + flag("federation", k.HasFederation) + flag("dob", k.HasDateOfBirth)
}

// AllPresenceKeys returns the 8 keys with external ID outermost and date of
// birth innermost, true before false at every level.
func AllPresenceKeys() []PresenceKey {
	keys := make([]PresenceKey, 0, 8)
	for _, ext := range []bool{true, false} {
		for _, fed := range []bool{true, false} {
			for _, dob := range []bool{true, false} {
				keys = append(keys, PresenceKey{HasExternalID: ext, HasFederation: fed, HasDateOfBirth: dob})
			}
		}
	}
	return keys
}

// Presence holds the three independent field predicates.
type Presence[T any] struct {
	ExternalID  func(T) bool
	Federation  func(T) bool
	DateOfBirth func(T) bool
}

func (p Presence[T]) KeyOf(item T) PresenceKey {
	return PresenceKey{
		HasExternalID:  p.ExternalID(item),
		HasFederation:  p.Federation(item),
		HasDateOfBirth: p.DateOfBirth(item),
	}
}

func PlayerPresence() Presence[player.Player] {
	return Presence[player.Player]{
		ExternalID:  player.Player.HasFideID,
		Federation:  player.Player.HasFederation,
		DateOfBirth: player.Player.HasDateOfBirth,
	}
}

// MatchGroup is one non-empty bucket of records sharing a presence key.
// A group is fixed once built: Members must be treated as read-only, and
// Count always equals len(Members) as returned by ComputeGroups.
type MatchGroup[T any] struct {
	Key     PresenceKey
	Members []T
	Count   int
}

// ComputeGroups buckets items by presence key in a single pass. Members keep
// the input order and empty buckets are omitted. Members hold copies of the
// items and are capped at their length, so the input slice can be reused and
// an append to one group's members never writes into shared storage.
func ComputeGroups[T any](items []T, p Presence[T]) []MatchGroup[T] {
	var buckets [8][]T
	for _, item := range items {
		idx := p.KeyOf(item).Index()
		buckets[idx] = append(buckets[idx], item)
	}

	groups := make([]MatchGroup[T], 0, 8)
	for i, key := range AllPresenceKeys() {
		if len(buckets[i]) == 0 {
			continue
		}
		n := len(buckets[i])
		groups = append(groups, MatchGroup[T]{Key: key, Members: buckets[i][:n:n], Count: n})
	}
	return groups
}
