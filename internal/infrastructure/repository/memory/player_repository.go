package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/riskibarqy/chess-ratings/internal/domain/player"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	items   map[string]player.Player
	rosters map[string]map[string]struct{}
}

// NewPlayerRepository indexes players and the tournament rosters they
// appear in, keyed by tournament id.
func NewPlayerRepository(players []player.Player, rosters map[string][]string) *PlayerRepository {
	items := make(map[string]player.Player, len(players))
	for _, p := range players {
		items[p.ID] = p
	}

	byTournament := make(map[string]map[string]struct{}, len(rosters))
	for tournamentID, playerIDs := range rosters {
		set := make(map[string]struct{}, len(playerIDs))
		for _, id := range playerIDs {
			set[id] = struct{}{}
		}
		byTournament[tournamentID] = set
	}

	return &PlayerRepository{
		items:   items,
		rosters: byTournament,
	}
}

func (r *PlayerRepository) Find(_ context.Context, filter player.Filter, order player.Order) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.matching(filter, order), nil
}

func (r *PlayerRepository) Count(_ context.Context, filter player.Filter) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.matching(filter, player.OrderByName)), nil
}

func (r *PlayerRepository) Slice(_ context.Context, filter player.Filter, order player.Order, offset, limit int) ([]player.Player, error) {
	if offset < 0 || limit < 0 {
		return nil, fmt.Errorf("invalid slice bounds offset=%d limit=%d", offset, limit)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return window(r.matching(filter, order), offset, limit), nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[playerID]
	if !ok {
		return player.Player{}, false, nil
	}

	return p, true, nil
}

func (r *PlayerRepository) UpdateFide(_ context.Context, playerID string, update player.FideUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[playerID]
	if !ok {
		return fmt.Errorf("player=%s not found", playerID)
	}
	if update.FideID > 0 {
		p.FideID = update.FideID
	}
	if update.Federation != "" {
		p.Federation = update.Federation
	}
	if update.FideRating > 0 {
		p.FideRating = update.FideRating
	}
	r.items[playerID] = p

	return nil
}

func (r *PlayerRepository) matching(filter player.Filter, order player.Order) []player.Player {
	var roster map[string]struct{}
	if filter.TournamentID != "" {
		roster = r.rosters[filter.TournamentID]
		if roster == nil {
			return []player.Player{}
		}
	}

	prefix := strings.ToLower(filter.NamePrefix)
	out := make([]player.Player, 0, len(r.items))
	for _, p := range r.items {
		if roster != nil {
			if _, ok := roster[p.ID]; !ok {
				continue
			}
		}
		if filter.Federation != "" && !strings.EqualFold(p.Federation, filter.Federation) {
			continue
		}
		if prefix != "" && !strings.HasPrefix(strings.ToLower(p.LastName), prefix) {
			continue
		}
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool {
		if order == player.OrderByRating && out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return player.Less(out[i], out[j])
	})

	return out
}

func window[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return append([]T(nil), items[offset:end]...)
}
