package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/chess-ratings/internal/domain/result"
)

type ResultRepository struct {
	mu           sync.RWMutex
	byTournament map[string][]result.Game
}

func NewResultRepository(games []result.Game) *ResultRepository {
	byTournament := make(map[string][]result.Game)
	for _, g := range games {
		byTournament[g.TournamentID] = append(byTournament[g.TournamentID], g)
	}
	for id := range byTournament {
		items := byTournament[id]
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].Round != items[j].Round {
				return items[i].Round < items[j].Round
			}
			return items[i].Board < items[j].Board
		})
	}

	return &ResultRepository{byTournament: byTournament}
}

func (r *ResultRepository) CountByTournament(_ context.Context, tournamentID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byTournament[tournamentID]), nil
}

func (r *ResultRepository) SliceByTournament(_ context.Context, tournamentID string, offset, limit int) ([]result.Game, error) {
	if offset < 0 || limit < 0 {
		return nil, fmt.Errorf("invalid slice bounds offset=%d limit=%d", offset, limit)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return window(r.byTournament[tournamentID], offset, limit), nil
}
