package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/chess-ratings/internal/domain/tournament"
)

type TournamentRepository struct {
	mu    sync.RWMutex
	items map[string]tournament.Tournament
}

func NewTournamentRepository(tournaments []tournament.Tournament) *TournamentRepository {
	items := make(map[string]tournament.Tournament, len(tournaments))
	for _, t := range tournaments {
		items[t.ID] = t
	}

	return &TournamentRepository{items: items}
}

func (r *TournamentRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items), nil
}

func (r *TournamentRepository) Slice(_ context.Context, offset, limit int) ([]tournament.Tournament, error) {
	if offset < 0 || limit < 0 {
		return nil, fmt.Errorf("invalid slice bounds offset=%d limit=%d", offset, limit)
	}

	r.mu.RLock()
	out := make([]tournament.Tournament, 0, len(r.items))
	for _, t := range r.items {
		out = append(out, t)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.After(out[j].StartDate)
		}
		return out[i].ID < out[j].ID
	})

	return window(out, offset, limit), nil
}

func (r *TournamentRepository) GetByID(_ context.Context, tournamentID string) (tournament.Tournament, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.items[tournamentID]
	if !ok {
		return tournament.Tournament{}, false, nil
	}

	return t, true, nil
}

func (r *TournamentRepository) MarkFideSynced(_ context.Context, tournamentID string, syncedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.items[tournamentID]
	if !ok {
		return fmt.Errorf("tournament=%s not found", tournamentID)
	}
	syncedAt = syncedAt.UTC()
	t.FideSyncedAt = &syncedAt
	r.items[tournamentID] = t

	return nil
}
