package cache

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/chess-ratings/internal/domain/player"
	"github.com/riskibarqy/chess-ratings/internal/domain/result"
	"github.com/riskibarqy/chess-ratings/internal/domain/tournament"
	basecache "github.com/riskibarqy/chess-ratings/internal/platform/cache"
)

const (
	playerPrefix     = "player:"
	tournamentPrefix = "tournament:"
	resultPrefix     = "result:"
)

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) Find(ctx context.Context, filter player.Filter, order player.Order) ([]player.Player, error) {
	key := playerPrefix + "find:" + filterKey(filter) + ":" + string(order)
	items, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) ([]player.Player, error) {
		items, err := r.next.Find(ctx, filter, order)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) Count(ctx context.Context, filter player.Filter) (int, error) {
	key := playerPrefix + "count:" + filterKey(filter)
	return basecache.Load(ctx, r.cache, key, func(ctx context.Context) (int, error) {
		return r.next.Count(ctx, filter)
	})
}

func (r *PlayerRepository) Slice(ctx context.Context, filter player.Filter, order player.Order, offset, limit int) ([]player.Player, error) {
	key := playerPrefix + "slice:" + filterKey(filter) + ":" + string(order) + ":" + windowKey(offset, limit)
	items, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) ([]player.Player, error) {
		items, err := r.next.Slice(ctx, filter, order, offset, limit)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	key := playerPrefix + "id:" + playerID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, playerID)
		if err != nil {
			return nil, err
		}
		return cachedPlayerByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return player.Player{}, false, err
	}

	cached, _ := v.(cachedPlayerByID)
	return cached.value, cached.exists, nil
}

// UpdateFide writes through and drops every cached player view, since
// federation and rating feed both filters and ordering.
func (r *PlayerRepository) UpdateFide(ctx context.Context, playerID string, update player.FideUpdate) error {
	if err := r.next.UpdateFide(ctx, playerID, update); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, playerPrefix)
	return nil
}

type cachedPlayerByID struct {
	value  player.Player
	exists bool
}

type TournamentRepository struct {
	next  tournament.Repository
	cache *basecache.Store
}

func NewTournamentRepository(next tournament.Repository, cache *basecache.Store) *TournamentRepository {
	return &TournamentRepository{next: next, cache: cache}
}

func (r *TournamentRepository) Count(ctx context.Context) (int, error) {
	return basecache.Load(ctx, r.cache, tournamentPrefix+"count", func(ctx context.Context) (int, error) {
		return r.next.Count(ctx)
	})
}

func (r *TournamentRepository) Slice(ctx context.Context, offset, limit int) ([]tournament.Tournament, error) {
	key := tournamentPrefix + "slice:" + windowKey(offset, limit)
	items, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) ([]tournament.Tournament, error) {
		items, err := r.next.Slice(ctx, offset, limit)
		if err != nil {
			return nil, err
		}
		return append([]tournament.Tournament(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	return append([]tournament.Tournament(nil), items...), nil
}

func (r *TournamentRepository) GetByID(ctx context.Context, tournamentID string) (tournament.Tournament, bool, error) {
	key := tournamentPrefix + "id:" + tournamentID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, tournamentID)
		if err != nil {
			return nil, err
		}
		return cachedTournamentByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return tournament.Tournament{}, false, err
	}

	cached, _ := v.(cachedTournamentByID)
	return cached.value, cached.exists, nil
}

func (r *TournamentRepository) MarkFideSynced(ctx context.Context, tournamentID string, syncedAt time.Time) error {
	if err := r.next.MarkFideSynced(ctx, tournamentID, syncedAt); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, tournamentPrefix)
	return nil
}

type cachedTournamentByID struct {
	value  tournament.Tournament
	exists bool
}

// ResultRepository caches result pages. Player renames are not propagated
// into cached pages until the TTL expires.
type ResultRepository struct {
	next  result.Repository
	cache *basecache.Store
}

func NewResultRepository(next result.Repository, cache *basecache.Store) *ResultRepository {
	return &ResultRepository{next: next, cache: cache}
}

func (r *ResultRepository) CountByTournament(ctx context.Context, tournamentID string) (int, error) {
	key := resultPrefix + "count:" + tournamentID
	return basecache.Load(ctx, r.cache, key, func(ctx context.Context) (int, error) {
		return r.next.CountByTournament(ctx, tournamentID)
	})
}

func (r *ResultRepository) SliceByTournament(ctx context.Context, tournamentID string, offset, limit int) ([]result.Game, error) {
	key := resultPrefix + "slice:" + tournamentID + ":" + windowKey(offset, limit)
	items, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) ([]result.Game, error) {
		items, err := r.next.SliceByTournament(ctx, tournamentID, offset, limit)
		if err != nil {
			return nil, err
		}
		return append([]result.Game(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	return append([]result.Game(nil), items...), nil
}

func filterKey(filter player.Filter) string {
	return strings.Join([]string{
		filter.TournamentID,
		strings.ToUpper(filter.Federation),
		strings.ToLower(filter.NamePrefix),
	}, "|")
}

func windowKey(offset, limit int) string {
	return strconv.Itoa(offset) + "-" + strconv.Itoa(limit)
}
