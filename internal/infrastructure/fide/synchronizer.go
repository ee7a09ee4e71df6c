package fide

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/chess-ratings/internal/domain/player"
	"github.com/riskibarqy/chess-ratings/internal/domain/tournament"
	"github.com/riskibarqy/chess-ratings/internal/platform/logging"
	"github.com/riskibarqy/chess-ratings/internal/usecase"
)

const defaultSyncWorkers = 4

// Sync outcomes reported to SynchronizerConfig.Observer.
const (
	OutcomeUpdated   = "updated"
	OutcomeMatched   = "matched"
	OutcomeUnmatched = "unmatched"
	OutcomeFailed    = "failed"
)

// Lookup is the part of Client the synchronizer depends on.
type Lookup interface {
	LookupByID(ctx context.Context, fideID int64) (Player, bool, error)
	Search(ctx context.Context, lastName, firstName string) ([]Player, error)
}

type SynchronizerConfig struct {
	Workers  int
	Logger   *logging.Logger
	Observer func(outcome string)
	Now      func() time.Time
}

// Synchronizer refreshes the FIDE cross-reference of every player entered
// in a tournament.
type Synchronizer struct {
	lookup      Lookup
	players     player.Repository
	tournaments tournament.Repository
	workers     int
	logger      *logging.Logger
	observer    func(outcome string)
	now         func() time.Time
}

var _ tournament.FideSynchronizer = (*Synchronizer)(nil)

func NewSynchronizer(lookup Lookup, players player.Repository, tournaments tournament.Repository, cfg SynchronizerConfig) *Synchronizer {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultSyncWorkers
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Synchronizer{
		lookup:      lookup,
		players:     players,
		tournaments: tournaments,
		workers:     workers,
		logger:      logger,
		observer:    cfg.Observer,
		now:         now,
	}
}

// SyncTournament looks every entered player up on the rating list and writes
// back federation, FIDE id and rating. The first lookup or write failure
// cancels the remaining work and is returned; the tournament is only marked
// synced when every player was processed.
func (s *Synchronizer) SyncTournament(ctx context.Context, tournamentID string) (tournament.SyncSummary, error) {
	tournamentID = strings.TrimSpace(tournamentID)
	if tournamentID == "" {
		return tournament.SyncSummary{}, fmt.Errorf("%w: tournament id is required", usecase.ErrInvalidInput)
	}

	_, exists, err := s.tournaments.GetByID(ctx, tournamentID)
	if err != nil {
		return tournament.SyncSummary{}, fmt.Errorf("get tournament: %w", err)
	}
	if !exists {
		return tournament.SyncSummary{}, fmt.Errorf("%w: id=%s", usecase.ErrTournamentNotFound, tournamentID)
	}

	roster, err := s.players.Find(ctx, player.Filter{TournamentID: tournamentID}, player.OrderByName)
	if err != nil {
		return tournament.SyncSummary{}, fmt.Errorf("list tournament players: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return tournament.SyncSummary{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		matched   atomic.Int32
		updated   atomic.Int32
		unmatched atomic.Int32
		errOnce   sync.Once
		firstErr  error
		workers   sync.WaitGroup
	)
	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for _, item := range roster {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			if ctx.Err() != nil {
				return
			}

			outcome, err := s.syncPlayer(ctx, item)
			s.observe(outcome)
			if err != nil {
				fail(err)
				return
			}

			switch outcome {
			case OutcomeUpdated:
				updated.Add(1)
				matched.Add(1)
			case OutcomeMatched:
				matched.Add(1)
			case OutcomeUnmatched:
				unmatched.Add(1)
			}
		}); err != nil {
			workers.Done()
			fail(fmt.Errorf("submit player to worker pool: %w", err))
			break
		}
	}
	workers.Wait()

	if firstErr != nil {
		s.logger.WarnContext(ctx, "fide sync aborted", "tournament_id", tournamentID, "error", firstErr)
		return tournament.SyncSummary{}, firstErr
	}
	if err := ctx.Err(); err != nil {
		return tournament.SyncSummary{}, err
	}

	syncedAt := s.now().UTC()
	if err := s.tournaments.MarkFideSynced(ctx, tournamentID, syncedAt); err != nil {
		return tournament.SyncSummary{}, fmt.Errorf("mark tournament synced: %w", err)
	}

	return tournament.SyncSummary{
		TournamentID: tournamentID,
		Players:      len(roster),
		Matched:      int(matched.Load()),
		Updated:      int(updated.Load()),
		Unmatched:    int(unmatched.Load()),
		SyncedAt:     syncedAt,
	}, nil
}

func (s *Synchronizer) syncPlayer(ctx context.Context, item player.Player) (string, error) {
	candidate, found, err := s.resolve(ctx, item)
	if err != nil {
		return OutcomeFailed, err
	}
	if !found {
		return OutcomeUnmatched, nil
	}

	update := diff(item, candidate)
	if update.IsEmpty() {
		return OutcomeMatched, nil
	}
	if err := s.players.UpdateFide(ctx, item.ID, update); err != nil {
		return OutcomeFailed, fmt.Errorf("update player=%s: %w", item.ID, err)
	}

	s.logger.DebugContext(ctx, "player fide data updated",
		"player_id", item.ID,
		"fide_id", candidate.FideID,
		"federation", candidate.Federation,
		"fide_rating", candidate.StandardRating,
	)
	return OutcomeUpdated, nil
}

// resolve prefers the stored FIDE id. Without one it searches by name and
// accepts a single candidate whose birth year agrees when both are known.
func (s *Synchronizer) resolve(ctx context.Context, item player.Player) (Player, bool, error) {
	if item.HasFideID() {
		return s.lookup.LookupByID(ctx, item.FideID)
	}
	if strings.TrimSpace(item.LastName) == "" {
		return Player{}, false, nil
	}

	candidates, err := s.lookup.Search(ctx, item.LastName, item.FirstName)
	if err != nil {
		return Player{}, false, err
	}

	birthYear := item.BirthYear()
	var (
		match Player
		count int
	)
	for _, candidate := range candidates {
		if !strings.EqualFold(candidate.LastName, strings.TrimSpace(item.LastName)) {
			continue
		}
		if item.FirstName != "" && !strings.EqualFold(candidate.FirstName, strings.TrimSpace(item.FirstName)) {
			continue
		}
		if birthYear > 0 && candidate.BirthYear > 0 && candidate.BirthYear != birthYear {
			continue
		}
		match = candidate
		count++
	}
	if count != 1 {
		return Player{}, false, nil
	}
	return match, true, nil
}

func diff(current player.Player, candidate Player) player.FideUpdate {
	var update player.FideUpdate
	if candidate.FideID > 0 && candidate.FideID != current.FideID {
		update.FideID = candidate.FideID
	}
	if candidate.Federation != "" && !strings.EqualFold(candidate.Federation, strings.TrimSpace(current.Federation)) {
		update.Federation = candidate.Federation
	}
	if candidate.StandardRating > 0 && candidate.StandardRating != current.FideRating {
		update.FideRating = candidate.StandardRating
	}
	return update
}

func (s *Synchronizer) observe(outcome string) {
	if s.observer != nil {
		s.observer(outcome)
	}
}
