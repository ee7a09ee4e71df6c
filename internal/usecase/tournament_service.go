package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/chess-ratings/internal/domain/fidematch"
	"github.com/riskibarqy/chess-ratings/internal/domain/player"
	"github.com/riskibarqy/chess-ratings/internal/domain/result"
	"github.com/riskibarqy/chess-ratings/internal/domain/tournament"
	"github.com/riskibarqy/chess-ratings/internal/platform/logging"
	"github.com/riskibarqy/chess-ratings/internal/platform/pagination"
	"github.com/riskibarqy/chess-ratings/internal/platform/rowspan"
)

type TournamentService struct {
	tournamentRepo tournament.Repository
	playerRepo     player.Repository
	resultRepo     result.Repository
	synchronizer   tournament.FideSynchronizer
	pages          PageConfig
	logger         *logging.Logger
}

type TournamentServiceConfig struct {
	Pages PageConfig
	// Synchronizer is optional; without it FIDE refreshes are unavailable.
	Synchronizer tournament.FideSynchronizer
	Logger       *logging.Logger
}

func NewTournamentService(
	tournamentRepo tournament.Repository,
	playerRepo player.Repository,
	resultRepo result.Repository,
	cfg TournamentServiceConfig,
) *TournamentService {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	return &TournamentService{
		tournamentRepo: tournamentRepo,
		playerRepo:     playerRepo,
		resultRepo:     resultRepo,
		synchronizer:   cfg.Synchronizer,
		pages:          cfg.Pages,
		logger:         logger,
	}
}

// TournamentDetail is a tournament with its participation totals.
type TournamentDetail struct {
	Tournament  tournament.Tournament
	PlayerCount int
	GameCount   int
}

// ResultsPage is one page of games plus the round span of every row.
type ResultsPage struct {
	Page       pagination.Page[result.Game]
	RoundSpans []rowspan.Span[int]
}

// FideMatchGroup is one presence bucket of the match report.
type FideMatchGroup struct {
	Key    fidematch.PresenceKey
	Count  int
	Sample []fidematch.SampleEntry[player.Player]
}

// FideMatchReport shows how a tournament's players are cross-referenced
// with the international list.
type FideMatchReport struct {
	Tournament tournament.Tournament
	Total      int
	Groups     []FideMatchGroup
	// Sync is set when the report was produced in update mode.
	Sync *tournament.SyncSummary
}

func (s *TournamentService) ListTournaments(ctx context.Context, req pagination.Request, basePath string, query url.Values) (pagination.Page[tournament.Tournament], error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.ListTournaments")
	defer span.End()

	src := pagination.SourceFuncs[tournament.Tournament]{
		CountFunc: s.tournamentRepo.Count,
		SliceFunc: s.tournamentRepo.Slice,
	}
	page, err := pagination.Fetch[tournament.Tournament](ctx, src, s.pages.normalize(req), basePath, query)
	if err != nil {
		return pagination.Page[tournament.Tournament]{}, fmt.Errorf("list tournaments: %w", err)
	}
	return page, nil
}

// GetTournament loads the tournament and its player and game totals
// concurrently.
func (s *TournamentService) GetTournament(ctx context.Context, tournamentID string) (TournamentDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.GetTournament")
	defer span.End()

	tournamentID = strings.TrimSpace(tournamentID)
	if tournamentID == "" {
		return TournamentDetail{}, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}

	var (
		detail TournamentDetail
		exists bool
	)
	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		var err error
		detail.Tournament, exists, err = s.tournamentRepo.GetByID(ctx, tournamentID)
		if err != nil {
			return fmt.Errorf("get tournament: %w", err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		detail.PlayerCount, err = s.playerRepo.Count(ctx, player.Filter{TournamentID: tournamentID})
		if err != nil {
			return fmt.Errorf("count tournament players: %w", err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		detail.GameCount, err = s.resultRepo.CountByTournament(ctx, tournamentID)
		if err != nil {
			return fmt.Errorf("count tournament games: %w", err)
		}
		return nil
	})
	if err := p.Wait(); err != nil {
		return TournamentDetail{}, err
	}
	if !exists {
		return TournamentDetail{}, fmt.Errorf("%w: id=%s", ErrTournamentNotFound, tournamentID)
	}

	return detail, nil
}

func (s *TournamentService) ListResults(ctx context.Context, tournamentID string, req pagination.Request, basePath string, query url.Values) (ResultsPage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.ListResults")
	defer span.End()

	if _, err := s.requireTournament(ctx, tournamentID); err != nil {
		return ResultsPage{}, err
	}

	src := pagination.SourceFuncs[result.Game]{
		CountFunc: func(ctx context.Context) (int, error) {
			return s.resultRepo.CountByTournament(ctx, tournamentID)
		},
		SliceFunc: func(ctx context.Context, offset, limit int) ([]result.Game, error) {
			return s.resultRepo.SliceByTournament(ctx, tournamentID, offset, limit)
		},
	}
	page, err := pagination.Fetch[result.Game](ctx, src, s.pages.normalize(req), basePath, query)
	if err != nil {
		return ResultsPage{}, fmt.Errorf("list results: %w", err)
	}

	return ResultsPage{
		Page:       page,
		RoundSpans: rowspan.All(page.Items, result.RoundKey),
	}, nil
}

// FideMatches groups the tournament's players by which identifying fields
// they carry. With update set, the tournament's FIDE data is refreshed
// first and a refresh failure is returned as is.
func (s *TournamentService) FideMatches(ctx context.Context, tournamentID string, update bool, maxSamples int) (FideMatchReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.FideMatches")
	defer span.End()

	t, err := s.requireTournament(ctx, tournamentID)
	if err != nil {
		return FideMatchReport{}, err
	}
	if maxSamples < 0 {
		return FideMatchReport{}, fmt.Errorf("%w: max samples must not be negative", ErrInvalidInput)
	}

	report := FideMatchReport{Tournament: t}
	if update {
		if s.synchronizer == nil {
			return FideMatchReport{}, fmt.Errorf("%w: fide sync is not configured", ErrDependencyUnavailable)
		}
		summary, err := s.synchronizer.SyncTournament(ctx, t.ID)
		if err != nil {
			return FideMatchReport{}, fmt.Errorf("refresh fide data for tournament=%s: %w", t.ID, err)
		}
		s.logger.InfoContext(ctx, "fide data refreshed",
			"tournament_id", t.ID,
			"players", summary.Players,
			"matched", summary.Matched,
			"updated", summary.Updated,
			"unmatched", summary.Unmatched,
		)
		report.Sync = &summary
		if !summary.SyncedAt.IsZero() {
			report.Tournament.FideSyncedAt = &summary.SyncedAt
		}
	}

	players, err := s.playerRepo.Find(ctx, player.Filter{TournamentID: t.ID}, player.OrderByName)
	if err != nil {
		return FideMatchReport{}, fmt.Errorf("find tournament players: %w", err)
	}

	groups := fidematch.ComputeGroups(players, fidematch.PlayerPresence())
	report.Total = len(players)
	report.Groups = make([]FideMatchGroup, 0, len(groups))
	for _, g := range groups {
		report.Groups = append(report.Groups, FideMatchGroup{
			Key:    g.Key,
			Count:  g.Count,
			Sample: fidematch.Sample(g, maxSamples),
		})
	}

	return report, nil
}

func (s *TournamentService) requireTournament(ctx context.Context, tournamentID string) (tournament.Tournament, error) {
	tournamentID = strings.TrimSpace(tournamentID)
	if tournamentID == "" {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}

	t, exists, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("get tournament: %w", err)
	}
	if !exists {
		return tournament.Tournament{}, fmt.Errorf("%w: id=%s", ErrTournamentNotFound, tournamentID)
	}
	return t, nil
}
