package httpapi

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/chess-ratings/internal/domain/fidematch"
	"github.com/riskibarqy/chess-ratings/internal/domain/player"
	"github.com/riskibarqy/chess-ratings/internal/domain/result"
	"github.com/riskibarqy/chess-ratings/internal/domain/tournament"
	"github.com/riskibarqy/chess-ratings/internal/platform/logging"
	"github.com/riskibarqy/chess-ratings/internal/platform/pagination"
	"github.com/riskibarqy/chess-ratings/internal/platform/rowspan"
	"github.com/riskibarqy/chess-ratings/internal/usecase"
)

const dateLayout = "2006-01-02"

type Handler struct {
	playerService     *usecase.PlayerService
	tournamentService *usecase.TournamentService
	defaultPerPage    int
	maxSamples        int
	logger            *logging.Logger
	validator         *validator.Validate
}

// HandlerConfig carries request defaults applied before the use cases see a
// request.
type HandlerConfig struct {
	DefaultPerPage int
	MaxSamples     int
	Logger         *logging.Logger
}

func NewHandler(
	playerService *usecase.PlayerService,
	tournamentService *usecase.TournamentService,
	cfg HandlerConfig,
) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	maxSamples := cfg.MaxSamples
	if maxSamples <= 0 {
		maxSamples = fidematch.DefaultMaxSamples
	}

	return &Handler{
		playerService:     playerService,
		tournamentService: tournamentService,
		defaultPerPage:    cfg.DefaultPerPage,
		maxSamples:        maxSamples,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type paginationDTO struct {
	Page             int    `json:"page"`
	PerPage          int    `json:"per_page"`
	Total            int    `json:"total"`
	Range            string `json:"range"`
	HasMultiplePages bool   `json:"has_multiple_pages"`
	NextURL          string `json:"next_url,omitempty"`
	PrevURL          string `json:"prev_url,omitempty"`
}

type pageDTO[T any] struct {
	Items      []T           `json:"items"`
	Pagination paginationDTO `json:"pagination"`
}

func newPageDTO[S, T any](page pagination.Page[S], convert func(int, S) T) pageDTO[T] {
	items := make([]T, 0, len(page.Items))
	for i, item := range page.Items {
		items = append(items, convert(i, item))
	}

	meta := paginationDTO{
		Page:             page.Page,
		PerPage:          page.PerPage,
		Total:            page.Total,
		HasMultiplePages: page.HasMultiplePages(),
		NextURL:          page.NextURL(),
		PrevURL:          page.PrevURL(),
	}
	if page.Total > 0 {
		meta.Range = page.Range()
	}

	return pageDTO[T]{Items: items, Pagination: meta}
}

type playerDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	LastName    string `json:"last_name"`
	FirstName   string `json:"first_name,omitempty"`
	FideID      int64  `json:"fide_id,omitempty"`
	Federation  string `json:"federation,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Rating      int    `json:"rating"`
	FideRating  int    `json:"fide_rating,omitempty"`
	Club        string `json:"club,omitempty"`
}

func playerToDTO(p player.Player) playerDTO {
	out := playerDTO{
		ID:         p.ID,
		Name:       p.FullName(),
		LastName:   p.LastName,
		FirstName:  p.FirstName,
		FideID:     p.FideID,
		Federation: p.Federation,
		Rating:     p.Rating,
		FideRating: p.FideRating,
		Club:       p.Club,
	}
	if p.HasDateOfBirth() {
		out.DateOfBirth = p.DateOfBirth.Format(dateLayout)
	}
	return out
}

type rankedPlayerDTO struct {
	Rank int `json:"rank"`
	playerDTO
}

type tournamentDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	City         string `json:"city,omitempty"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date,omitempty"`
	Rounds       int    `json:"rounds"`
	FideSyncedAt string `json:"fide_synced_at,omitempty"`
}

func tournamentToDTO(t tournament.Tournament) tournamentDTO {
	out := tournamentDTO{
		ID:        t.ID,
		Name:      t.Name,
		City:      t.City,
		StartDate: t.StartDate.Format(dateLayout),
		Rounds:    t.Rounds,
	}
	if !t.EndDate.IsZero() {
		out.EndDate = t.EndDate.Format(dateLayout)
	}
	if t.IsFideSynced() {
		out.FideSyncedAt = t.FideSyncedAt.UTC().Format(time.RFC3339)
	}
	return out
}

type tournamentDetailDTO struct {
	tournamentDTO
	PlayerCount int `json:"player_count"`
	GameCount   int `json:"game_count"`
}

type gameDTO struct {
	Round int `json:"round"`
	// RoundSpan is the number of rows the round cell covers; 0 marks a row
	// continuing the round above it.
	RoundSpan   int     `json:"round_span"`
	Board       int     `json:"board"`
	WhiteID     string  `json:"white_id"`
	WhiteName   string  `json:"white_name"`
	BlackID     string  `json:"black_id"`
	BlackName   string  `json:"black_name"`
	Result      string  `json:"result"`
	WhitePoints float64 `json:"white_points"`
	BlackPoints float64 `json:"black_points"`
	Forfeit     bool    `json:"forfeit,omitempty"`
}

func gameToDTO(g result.Game, span rowspan.Span[int]) gameDTO {
	white, black := g.Result.Points()
	return gameDTO{
		Round:       g.Round,
		RoundSpan:   span.Rows,
		Board:       g.Board,
		WhiteID:     g.WhiteID,
		WhiteName:   g.WhiteName,
		BlackID:     g.BlackID,
		BlackName:   g.BlackName,
		Result:      string(g.Result),
		WhitePoints: white,
		BlackPoints: black,
		Forfeit:     g.Result.IsForfeit(),
	}
}

type fideSampleEntryDTO struct {
	Elision bool       `json:"elision,omitempty"`
	Player  *playerDTO `json:"player,omitempty"`
}

type fideMatchGroupDTO struct {
	Key            string               `json:"key"`
	HasFideID      bool                 `json:"has_fide_id"`
	HasFederation  bool                 `json:"has_federation"`
	HasDateOfBirth bool                 `json:"has_date_of_birth"`
	Count          int                  `json:"count"`
	Sample         []fideSampleEntryDTO `json:"sample"`
}

type fideSyncSummaryDTO struct {
	Players   int    `json:"players"`
	Matched   int    `json:"matched"`
	Updated   int    `json:"updated"`
	Unmatched int    `json:"unmatched"`
	SyncedAt  string `json:"synced_at"`
}

type fideMatchReportDTO struct {
	Tournament tournamentDTO       `json:"tournament"`
	Total      int                 `json:"total"`
	MaxSamples int                 `json:"max_samples"`
	Groups     []fideMatchGroupDTO `json:"groups"`
	Sync       *fideSyncSummaryDTO `json:"sync,omitempty"`
}

func fideMatchReportToDTO(report usecase.FideMatchReport, maxSamples int) fideMatchReportDTO {
	groups := make([]fideMatchGroupDTO, 0, len(report.Groups))
	for _, g := range report.Groups {
		sample := make([]fideSampleEntryDTO, 0, len(g.Sample))
		for _, entry := range g.Sample {
			p, ok := entry.Value()
			if !ok {
				sample = append(sample, fideSampleEntryDTO{Elision: true})
				continue
			}
			item := playerToDTO(p)
			sample = append(sample, fideSampleEntryDTO{Player: &item})
		}
		groups = append(groups, fideMatchGroupDTO{
			Key:            g.Key.String(),
			HasFideID:      g.Key.HasExternalID,
			HasFederation:  g.Key.HasFederation,
			HasDateOfBirth: g.Key.HasDateOfBirth,
			Count:          g.Count,
			Sample:         sample,
		})
	}

	out := fideMatchReportDTO{
		Tournament: tournamentToDTO(report.Tournament),
		Total:      report.Total,
		MaxSamples: maxSamples,
		Groups:     groups,
	}
	if report.Sync != nil {
		out.Sync = &fideSyncSummaryDTO{
			Players:   report.Sync.Players,
			Matched:   report.Sync.Matched,
			Updated:   report.Sync.Updated,
			Unmatched: report.Sync.Unmatched,
			SyncedAt:  report.Sync.SyncedAt.UTC().Format(time.RFC3339),
		}
	}
	return out
}
