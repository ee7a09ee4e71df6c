package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/riskibarqy/chess-ratings/internal/domain/player"
	"github.com/riskibarqy/chess-ratings/internal/platform/pagination"
)

type PlayerService struct {
	playerRepo player.Repository
	pages      PageConfig
}

func NewPlayerService(playerRepo player.Repository, pages PageConfig) *PlayerService {
	return &PlayerService{
		playerRepo: playerRepo,
		pages:      pages,
	}
}

// ListRatingList returns one page of players ordered by rating.
func (s *PlayerService) ListRatingList(
	ctx context.Context,
	filter player.Filter,
	req pagination.Request,
	basePath string,
	query url.Values,
) (pagination.Page[player.Player], error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListRatingList")
	defer span.End()

	filter.Federation = strings.ToUpper(strings.TrimSpace(filter.Federation))
	filter.NamePrefix = strings.TrimSpace(filter.NamePrefix)
	if filter.Federation != "" && len(filter.Federation) != 3 {
		return pagination.Page[player.Player]{}, fmt.Errorf("%w: federation must be a 3-letter code", ErrInvalidInput)
	}

	src := pagination.SourceFuncs[player.Player]{
		CountFunc: func(ctx context.Context) (int, error) {
			return s.playerRepo.Count(ctx, filter)
		},
		SliceFunc: func(ctx context.Context, offset, limit int) ([]player.Player, error) {
			return s.playerRepo.Slice(ctx, filter, player.OrderByRating, offset, limit)
		},
	}

	page, err := pagination.Fetch[player.Player](ctx, src, s.pages.normalize(req), basePath, query)
	if err != nil {
		return pagination.Page[player.Player]{}, fmt.Errorf("list rating list: %w", err)
	}
	return page, nil
}

func (s *PlayerService) GetPlayer(ctx context.Context, playerID string) (player.Player, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	p, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: id=%s", ErrPlayerNotFound, playerID)
	}

	return p, nil
}
