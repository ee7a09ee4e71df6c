package usecase

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/riskibarqy/chess-ratings/internal/domain/player"
	playermock "github.com/riskibarqy/chess-ratings/internal/mocks/domain/player"
	"github.com/riskibarqy/chess-ratings/internal/platform/pagination"
	"github.com/stretchr/testify/mock"
)

func TestPlayerService_ListRatingList_ClampsOutOfRangePage(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := playermock.NewRepository(t)
	service := NewPlayerService(repo, PageConfig{DefaultPerPage: 15, MaxPerPage: 100})

	filter := player.Filter{Federation: "GER"}
	repo.On("Count", mock.Anything, filter).Return(100, nil).Once()
	repo.On("Slice", mock.Anything, filter, player.OrderByRating, 90, 15).
		Return([]player.Player{{ID: "p-91"}}, nil).
		Once()

	page, err := service.ListRatingList(ctx, player.Filter{Federation: " ger "},
		pagination.Request{Page: 8, PerPage: 15}, "/v1/players", url.Values{"federation": {"GER"}})
	if err != nil {
		t.Fatalf("list rating list: %v", err)
	}
	if page.Page != 7 || page.Total != 100 {
		t.Fatalf("unexpected page metadata: page=%d total=%d", page.Page, page.Total)
	}
	if page.HasNextPage() || !page.HasPrevPage() {
		t.Fatalf("unexpected navigation on last page")
	}
}

func TestPlayerService_ListRatingList_CapsPerPage(t *testing.T) {
	t.Parallel()

	repo := playermock.NewRepository(t)
	service := NewPlayerService(repo, PageConfig{DefaultPerPage: 15, MaxPerPage: 50})

	repo.On("Count", mock.Anything, player.Filter{}).Return(500, nil).Once()
	repo.On("Slice", mock.Anything, player.Filter{}, player.OrderByRating, 0, 50).Return([]player.Player{}, nil).Once()

	page, err := service.ListRatingList(context.Background(), player.Filter{}, pagination.Request{Page: 1, PerPage: 1000}, "/v1/players", nil)
	if err != nil {
		t.Fatalf("list rating list: %v", err)
	}
	if page.PerPage != 50 {
		t.Fatalf("expected per page capped to 50, got %d", page.PerPage)
	}
}

func TestPlayerService_ListRatingList_RejectsBadFederation(t *testing.T) {
	t.Parallel()

	service := NewPlayerService(playermock.NewRepository(t), PageConfig{})
	_, err := service.ListRatingList(context.Background(), player.Filter{Federation: "GERMANY"}, pagination.Request{}, "/v1/players", nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPlayerService_GetPlayer(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := playermock.NewRepository(t)
	service := NewPlayerService(repo, PageConfig{})

	repo.On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), "p-1").
		Return(player.Player{ID: "p-1", LastName: "Tal"}, true, nil).
		Once()
	repo.On("GetByID", mock.Anything, "missing").
		Return(player.Player{}, false, nil).
		Once()

	got, err := service.GetPlayer(ctx, " p-1 ")
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if got.LastName != "Tal" {
		t.Fatalf("unexpected player %+v", got)
	}

	if _, err := service.GetPlayer(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := service.GetPlayer(ctx, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
