package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/riskibarqy/chess-ratings/internal/domain/fidematch"
	"github.com/riskibarqy/chess-ratings/internal/domain/player"
	"github.com/riskibarqy/chess-ratings/internal/domain/result"
	"github.com/riskibarqy/chess-ratings/internal/domain/tournament"
	playermock "github.com/riskibarqy/chess-ratings/internal/mocks/domain/player"
	resultmock "github.com/riskibarqy/chess-ratings/internal/mocks/domain/result"
	tournamentmock "github.com/riskibarqy/chess-ratings/internal/mocks/domain/tournament"
	"github.com/riskibarqy/chess-ratings/internal/platform/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type tournamentMocks struct {
	tournaments *tournamentmock.Repository
	players     *playermock.Repository
	results     *resultmock.Repository
	sync        *tournamentmock.FideSynchronizer
}

func newTournamentServiceWithMocks(t *testing.T, withSync bool) (*TournamentService, tournamentMocks) {
	m := tournamentMocks{
		tournaments: tournamentmock.NewRepository(t),
		players:     playermock.NewRepository(t),
		results:     resultmock.NewRepository(t),
	}
	cfg := TournamentServiceConfig{Pages: PageConfig{DefaultPerPage: 15, MaxPerPage: 100}}
	if withSync {
		m.sync = tournamentmock.NewFideSynchronizer(t)
		cfg.Synchronizer = m.sync
	}
	return NewTournamentService(m.tournaments, m.players, m.results, cfg), m
}

func tournamentPlayers(n int) []player.Player {
	out := make([]player.Player, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, player.Player{ID: fmt.Sprintf("p-%d", i), LastName: fmt.Sprintf("Player%02d", i)})
	}
	return out
}

func TestTournamentService_GetTournament_LoadsTotals(t *testing.T) {
	t.Parallel()

	service, m := newTournamentServiceWithMocks(t, false)
	id := "t-1"

	m.tournaments.On("GetByID", mock.Anything, id).Return(tournament.Tournament{ID: id, Name: "Open"}, true, nil).Once()
	m.players.On("Count", mock.Anything, player.Filter{TournamentID: id}).Return(42, nil).Once()
	m.results.On("CountByTournament", mock.Anything, id).Return(147, nil).Once()

	detail, err := service.GetTournament(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Open", detail.Tournament.Name)
	assert.Equal(t, 42, detail.PlayerCount)
	assert.Equal(t, 147, detail.GameCount)
}

func TestTournamentService_GetTournament_NotFound(t *testing.T) {
	t.Parallel()

	service, m := newTournamentServiceWithMocks(t, false)

	m.tournaments.On("GetByID", mock.Anything, "missing").Return(tournament.Tournament{}, false, nil).Once()
	m.players.On("Count", mock.Anything, mock.Anything).Return(0, nil).Maybe()
	m.results.On("CountByTournament", mock.Anything, "missing").Return(0, nil).Maybe()

	_, err := service.GetTournament(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTournamentService_ListResults_ComputesRoundSpans(t *testing.T) {
	t.Parallel()

	service, m := newTournamentServiceWithMocks(t, false)
	id := "t-1"
	games := []result.Game{
		{TournamentID: id, Round: 1, Board: 1},
		{TournamentID: id, Round: 1, Board: 2},
		{TournamentID: id, Round: 2, Board: 1},
		{TournamentID: id, Round: 2, Board: 2},
		{TournamentID: id, Round: 2, Board: 3},
		{TournamentID: id, Round: 3, Board: 1},
	}

	m.tournaments.On("GetByID", mock.Anything, id).Return(tournament.Tournament{ID: id}, true, nil).Once()
	m.results.On("CountByTournament", mock.Anything, id).Return(6, nil).Once()
	m.results.On("SliceByTournament", mock.Anything, id, 0, 15).Return(games, nil).Once()

	got, err := service.ListResults(context.Background(), id, pagination.Request{}, "/v1/tournaments/t-1/results", nil)
	require.NoError(t, err)

	rows := make([]int, 0, len(got.RoundSpans))
	for _, span := range got.RoundSpans {
		rows = append(rows, span.Rows)
	}
	assert.Equal(t, []int{2, 0, 3, 0, 0, 1}, rows)
	assert.Equal(t, "1-6", got.Page.Range())
}

func TestTournamentService_FideMatches_GroupsAndSamples(t *testing.T) {
	t.Parallel()

	service, m := newTournamentServiceWithMocks(t, false)
	id := "t-1"
	players := tournamentPlayers(5)
	players[0].FideID = 1000
	players[0].Federation = "GER"

	m.tournaments.On("GetByID", mock.Anything, id).Return(tournament.Tournament{ID: id}, true, nil).Once()
	m.players.On("Find", mock.Anything, player.Filter{TournamentID: id}, player.OrderByName).Return(players, nil).Once()

	report, err := service.FideMatches(context.Background(), id, false, 3)
	require.NoError(t, err)
	require.Len(t, report.Groups, 2)
	assert.Nil(t, report.Sync)
	assert.Equal(t, 5, report.Total)

	assert.Equal(t, fidematch.PresenceKey{HasExternalID: true, HasFederation: true}, report.Groups[0].Key)
	assert.Equal(t, 1, report.Groups[0].Count)

	bare := report.Groups[1]
	assert.Equal(t, fidematch.PresenceKey{}, bare.Key)
	assert.Equal(t, 4, bare.Count)
	require.Len(t, bare.Sample, 4)
	for _, entry := range bare.Sample {
		assert.False(t, entry.IsElision())
	}
}

func TestTournamentService_FideMatches_UpdateRefreshesFirst(t *testing.T) {
	t.Parallel()

	service, m := newTournamentServiceWithMocks(t, true)
	id := "t-1"
	syncedAt := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	m.tournaments.On("GetByID", mock.Anything, id).Return(tournament.Tournament{ID: id}, true, nil).Once()
	syncCall := m.sync.On("SyncTournament", mock.Anything, id).
		Return(tournament.SyncSummary{TournamentID: id, Players: 5, Matched: 4, Updated: 3, Unmatched: 1, SyncedAt: syncedAt}, nil).
		Once()
	m.players.On("Find", mock.Anything, player.Filter{TournamentID: id}, player.OrderByName).
		Return(tournamentPlayers(5), nil).
		Once().
		NotBefore(syncCall)

	report, err := service.FideMatches(context.Background(), id, true, 3)
	require.NoError(t, err)
	require.NotNil(t, report.Sync)
	assert.Equal(t, 3, report.Sync.Updated)
	require.NotNil(t, report.Tournament.FideSyncedAt)
	assert.True(t, report.Tournament.FideSyncedAt.Equal(syncedAt))

	require.Len(t, report.Groups, 1)
	sample := report.Groups[0].Sample
	require.Len(t, sample, 5)
	assert.True(t, sample[3].IsElision())
}

func TestTournamentService_FideMatches_PropagatesRefreshFailure(t *testing.T) {
	t.Parallel()

	service, m := newTournamentServiceWithMocks(t, true)
	id := "t-1"
	upstream := fmt.Errorf("%w: fide lookup failed", ErrDataSource)

	m.tournaments.On("GetByID", mock.Anything, id).Return(tournament.Tournament{ID: id}, true, nil).Once()
	m.sync.On("SyncTournament", mock.Anything, id).Return(tournament.SyncSummary{}, upstream).Once()

	_, err := service.FideMatches(context.Background(), id, true, 3)
	if !errors.Is(err, ErrDataSource) {
		t.Fatalf("expected ErrDataSource, got %v", err)
	}
}

func TestTournamentService_FideMatches_UpdateWithoutSynchronizer(t *testing.T) {
	t.Parallel()

	service, m := newTournamentServiceWithMocks(t, false)
	m.tournaments.On("GetByID", mock.Anything, "t-1").Return(tournament.Tournament{ID: "t-1"}, true, nil).Once()

	_, err := service.FideMatches(context.Background(), "t-1", true, 3)
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}
