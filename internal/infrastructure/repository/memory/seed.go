package memory

import (
	"time"

	"github.com/riskibarqy/chess-ratings/internal/domain/player"
	"github.com/riskibarqy/chess-ratings/internal/domain/result"
	"github.com/riskibarqy/chess-ratings/internal/domain/tournament"
)

const (
	TournamentIDSpringOpen = "de-spring-open-2025"
	TournamentIDCityBlitz  = "de-city-blitz-2025"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dob(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func SeedTournaments() []tournament.Tournament {
	return []tournament.Tournament{
		{
			ID:        TournamentIDSpringOpen,
			Name:      "Spring Open 2025",
			City:      "Hamburg",
			StartDate: date(2025, 4, 11),
			EndDate:   date(2025, 4, 13),
			Rounds:    3,
		},
		{
			ID:        TournamentIDCityBlitz,
			Name:      "City Blitz 2025",
			City:      "Bremen",
			StartDate: date(2025, 6, 7),
			EndDate:   date(2025, 6, 7),
			Rounds:    2,
		},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "de-0001", LastName: "Bauer", FirstName: "Jonas", FideID: 24601234, Federation: "GER", DateOfBirth: dob(1991, 3, 14), Rating: 2315, FideRating: 2298, Club: "SK Hamburg"},
		{ID: "de-0002", LastName: "Schneider", FirstName: "Lena", FideID: 24602345, Federation: "GER", DateOfBirth: dob(1998, 7, 2), Rating: 2204, FideRating: 2187, Club: "SK Hamburg"},
		{ID: "de-0003", LastName: "Fischer", FirstName: "Paul", FideID: 24603456, Federation: "GER", Rating: 2140, FideRating: 2152, Club: "Werder Bremen"},
		{ID: "de-0004", LastName: "Weber", FirstName: "Mia", Federation: "GER", DateOfBirth: dob(2005, 11, 23), Rating: 1987, Club: "HSK 1830"},
		{ID: "de-0005", LastName: "Meyer", FirstName: "Felix", Federation: "AUT", Rating: 2051, Club: "HSK 1830"},
		{ID: "de-0006", LastName: "Wagner", FirstName: "Sophie", DateOfBirth: dob(2001, 1, 9), Rating: 1876, Club: "Werder Bremen"},
		{ID: "de-0007", LastName: "Becker", FirstName: "Lukas", Rating: 1754, Club: "Altona"},
		{ID: "de-0008", LastName: "Hoffmann", FirstName: "Emma", Rating: 1702, Club: "Altona"},
		{ID: "de-0009", LastName: "Koch", FirstName: "Noah", FideID: 24609012, DateOfBirth: dob(1987, 5, 30), Rating: 2088, FideRating: 2071, Club: "Werder Bremen"},
		{ID: "de-0010", LastName: "Richter", FirstName: "Hannah", Rating: 1633, Club: "Delmenhorst"},
		{ID: "de-0011", LastName: "Klein", FirstName: "Elias", Federation: "GER", Rating: 1920, Club: "Delmenhorst"},
		{ID: "de-0012", LastName: "Wolf", FirstName: "Clara", DateOfBirth: dob(2009, 8, 17), Rating: 1540, Club: "Altona"},
	}
}

// SeedRosters lists the players registered for each tournament.
func SeedRosters() map[string][]string {
	return map[string][]string{
		TournamentIDSpringOpen: {"de-0001", "de-0002", "de-0003", "de-0004", "de-0005", "de-0006", "de-0007", "de-0008"},
		TournamentIDCityBlitz:  {"de-0003", "de-0006", "de-0009", "de-0010", "de-0011", "de-0012"},
	}
}

func SeedGames() []result.Game {
	names := make(map[string]string)
	for _, p := range SeedPlayers() {
		names[p.ID] = p.FullName()
	}

	game := func(tournamentID string, round, board int, white, black string, r result.Result) result.Game {
		return result.Game{
			TournamentID: tournamentID,
			Round:        round,
			Board:        board,
			WhiteID:      white,
			WhiteName:    names[white],
			BlackID:      black,
			BlackName:    names[black],
			Result:       r,
		}
	}

	return []result.Game{
		game(TournamentIDSpringOpen, 1, 1, "de-0001", "de-0005", result.WhiteWins),
		game(TournamentIDSpringOpen, 1, 2, "de-0006", "de-0002", result.BlackWins),
		game(TournamentIDSpringOpen, 1, 3, "de-0003", "de-0007", result.Draw),
		game(TournamentIDSpringOpen, 1, 4, "de-0008", "de-0004", result.BlackWins),
		game(TournamentIDSpringOpen, 2, 1, "de-0002", "de-0001", result.Draw),
		game(TournamentIDSpringOpen, 2, 2, "de-0004", "de-0003", result.WhiteWins),
		game(TournamentIDSpringOpen, 2, 3, "de-0005", "de-0008", result.WhiteWinsForfeit),
		game(TournamentIDSpringOpen, 2, 4, "de-0007", "de-0006", result.BlackWins),
		game(TournamentIDSpringOpen, 3, 1, "de-0001", "de-0004", result.WhiteWins),
		game(TournamentIDSpringOpen, 3, 2, "de-0003", "de-0002", result.BlackWins),
		game(TournamentIDSpringOpen, 3, 3, "de-0006", "de-0005", result.Draw),
		game(TournamentIDSpringOpen, 3, 4, "de-0008", "de-0007", result.Draw),
		game(TournamentIDCityBlitz, 1, 1, "de-0009", "de-0012", result.WhiteWins),
		game(TournamentIDCityBlitz, 1, 2, "de-0010", "de-0003", result.BlackWins),
		game(TournamentIDCityBlitz, 1, 3, "de-0011", "de-0006", result.Draw),
		game(TournamentIDCityBlitz, 2, 1, "de-0003", "de-0009", result.Draw),
		game(TournamentIDCityBlitz, 2, 2, "de-0006", "de-0010", result.WhiteWins),
		game(TournamentIDCityBlitz, 2, 3, "de-0012", "de-0011", result.BlackWinsForfeit),
	}
}
