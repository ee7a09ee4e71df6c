package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/chess-ratings/internal/domain/player"
	"github.com/riskibarqy/chess-ratings/internal/domain/result"
	"github.com/riskibarqy/chess-ratings/internal/domain/tournament"
)

type playerTableModel struct {
	PublicID    string         `db:"public_id"`
	LastName    string         `db:"last_name"`
	FirstName   string         `db:"first_name"`
	FideID      sql.NullInt64  `db:"fide_id"`
	Federation  sql.NullString `db:"federation"`
	DateOfBirth sql.NullTime   `db:"date_of_birth"`
	Rating      int            `db:"rating"`
	FideRating  sql.NullInt32  `db:"fide_rating"`
	Club        string         `db:"club"`
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:          m.PublicID,
		LastName:    m.LastName,
		FirstName:   m.FirstName,
		FideID:      nullInt64ToInt64(m.FideID),
		Federation:  nullStringToString(m.Federation),
		DateOfBirth: nullTimeToPtr(m.DateOfBirth),
		Rating:      m.Rating,
		FideRating:  nullInt32ToInt(m.FideRating),
		Club:        m.Club,
	}
}

type tournamentTableModel struct {
	PublicID     string       `db:"public_id"`
	Name         string       `db:"name"`
	City         string       `db:"city"`
	StartDate    time.Time    `db:"start_date"`
	EndDate      sql.NullTime `db:"end_date"`
	Rounds       int          `db:"rounds"`
	FideSyncedAt sql.NullTime `db:"fide_synced_at"`
}

func (m tournamentTableModel) toDomain() tournament.Tournament {
	t := tournament.Tournament{
		ID:           m.PublicID,
		Name:         m.Name,
		City:         m.City,
		StartDate:    m.StartDate.UTC(),
		Rounds:       m.Rounds,
		FideSyncedAt: nullTimeToPtr(m.FideSyncedAt),
	}
	if m.EndDate.Valid {
		t.EndDate = m.EndDate.Time.UTC()
	}
	return t
}

type gameTableModel struct {
	TournamentID string `db:"tournament_public_id"`
	Round        int    `db:"round"`
	Board        int    `db:"board"`
	WhiteID      string `db:"white_public_id"`
	WhiteName    string `db:"white_name"`
	BlackID      string `db:"black_public_id"`
	BlackName    string `db:"black_name"`
	Result       string `db:"result"`
}

func (m gameTableModel) toDomain() result.Game {
	return result.Game{
		TournamentID: m.TournamentID,
		Round:        m.Round,
		Board:        m.Board,
		WhiteID:      m.WhiteID,
		WhiteName:    m.WhiteName,
		BlackID:      m.BlackID,
		BlackName:    m.BlackName,
		Result:       result.Result(m.Result),
	}
}
