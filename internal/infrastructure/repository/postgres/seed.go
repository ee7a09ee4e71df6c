package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/chess-ratings/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo dataset into an empty database.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM tournaments WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count tournaments for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, p := range memory.SeedPlayers() {
		if err := namedExec(ctx, tx, `
INSERT INTO players (public_id, last_name, first_name, fide_id, federation, date_of_birth, rating, fide_rating, club)
VALUES (:public_id, :last_name, :first_name, :fide_id, :federation, :date_of_birth, :rating, :fide_rating, :club)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":     p.ID,
			"last_name":     p.LastName,
			"first_name":    p.FirstName,
			"fide_id":       int64ToNull(p.FideID),
			"federation":    stringToNull(p.Federation),
			"date_of_birth": timePtrToNull(p.DateOfBirth),
			"rating":        p.Rating,
			"fide_rating":   int64ToNull(int64(p.FideRating)),
			"club":          p.Club,
		}); err != nil {
			return fmt.Errorf("seed player %s: %w", p.ID, err)
		}
	}

	for _, t := range memory.SeedTournaments() {
		if err := namedExec(ctx, tx, `
INSERT INTO tournaments (public_id, name, city, start_date, end_date, rounds)
VALUES (:public_id, :name, :city, :start_date, :end_date, :rounds)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":  t.ID,
			"name":       t.Name,
			"city":       t.City,
			"start_date": t.StartDate,
			"end_date":   timePtrToNull(&t.EndDate),
			"rounds":     t.Rounds,
		}); err != nil {
			return fmt.Errorf("seed tournament %s: %w", t.ID, err)
		}
	}

	for tournamentID, playerIDs := range memory.SeedRosters() {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO tournament_players (tournament_public_id, player_public_id)
SELECT $1, unnest($2::text[])
ON CONFLICT DO NOTHING`, tournamentID, pq.Array(playerIDs)); err != nil {
			return fmt.Errorf("seed roster %s: %w", tournamentID, err)
		}
	}

	for _, g := range memory.SeedGames() {
		if err := namedExec(ctx, tx, `
INSERT INTO games (tournament_public_id, round, board, white_public_id, black_public_id, result)
VALUES (:tournament_public_id, :round, :board, :white_public_id, :black_public_id, :result)
ON CONFLICT (tournament_public_id, round, board) DO NOTHING`, map[string]any{
			"tournament_public_id": g.TournamentID,
			"round":                g.Round,
			"board":                g.Board,
			"white_public_id":      g.WhiteID,
			"black_public_id":      g.BlackID,
			"result":               string(g.Result),
		}); err != nil {
			return fmt.Errorf("seed game %s r%d b%d: %w", g.TournamentID, g.Round, g.Board, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}

func namedExec(ctx context.Context, tx *sqlx.Tx, query string, arg map[string]any) error {
	sqlQuery, args, err := sqlx.Named(query, arg)
	if err != nil {
		return fmt.Errorf("bind query: %w", err)
	}
	_, err = tx.ExecContext(ctx, tx.Rebind(sqlQuery), args...)
	return err
}
