package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/chess-ratings/internal/domain/player"
	qb "github.com/riskibarqy/chess-ratings/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

var playerSelectColumns = []string{
	"p.public_id",
	"p.last_name",
	"p.first_name",
	"p.fide_id",
	"p.federation",
	"p.date_of_birth",
	"p.rating",
	"p.fide_rating",
	"p.club",
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) Find(ctx context.Context, filter player.Filter, order player.Order) ([]player.Player, error) {
	query, args, err := filteredPlayers(qb.Select(playerSelectColumns...), filter).
		OrderBy(playerOrderBy(order)...).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build find players query: %w", err)
	}

	return r.selectPlayers(ctx, query, args)
}

func (r *PlayerRepository) Count(ctx context.Context, filter player.Filter) (int, error) {
	query, args, err := filteredPlayers(qb.Count(), filter).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count players query: %w", err)
	}

	var count int
	if err := withStatementRetry(ctx, func(ctx context.Context) error {
		return r.db.GetContext(ctx, &count, query, args...)
	}); err != nil {
		return 0, fmt.Errorf("count players: %w", err)
	}

	return count, nil
}

func (r *PlayerRepository) Slice(ctx context.Context, filter player.Filter, order player.Order, offset, limit int) ([]player.Player, error) {
	query, args, err := filteredPlayers(qb.Select(playerSelectColumns...), filter).
		OrderBy(playerOrderBy(order)...).
		Limit(limit).
		Offset(offset).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build slice players query: %w", err)
	}

	return r.selectPlayers(ctx, query, args)
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players p").
		Where(
			qb.Eq("p.public_id", playerID),
			qb.IsNull("p.deleted_at"),
		).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build get player by id query: %w", err)
	}

	var row playerTableModel
	if err := withStatementRetry(ctx, func(ctx context.Context) error {
		return r.db.GetContext(ctx, &row, query, args...)
	}); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player by id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *PlayerRepository) UpdateFide(ctx context.Context, playerID string, update player.FideUpdate) error {
	query, args, err := qb.Update("players").
		SetExpr("fide_id", "COALESCE(?, fide_id)", int64ToNull(update.FideID)).
		SetExpr("federation", "COALESCE(?, federation)", stringToNull(update.Federation)).
		SetExpr("fide_rating", "COALESCE(?, fide_rating)", int64ToNull(int64(update.FideRating))).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", playerID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update player fide query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update player fide: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("update player fide: player=%s not found", playerID)
	}

	return nil
}

func (r *PlayerRepository) selectPlayers(ctx context.Context, query string, args []any) ([]player.Player, error) {
	var rows []playerTableModel
	if err := withStatementRetry(ctx, func(ctx context.Context) error {
		rows = rows[:0]
		return r.db.SelectContext(ctx, &rows, query, args...)
	}); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func filteredPlayers(b *qb.SelectBuilder, filter player.Filter) *qb.SelectBuilder {
	b = b.From("players p").Where(qb.IsNull("p.deleted_at"))
	if filter.TournamentID != "" {
		b = b.Join("JOIN tournament_players tp ON tp.player_public_id = p.public_id").
			Where(qb.Eq("tp.tournament_public_id", filter.TournamentID))
	}
	if filter.Federation != "" {
		b = b.Where(qb.EqFold("p.federation", filter.Federation))
	}
	if filter.NamePrefix != "" {
		b = b.Where(qb.HasPrefix("p.last_name", filter.NamePrefix))
	}
	return b
}

func playerOrderBy(order player.Order) []string {
	byName := []string{"LOWER(p.last_name)", "LOWER(p.first_name)", "p.public_id"}
	if order == player.OrderByRating {
		return append([]string{"p.rating DESC"}, byName...)
	}
	return byName
}
