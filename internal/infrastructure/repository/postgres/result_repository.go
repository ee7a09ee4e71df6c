package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/chess-ratings/internal/domain/result"
	qb "github.com/riskibarqy/chess-ratings/internal/platform/querybuilder"
)

type ResultRepository struct {
	db *sqlx.DB
}

var gameSelectColumns = []string{
	"g.tournament_public_id",
	"g.round",
	"g.board",
	"g.white_public_id",
	"w.last_name || ', ' || w.first_name AS white_name",
	"g.black_public_id",
	"b.last_name || ', ' || b.first_name AS black_name",
	"g.result",
}

func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

func (r *ResultRepository) CountByTournament(ctx context.Context, tournamentID string) (int, error) {
	query, args, err := qb.Count().From("games g").
		Where(qb.Eq("g.tournament_public_id", tournamentID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count games query: %w", err)
	}

	var count int
	if err := withStatementRetry(ctx, func(ctx context.Context) error {
		return r.db.GetContext(ctx, &count, query, args...)
	}); err != nil {
		return 0, fmt.Errorf("count games: %w", err)
	}
	return count, nil
}

func (r *ResultRepository) SliceByTournament(ctx context.Context, tournamentID string, offset, limit int) ([]result.Game, error) {
	query, args, err := qb.Select(gameSelectColumns...).From("games g").
		Join("JOIN players w ON w.public_id = g.white_public_id").
		Join("JOIN players b ON b.public_id = g.black_public_id").
		Where(qb.Eq("g.tournament_public_id", tournamentID)).
		OrderBy("g.round", "g.board").
		Limit(limit).
		Offset(offset).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build slice games query: %w", err)
	}

	var rows []gameTableModel
	if err := withStatementRetry(ctx, func(ctx context.Context) error {
		rows = rows[:0]
		return r.db.SelectContext(ctx, &rows, query, args...)
	}); err != nil {
		return nil, fmt.Errorf("select games: %w", err)
	}

	out := make([]result.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
