package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/chess-ratings/internal/domain/tournament"
	qb "github.com/riskibarqy/chess-ratings/internal/platform/querybuilder"
)

type TournamentRepository struct {
	db *sqlx.DB
}

var tournamentSelectColumns = []string{
	"public_id",
	"name",
	"city",
	"start_date",
	"end_date",
	"rounds",
	"fide_synced_at",
}

func NewTournamentRepository(db *sqlx.DB) *TournamentRepository {
	return &TournamentRepository{db: db}
}

func (r *TournamentRepository) Count(ctx context.Context) (int, error) {
	query, args, err := qb.Count().From("tournaments").Where(qb.IsNull("deleted_at")).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count tournaments query: %w", err)
	}

	var count int
	if err := withStatementRetry(ctx, func(ctx context.Context) error {
		return r.db.GetContext(ctx, &count, query, args...)
	}); err != nil {
		return 0, fmt.Errorf("count tournaments: %w", err)
	}
	return count, nil
}

func (r *TournamentRepository) Slice(ctx context.Context, offset, limit int) ([]tournament.Tournament, error) {
	query, args, err := qb.Select(tournamentSelectColumns...).From("tournaments").
		Where(qb.IsNull("deleted_at")).
		OrderBy("start_date DESC", "public_id").
		Limit(limit).
		Offset(offset).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build slice tournaments query: %w", err)
	}

	var rows []tournamentTableModel
	if err := withStatementRetry(ctx, func(ctx context.Context) error {
		rows = rows[:0]
		return r.db.SelectContext(ctx, &rows, query, args...)
	}); err != nil {
		return nil, fmt.Errorf("select tournaments: %w", err)
	}

	out := make([]tournament.Tournament, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *TournamentRepository) GetByID(ctx context.Context, tournamentID string) (tournament.Tournament, bool, error) {
	query, args, err := qb.Select(tournamentSelectColumns...).From("tournaments").
		Where(
			qb.Eq("public_id", tournamentID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return tournament.Tournament{}, false, fmt.Errorf("build get tournament by id query: %w", err)
	}

	var row tournamentTableModel
	if err := withStatementRetry(ctx, func(ctx context.Context) error {
		return r.db.GetContext(ctx, &row, query, args...)
	}); err != nil {
		if isNotFound(err) {
			return tournament.Tournament{}, false, nil
		}
		return tournament.Tournament{}, false, fmt.Errorf("get tournament by id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *TournamentRepository) MarkFideSynced(ctx context.Context, tournamentID string, syncedAt time.Time) error {
	query, args, err := qb.Update("tournaments").
		Set("fide_synced_at", syncedAt.UTC()).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", tournamentID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build mark tournament synced query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("mark tournament synced: %w", err)
	}
	return nil
}
