package result

import "context"

// Repository describes game persistence needs from use cases.
// SliceByTournament orders by round, then board.
type Repository interface {
	CountByTournament(ctx context.Context, tournamentID string) (int, error)
	SliceByTournament(ctx context.Context, tournamentID string, offset, limit int) ([]Game, error)
}
