package tournament

import (
	"context"
	"time"
)

// Repository describes tournament persistence needs from use cases.
// Slice returns tournaments newest start date first.
type Repository interface {
	Count(ctx context.Context) (int, error)
	Slice(ctx context.Context, offset, limit int) ([]Tournament, error)
	GetByID(ctx context.Context, tournamentID string) (Tournament, bool, error)
	MarkFideSynced(ctx context.Context, tournamentID string, syncedAt time.Time) error
}

// SyncSummary reports what a FIDE refresh did to a tournament's players.
type SyncSummary struct {
	TournamentID string
	Players      int
	Matched      int
	Updated      int
	Unmatched    int
	SyncedAt     time.Time
}

// FideSynchronizer refreshes a tournament's international cross-reference data.
type FideSynchronizer interface {
	SyncTournament(ctx context.Context, tournamentID string) (SyncSummary, error)
}
