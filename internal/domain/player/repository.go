package player

import "context"

// Order selects the sort applied by Find and Slice.
type Order string

const (
	// OrderByName sorts by last name, then first name.
	OrderByName Order = "name"
	// OrderByRating sorts by rating descending, then name.
	OrderByRating Order = "rating"
)

// Filter narrows player queries. Empty fields are ignored.
type Filter struct {
	TournamentID string
	Federation   string
	NamePrefix   string
}

// Repository describes player persistence needs from use cases.
type Repository interface {
	Find(ctx context.Context, filter Filter, order Order) ([]Player, error)
	Count(ctx context.Context, filter Filter) (int, error)
	Slice(ctx context.Context, filter Filter, order Order, offset, limit int) ([]Player, error)
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	UpdateFide(ctx context.Context, playerID string, update FideUpdate) error
}
