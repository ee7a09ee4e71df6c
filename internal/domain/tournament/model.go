package tournament

import (
	"fmt"
	"strings"
	"time"
)

// Tournament is a rated event whose results were uploaded to the federation.
type Tournament struct {
	ID           string
	Name         string
	City         string
	StartDate    time.Time
	EndDate      time.Time
	Rounds       int
	FideSyncedAt *time.Time
}

func (t Tournament) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("tournament id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("tournament name is required")
	}
	if t.StartDate.IsZero() {
		return fmt.Errorf("tournament start date is required")
	}
	if !t.EndDate.IsZero() && t.EndDate.Before(t.StartDate) {
		return fmt.Errorf("tournament end date must not be before start date")
	}
	if t.Rounds < 0 {
		return fmt.Errorf("tournament rounds must not be negative")
	}

	return nil
}

func (t Tournament) IsFideSynced() bool {
	return t.FideSyncedAt != nil && !t.FideSyncedAt.IsZero()
}
