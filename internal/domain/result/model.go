package result

import "fmt"

// Result is the outcome notation of one game.
type Result string

const (
	WhiteWins        Result = "1-0"
	BlackWins        Result = "0-1"
	Draw             Result = "1/2-1/2"
	WhiteWinsForfeit Result = "+/-"
	BlackWinsForfeit Result = "-/+"
)

func (r Result) Valid() bool {
	switch r {
	case WhiteWins, BlackWins, Draw, WhiteWinsForfeit, BlackWinsForfeit:
		return true
	default:
		return false
	}
}

func (r Result) IsForfeit() bool {
	return r == WhiteWinsForfeit || r == BlackWinsForfeit
}

// Points returns the score for white and black.
func (r Result) Points() (white, black float64) {
	switch r {
	case WhiteWins, WhiteWinsForfeit:
		return 1, 0
	case BlackWins, BlackWinsForfeit:
		return 0, 1
	case Draw:
		return 0.5, 0.5
	default:
		return 0, 0
	}
}

// Game is one pairing of a tournament round.
type Game struct {
	TournamentID string
	Round        int
	Board        int
	WhiteID      string
	WhiteName    string
	BlackID      string
	BlackName    string
	Result       Result
}

func (g Game) Validate() error {
	if g.TournamentID == "" {
		return fmt.Errorf("game tournament id is required")
	}
	if g.Round <= 0 {
		return fmt.Errorf("game round must be positive")
	}
	if g.Board <= 0 {
		return fmt.Errorf("game board must be positive")
	}
	if g.WhiteID == "" || g.BlackID == "" {
		return fmt.Errorf("game requires both players")
	}
	if g.WhiteID == g.BlackID {
		return fmt.Errorf("game players must differ")
	}
	if !g.Result.Valid() {
		return fmt.Errorf("invalid game result: %s", g.Result)
	}

	return nil
}

// RoundKey groups games of the same round when rendering result tables.
func RoundKey(g Game) int {
	return g.Round
}
