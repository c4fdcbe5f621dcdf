// Package scoring holds the table-tennis rules: set validity, match winners
// and group standings.
package scoring

import "github.com/Dosada05/tt-championship/models"

const (
	pointsToWinSet = 11
	deuceThreshold = 10
	minSetMargin   = 2
)

// IsValidSet applies the 11-point, win-by-two rule. From 10-10 on the set
// must end exactly two points apart; before that the loser stays below 11.
func IsValidSet(set models.SetResult) bool {
	hi, lo := set.Player1Score, set.Player2Score
	if lo > hi {
		hi, lo = lo, hi
	}
	if lo < 0 || hi < pointsToWinSet {
		return false
	}
	if lo >= deuceThreshold {
		return hi-lo == minSetMargin
	}
	return lo < pointsToWinSet && hi-lo >= minSetMargin
}

// SetsToWin maps best-of-N to the number of sets needed: 3->2, 5->3, 7->4.
func SetsToWin(bestOf int) int {
	return bestOf/2 + 1
}

// SetTally counts valid sets per side. Invalid sets are skipped.
func SetTally(sets []models.SetResult) (p1, p2 int) {
	for _, s := range sets {
		if !IsValidSet(s) {
			continue
		}
		if s.Player1Score > s.Player2Score {
			p1++
		} else {
			p2++
		}
	}
	return p1, p2
}

// MatchWinner returns the id of the player who reached the sets needed for
// bestOf, or "" while the match is undecided.
func MatchWinner(sets []models.SetResult, bestOf int, player1ID, player2ID string) string {
	need := SetsToWin(bestOf)
	p1, p2 := SetTally(sets)
	switch {
	case p1 >= need:
		return player1ID
	case p2 >= need:
		return player2ID
	}
	return ""
}

// ResolveWinner returns the winner of a match from its walkover, bye,
// persisted winner or set list, in that order.
func ResolveWinner(m *models.Match) string {
	if m == nil {
		return ""
	}
	if m.IsWalkover {
		return m.WalkoverWinnerID
	}
	if m.IsBye {
		return m.Player1ID
	}
	if m.WinnerID != "" {
		return m.WinnerID
	}
	return MatchWinner(m.Sets, m.BestOf, m.Player1ID, m.Player2ID)
}

// ResolveLoser is the opponent of the resolved winner. Byes have no loser.
func ResolveLoser(m *models.Match) string {
	if m == nil || m.IsBye {
		return ""
	}
	w := ResolveWinner(m)
	if w == "" {
		return ""
	}
	return m.Opponent(w)
}
