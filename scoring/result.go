package scoring

import (
	"fmt"

	"github.com/Dosada05/tt-championship/models"
)

// ValidateResult checks a result submission against the match it targets and
// returns field-level messages. An empty map means the result can be applied.
// A result with valid sets and no winner yet is accepted as live scoring.
func ValidateResult(m *models.Match, r models.MatchResult) map[string]string {
	errs := make(map[string]string)

	if m.IsBye {
		errs["match_id"] = "bye matches do not take results"
		return errs
	}
	if !m.IsPlayable() {
		errs["match_id"] = "match does not have two distinct players"
		return errs
	}

	if r.IsWalkover {
		if r.WalkoverWinnerID == "" {
			errs["walkover_winner_id"] = "walkover requires a winner"
		} else if !m.HasPlayer(r.WalkoverWinnerID) {
			errs["walkover_winner_id"] = "walkover winner must be one of the match players"
		}
		return errs
	}
	if r.WalkoverWinnerID != "" {
		errs["walkover_winner_id"] = "walkover winner given without walkover"
	}

	need := SetsToWin(m.BestOf)
	p1, p2 := 0, 0
	for i, s := range r.Sets {
		key := fmt.Sprintf("sets[%d]", i)
		if p1 >= need || p2 >= need {
			errs[key] = "set played after the match was decided"
			continue
		}
		if !IsValidSet(s) {
			errs[key] = fmt.Sprintf("invalid set score %d-%d", s.Player1Score, s.Player2Score)
			continue
		}
		if s.Player1Score > s.Player2Score {
			p1++
		} else {
			p2++
		}
	}
	if len(r.Sets) > m.BestOf {
		errs["sets"] = fmt.Sprintf("at most %d sets can be played", m.BestOf)
	}
	return errs
}
