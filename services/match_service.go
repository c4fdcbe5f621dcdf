package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Dosada05/tt-championship/brackets"
	"github.com/Dosada05/tt-championship/models"
	"github.com/Dosada05/tt-championship/scoring"
)

// SubmitResult records a full or partial result. A new submission replaces
// the previous one. Group results refresh the group standings; knockout
// results advance both brackets and may complete the championship.
func (s *championshipService) SubmitResult(ctx context.Context, championshipID string, result models.MatchResult) (*models.Championship, error) {
	var match *models.Match
	c, err := s.mutate(ctx, championshipID, func(c *models.Championship, now time.Time) error {
		m, g := c.FindMatch(result.MatchID)
		if m == nil {
			return fmt.Errorf("%w: %s", ErrMatchNotFound, result.MatchID)
		}
		if err := checkResultEditable(c, m, g); err != nil {
			return err
		}
		if err := newValidationError(scoring.ValidateResult(m, result)); err != nil {
			return err
		}

		applyResult(m, result, now)
		match = m

		if g != nil {
			g.Standings = scoring.CalculateGroupStandings(g)
			g.IsCompleted = g.AllMatchesCompleted()
			return nil
		}
		return s.progressKnockout(c, now)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("result recorded",
		"championship_id", c.ID,
		"match_id", match.ID,
		"round", match.Round,
		"completed", match.IsCompleted,
		"status", c.Status,
	)
	return c, nil
}

// checkResultEditable rejects results for matches whose outcome other data
// already depends on.
func checkResultEditable(c *models.Championship, m *models.Match, g *models.Group) error {
	if g != nil {
		if c.Status != models.StatusGroups {
			return fmt.Errorf("%w: group stage is closed", ErrMatchLocked)
		}
		return nil
	}
	if m.IsBye {
		return nil
	}
	st := brackets.State(c.BracketMatches(m.Bracket), m.Bracket)
	if !m.IsThirdPlace && st.Stage < m.Stage {
		return fmt.Errorf("%w: %s already produced the next round", ErrMatchLocked, m.Round)
	}
	if c.Status == models.StatusCompleted && m.Bracket == models.BracketMain && m.Stage == models.StageFinal && !m.IsThirdPlace {
		return fmt.Errorf("%w: championship already decided", ErrMatchLocked)
	}
	return nil
}

func applyResult(m *models.Match, r models.MatchResult, now time.Time) {
	if r.Timeouts != nil {
		m.TimeoutsUsed = *r.Timeouts
	}
	if r.IsWalkover {
		m.Sets = []models.SetResult{}
		m.IsWalkover = true
		m.WalkoverWinnerID = r.WalkoverWinnerID
		m.WinnerID = r.WalkoverWinnerID
	} else {
		m.Sets = append([]models.SetResult{}, r.Sets...)
		m.IsWalkover = false
		m.WalkoverWinnerID = ""
		m.WinnerID = scoring.MatchWinner(m.Sets, m.BestOf, m.Player1ID, m.Player2ID)
	}

	m.IsCompleted = m.WinnerID != ""
	if m.IsCompleted {
		completed := now
		m.CompletedAt = &completed
	} else {
		m.CompletedAt = nil
	}
	m.UpdatedAt = now
}
