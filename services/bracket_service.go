package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Dosada05/tt-championship/brackets"
	"github.com/Dosada05/tt-championship/models"
	"golang.org/x/sync/errgroup"
)

// GenerateKnockout closes the group stage and draws the main bracket, plus
// the second division when the championship has repechage.
func (s *championshipService) GenerateKnockout(ctx context.Context, championshipID string) (*models.Championship, error) {
	c, err := s.mutate(ctx, championshipID, func(c *models.Championship, now time.Time) error {
		if c.Status != models.StatusGroups {
			return fmt.Errorf("%w: knockout needs the group stage, championship is %s", ErrInvalidStatusTransition, c.Status)
		}
		if !c.GroupsCompleted() {
			return ErrGroupsIncomplete
		}

		qualified, eliminated := brackets.OrderQualifiers(c.Groups)
		if len(qualified) < 2 {
			return newValidationError(map[string]string{
				"groups": fmt.Sprintf("%d athlete qualified, the knockout needs at least 2", len(qualified)),
			})
		}

		var mainMatches, secondMatches []*models.Match
		g, gCtx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			mainMatches, err = brackets.NewSingleEliminationGenerator().GenerateBracket(gCtx, brackets.GenerateBracketParams{
				Athletes: qualified,
				BestOf:   c.Config.KnockoutBestOf,
				Now:      now,
			})
			if err != nil {
				return fmt.Errorf("failed to draw main bracket: %w", err)
			}
			return nil
		})
		if c.Config.HasRepechage {
			g.Go(func() error {
				var err error
				secondMatches, err = brackets.NewSecondDivisionGenerator(s.newRand()).GenerateBracket(gCtx, brackets.GenerateBracketParams{
					Athletes: eliminated,
					BestOf:   c.Config.KnockoutBestOf,
					Now:      now,
				})
				if err != nil {
					return fmt.Errorf("failed to draw second division: %w", err)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		c.Knockout = append(mainMatches, secondMatches...)
		if err := c.Advance(models.StatusKnockout); err != nil {
			return err
		}
		return s.progressKnockout(c, now)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("knockout generated",
		"championship_id", c.ID,
		"main_matches", len(c.BracketMatches(models.BracketMain)),
		"second_division_matches", len(c.BracketMatches(models.BracketSecondDivision)),
	)
	return c, nil
}

// progressKnockout advances every bracket as far as the recorded results
// allow, then completes the championship once the main final is decided.
func (s *championshipService) progressKnockout(c *models.Championship, now time.Time) error {
	for _, b := range []models.Bracket{models.BracketMain, models.BracketSecondDivision} {
		for {
			next, err := brackets.AdvanceBracket(c.BracketMatches(b), brackets.AdvanceParams{
				Bracket:    b,
				BestOf:     c.Config.KnockoutBestOf,
				ThirdPlace: b == models.BracketMain && c.Config.HasThirdPlace,
				Now:        now,
			})
			if err != nil {
				return err
			}
			if len(next) == 0 {
				break
			}
			c.Knockout = append(c.Knockout, next...)
			s.log.Info("round generated", "championship_id", c.ID, "bracket", b, "round", next[0].Round, "matches", len(next))
		}
	}

	if c.Status == models.StatusKnockout && brackets.IsBracketDecided(c.BracketMatches(models.BracketMain), models.BracketMain) {
		if err := c.Advance(models.StatusCompleted); err != nil {
			return err
		}
		s.log.Info("championship completed", "championship_id", c.ID)
	}
	return nil
}
