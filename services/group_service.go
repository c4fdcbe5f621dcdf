package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Dosada05/tt-championship/brackets"
	"github.com/Dosada05/tt-championship/models"
)

type ManualGroupsInput struct {
	// Groups lists athlete ids per group, in group order.
	Groups [][]string `json:"groups"`
}

// GenerateGroups seeds the roster into groups and schedules their round
// robins.
func (s *championshipService) GenerateGroups(ctx context.Context, championshipID string) (*models.Championship, error) {
	c, err := s.mutate(ctx, championshipID, func(c *models.Championship, now time.Time) error {
		if c.Status != models.StatusCreated {
			return fmt.Errorf("%w: groups already generated", ErrInvalidStatusTransition)
		}
		if err := newValidationError(validateRosterForGroups(c)); err != nil {
			return err
		}

		assignment := brackets.DistributeAthletes(c.Athletes, c.Config.GroupSize)
		for i, members := range assignment {
			if len(members) < 2 {
				return newValidationError(map[string]string{
					"athletes": fmt.Sprintf("%s would have %d athlete, at least 2 are required", brackets.GroupName(i), len(members)),
				})
			}
		}
		return s.installGroups(ctx, c, assignment, now)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("groups generated", "championship_id", c.ID, "groups", len(c.Groups), "matches", c.TotalMatches)
	return c, nil
}

// SetManualGroups installs a caller-chosen group assignment.
func (s *championshipService) SetManualGroups(ctx context.Context, championshipID string, input ManualGroupsInput) (*models.Championship, error) {
	c, err := s.mutate(ctx, championshipID, func(c *models.Championship, now time.Time) error {
		if c.Status != models.StatusCreated {
			return fmt.Errorf("%w: groups already generated", ErrInvalidStatusTransition)
		}
		if err := newValidationError(brackets.ValidateManualGroups(c.Athletes, input.Groups)); err != nil {
			return err
		}

		assignment := make([][]*models.Athlete, len(input.Groups))
		for i, ids := range input.Groups {
			for _, id := range ids {
				assignment[i] = append(assignment[i], c.Athlete(id))
			}
		}
		return s.installGroups(ctx, c, assignment, now)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("manual groups set", "championship_id", c.ID, "groups", len(c.Groups))
	return c, nil
}

func (s *championshipService) GetGroupStandings(ctx context.Context, championshipID, groupID string) ([]*models.GroupStanding, error) {
	c, err := s.repo.GetByID(ctx, championshipID)
	if err != nil {
		return nil, err
	}
	for _, g := range c.Groups {
		if g.ID == groupID {
			return g.Standings, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrGroupNotFound, groupID)
}

func (s *championshipService) installGroups(ctx context.Context, c *models.Championship, assignment [][]*models.Athlete, now time.Time) error {
	groups := make([]*models.Group, 0, len(assignment))
	for i, members := range assignment {
		g, err := brackets.BuildGroup(ctx, i, members, c.Config.QualificationSpotsPerGroup, c.Config.GroupsBestOf, now)
		if err != nil {
			return err
		}
		groups = append(groups, g)
	}
	c.Groups = groups
	c.Knockout = []*models.Match{}
	return c.Advance(models.StatusGroups)
}

// validateRosterForGroups requires at least two athletes and seed numbers
// forming 1..k.
func validateRosterForGroups(c *models.Championship) map[string]string {
	errs := make(map[string]string)
	if len(c.Athletes) < 2 {
		errs["athletes"] = "at least 2 athletes are required"
		return errs
	}
	var seeds []int
	for _, a := range c.Athletes {
		if a.IsSeeded {
			if a.Seed() == 0 {
				errs["athletes."+a.ID] = fmt.Sprintf("%s is seeded without a seed number", a.Name)
				continue
			}
			seeds = append(seeds, a.Seed())
		}
	}
	sort.Ints(seeds)
	for i, n := range seeds {
		if n != i+1 {
			errs["seeds"] = fmt.Sprintf("seed numbers must run from 1 to %d without gaps", len(seeds))
			break
		}
	}
	return errs
}
