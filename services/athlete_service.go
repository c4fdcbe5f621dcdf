package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Dosada05/tt-championship/models"
	"github.com/google/uuid"
)

type AthleteInput struct {
	Name       string `json:"name"`
	IsSeeded   bool   `json:"is_seeded"`
	SeedNumber *int   `json:"seed_number,omitempty"`
	IsVirtual  bool   `json:"is_virtual"`
}

func (s *championshipService) AddAthlete(ctx context.Context, championshipID string, input AthleteInput) (*models.Athlete, error) {
	var added *models.Athlete
	_, err := s.mutate(ctx, championshipID, func(c *models.Championship, now time.Time) error {
		if c.Status != models.StatusCreated {
			return ErrRosterLocked
		}
		a := &models.Athlete{ID: uuid.NewString()}
		if err := applyAthleteInput(c, a, input); err != nil {
			return err
		}
		c.Athletes = append(c.Athletes, a)
		added = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("athlete added", "championship_id", championshipID, "athlete_id", added.ID)
	return added, nil
}

func (s *championshipService) UpdateAthlete(ctx context.Context, championshipID, athleteID string, input AthleteInput) (*models.Athlete, error) {
	var updated *models.Athlete
	_, err := s.mutate(ctx, championshipID, func(c *models.Championship, now time.Time) error {
		if c.Status != models.StatusCreated {
			return ErrRosterLocked
		}
		a := c.Athlete(athleteID)
		if a == nil {
			return fmt.Errorf("%w: %s", ErrAthleteNotFound, athleteID)
		}
		if err := applyAthleteInput(c, a, input); err != nil {
			return err
		}
		updated = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *championshipService) RemoveAthlete(ctx context.Context, championshipID, athleteID string) error {
	_, err := s.mutate(ctx, championshipID, func(c *models.Championship, now time.Time) error {
		if c.Status != models.StatusCreated {
			return ErrRosterLocked
		}
		for i, a := range c.Athletes {
			if a.ID == athleteID {
				c.Athletes = append(c.Athletes[:i], c.Athletes[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: %s", ErrAthleteNotFound, athleteID)
	})
	if err != nil {
		return err
	}
	s.log.Info("athlete removed", "championship_id", championshipID, "athlete_id", athleteID)
	return nil
}

// applyAthleteInput validates input against the rest of the roster and
// copies it onto a. a is left untouched on error.
func applyAthleteInput(c *models.Championship, a *models.Athlete, input AthleteInput) error {
	errs := make(map[string]string)
	name := strings.TrimSpace(input.Name)
	if name == "" {
		errs["name"] = "name is required"
	}

	var seed *int
	if input.IsSeeded {
		switch {
		case input.SeedNumber == nil:
			errs["seed_number"] = "seeded athletes need a seed number"
		case *input.SeedNumber < 1:
			errs["seed_number"] = "must be at least 1"
		default:
			for _, other := range c.Athletes {
				if other.ID != a.ID && other.Seed() == *input.SeedNumber {
					errs["seed_number"] = fmt.Sprintf("seed %d is already taken by %s", *input.SeedNumber, other.Name)
					break
				}
			}
			n := *input.SeedNumber
			seed = &n
		}
	}
	if err := newValidationError(errs); err != nil {
		return err
	}

	a.Name = name
	a.IsSeeded = input.IsSeeded
	a.SeedNumber = seed
	a.IsVirtual = input.IsVirtual
	return nil
}
