package brackets

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Dosada05/tt-championship/models"
	"github.com/Dosada05/tt-championship/scoring"
	"github.com/google/uuid"
)

// GroupCount is the number of groups needed to hold n athletes.
func GroupCount(n, groupSize int) int {
	if n <= 0 || groupSize <= 0 {
		return 0
	}
	return (n + groupSize - 1) / groupSize
}

// GroupName returns "Grupo A", "Grupo B", ... and falls back to a number
// past Z.
func GroupName(i int) string {
	if i < 26 {
		return fmt.Sprintf("Grupo %c", 'A'+i)
	}
	return fmt.Sprintf("Grupo %d", i+1)
}

// SplitSeeded separates seeded athletes, ordered by seed number, from the
// rest, which keep their roster order.
func SplitSeeded(athletes []*models.Athlete) (seeded, unseeded []*models.Athlete) {
	for _, a := range athletes {
		if a.Seed() > 0 {
			seeded = append(seeded, a)
		} else {
			unseeded = append(unseeded, a)
		}
	}
	sort.SliceStable(seeded, func(i, j int) bool {
		return seeded[i].Seed() < seeded[j].Seed()
	})
	return seeded, unseeded
}

// DistributeAthletes deals seeded athletes across the groups by index modulo
// the group count, then keeps dealing the unseeded ones from where the seeds
// stopped.
func DistributeAthletes(athletes []*models.Athlete, groupSize int) [][]*models.Athlete {
	n := GroupCount(len(athletes), groupSize)
	if n == 0 {
		return nil
	}
	groups := make([][]*models.Athlete, n)
	seeded, unseeded := SplitSeeded(athletes)
	i := 0
	for _, a := range append(seeded, unseeded...) {
		groups[i%n] = append(groups[i%n], a)
		i++
	}
	return groups
}

// ValidateManualGroups checks a caller-supplied assignment: every group has at
// least two members and every roster athlete appears exactly once.
func ValidateManualGroups(roster []*models.Athlete, assignment [][]string) map[string]string {
	errs := make(map[string]string)
	known := make(map[string]bool, len(roster))
	for _, a := range roster {
		known[a.ID] = true
	}
	if len(assignment) == 0 {
		errs["groups"] = "at least one group is required"
		return errs
	}

	seen := make(map[string]int)
	for gi, ids := range assignment {
		if len(ids) < 2 {
			errs[fmt.Sprintf("groups[%d]", gi)] = "a group needs at least 2 athletes"
		}
		for _, id := range ids {
			if !known[id] {
				errs[fmt.Sprintf("groups[%d]", gi)] = fmt.Sprintf("unknown athlete %s", id)
				continue
			}
			seen[id]++
		}
	}
	for _, a := range roster {
		switch c := seen[a.ID]; {
		case c == 0:
			errs["athletes."+a.ID] = fmt.Sprintf("%s is not assigned to any group", a.Name)
		case c > 1:
			errs["athletes."+a.ID] = fmt.Sprintf("%s is assigned %d times", a.Name, c)
		}
	}
	return errs
}

// BuildGroup creates a named group with its round-robin matches. The number
// of qualifiers is capped so at least one member is eliminated.
func BuildGroup(ctx context.Context, index int, athletes []*models.Athlete, spots, bestOf int, now time.Time) (*models.Group, error) {
	group := &models.Group{
		ID:                 uuid.NewString(),
		Name:               GroupName(index),
		Athletes:           athletes,
		QualificationSpots: min(spots, len(athletes)-1),
	}

	matches, err := NewRoundRobinGenerator().GenerateBracket(ctx, GenerateBracketParams{
		GroupID:  group.ID,
		Athletes: athletes,
		BestOf:   bestOf,
		Now:      now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate matches for %s: %w", group.Name, err)
	}
	group.Matches = matches
	group.Standings = scoring.CalculateGroupStandings(group)
	return group, nil
}
