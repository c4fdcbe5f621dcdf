package brackets

import (
	"context"
	"fmt"
	"sort"

	"github.com/Dosada05/tt-championship/models"
	"github.com/google/uuid"
)

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() BracketGenerator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) GetName() string {
	return "RoundRobin"
}

// GenerateBracket creates one match per unordered pair of group members.
func (g *RoundRobinGenerator) GenerateBracket(ctx context.Context, params GenerateBracketParams) ([]*models.Match, error) {
	athletes := params.Athletes
	if len(athletes) < 2 {
		return nil, fmt.Errorf("RoundRobinGenerator: not enough athletes (found %d, min 2 required)", len(athletes))
	}

	matches := make([]*models.Match, 0, len(athletes)*(len(athletes)-1)/2)
	matchOrder := 0

	for i := 0; i < len(athletes); i++ {
		for j := i + 1; j < len(athletes); j++ {
			p1, p2 := athletes[i], athletes[j]
			if p1.ID == p2.ID {
				return nil, fmt.Errorf("RoundRobinGenerator: athlete %s listed twice", p1.ID)
			}

			matchOrder++
			matches = append(matches, &models.Match{
				ID:        uuid.NewString(),
				GroupID:   params.GroupID,
				Phase:     models.PhaseGroups,
				Order:     matchOrder,
				Player1ID: p1.ID,
				Player2ID: p2.ID,
				Player1:   p1,
				Player2:   p2,
				Sets:      []models.SetResult{},
				BestOf:    params.BestOf,
				CreatedAt: params.Now,
				UpdatedAt: params.Now,
			})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Order < matches[j].Order
	})

	return matches, nil
}
