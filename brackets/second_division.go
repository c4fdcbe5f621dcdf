package brackets

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/Dosada05/tt-championship/models"
)

// SecondDivisionGenerator draws the athletes eliminated in the groups into a
// randomly seeded bracket.
type SecondDivisionGenerator struct {
	rng *rand.Rand
}

// NewSecondDivisionGenerator uses rng for the draw; nil falls back to the
// global source.
func NewSecondDivisionGenerator(rng *rand.Rand) BracketGenerator {
	return &SecondDivisionGenerator{rng: rng}
}

func (g *SecondDivisionGenerator) GetName() string {
	return "SecondDivision"
}

// GenerateBracket returns no matches, and no error, when fewer than two
// athletes are available.
func (g *SecondDivisionGenerator) GenerateBracket(ctx context.Context, params GenerateBracketParams) ([]*models.Match, error) {
	if len(params.Athletes) < 2 {
		return nil, nil
	}

	drawn := make([]*models.Athlete, len(params.Athletes))
	copy(drawn, params.Athletes)
	shuffle := rand.Shuffle
	if g.rng != nil {
		shuffle = g.rng.Shuffle
	}
	shuffle(len(drawn), func(i, j int) {
		drawn[i], drawn[j] = drawn[j], drawn[i]
	})

	size := BracketSize(len(drawn), MinSecondDivisionBracketSize)
	slots, err := layoutSlots(size, nil, drawn)
	if err != nil {
		return nil, fmt.Errorf("second division layout: %w", err)
	}
	return pairSlots(slots, models.BracketSecondDivision, params.BestOf, params.Now), nil
}
