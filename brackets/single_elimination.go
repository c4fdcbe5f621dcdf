package brackets

import (
	"context"
	"errors"
	"fmt"
	"math/bits"
	"time"

	"github.com/Dosada05/tt-championship/models"
	"github.com/google/uuid"
)

const (
	MinMainBracketSize           = 4
	MinSecondDivisionBracketSize = 2
	fixedSeedPositions           = 4
)

// BracketSize is the smallest power of two holding n entrants, never below min.
func BracketSize(n, min int) int {
	size := 1
	for size < n {
		size <<= 1
	}
	if size < min {
		size = min
	}
	return size
}

// StageForSize is the number of rounds a bracket of the given size needs.
func StageForSize(size int) int {
	return bits.Len(uint(size)) - 1
}

// SeedSlots returns the fixed slots of seeds 1-4: top, bottom, end of the
// upper half and start of the lower half.
func SeedSlots(size int) []int {
	return []int{0, size - 1, size/2 - 1, size / 2}
}

type slot struct {
	athlete *models.Athlete
	bye     bool
}

// layoutSlots places up to four seeds at their fixed slots, reserves byes
// (opponents of the placed seeds first, then the lower slot of empty pairs
// from the top of the draw) and fills the remaining slots in order.
func layoutSlots(size int, seeds, rest []*models.Athlete) ([]slot, error) {
	n := len(seeds) + len(rest)
	if n > size {
		return nil, fmt.Errorf("%d entrants do not fit a bracket of %d", n, size)
	}
	slots := make([]slot, size)
	byes := size - n

	top := seeds
	var queue []*models.Athlete
	if len(seeds) > fixedSeedPositions {
		top = seeds[:fixedSeedPositions]
		queue = append(queue, seeds[fixedSeedPositions:]...)
	}
	queue = append(queue, rest...)

	positions := SeedSlots(size)
	placed := make([]int, 0, len(top))
	for i, a := range top {
		pos := positions[i]
		if slots[pos].athlete != nil {
			return nil, fmt.Errorf("seed slot %d already taken", pos)
		}
		slots[pos].athlete = a
		placed = append(placed, pos)
	}

	for _, pos := range placed {
		if byes == 0 {
			break
		}
		partner := pos ^ 1
		if slots[partner].athlete == nil && !slots[partner].bye {
			slots[partner].bye = true
			byes--
		}
	}
	for i := 0; i+1 < size && byes > 0; i += 2 {
		a, b := slots[i], slots[i+1]
		if a.athlete == nil && b.athlete == nil && !a.bye && !b.bye {
			slots[i+1].bye = true
			byes--
		}
	}
	if byes > 0 {
		return nil, fmt.Errorf("could not place %d byes in a bracket of %d", byes, size)
	}

	for i := range slots {
		if slots[i].athlete != nil || slots[i].bye {
			continue
		}
		if len(queue) == 0 {
			return nil, errors.New("ran out of entrants while filling the bracket")
		}
		slots[i].athlete = queue[0]
		queue = queue[1:]
	}
	return slots, nil
}

// pairSlots turns adjacent slots into first-round matches. An athlete facing
// a bye gets a completed bye match and advances.
func pairSlots(slots []slot, bracket models.Bracket, bestOf int, now time.Time) []*models.Match {
	stage := StageForSize(len(slots))
	matches := make([]*models.Match, 0, len(slots)/2)
	order := 0
	for i := 0; i+1 < len(slots); i += 2 {
		a, b := slots[i].athlete, slots[i+1].athlete
		if a == nil && b == nil {
			continue
		}
		order++
		if a == nil || b == nil {
			solo := a
			if solo == nil {
				solo = b
			}
			matches = append(matches, newByeMatch(bracket, stage, order, solo, now))
			continue
		}
		matches = append(matches, newKnockoutMatch(bracket, stage, order, a, b, bestOf, now))
	}
	return matches
}

func newKnockoutMatch(bracket models.Bracket, stage, order int, p1, p2 *models.Athlete, bestOf int, now time.Time) *models.Match {
	return &models.Match{
		ID:        uuid.NewString(),
		Phase:     models.PhaseKnockout,
		Bracket:   bracket,
		Stage:     stage,
		Round:     models.RoundName(stage, bracket, false),
		Order:     order,
		Player1ID: p1.ID,
		Player2ID: p2.ID,
		Player1:   p1,
		Player2:   p2,
		Sets:      []models.SetResult{},
		BestOf:    bestOf,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newByeMatch(bracket models.Bracket, stage, order int, p *models.Athlete, now time.Time) *models.Match {
	completed := now
	return &models.Match{
		ID:          uuid.NewString(),
		Phase:       models.PhaseKnockout,
		Bracket:     bracket,
		Stage:       stage,
		Round:       models.RoundName(stage, bracket, false),
		Order:       order,
		Player1ID:   p.ID,
		Player1:     p,
		Sets:        []models.SetResult{},
		IsBye:       true,
		WinnerID:    p.ID,
		IsCompleted: true,
		CreatedAt:   now,
		UpdatedAt:   now,
		CompletedAt: &completed,
	}
}

type SingleEliminationGenerator struct{}

func NewSingleEliminationGenerator() BracketGenerator {
	return &SingleEliminationGenerator{}
}

func (g *SingleEliminationGenerator) GetName() string {
	return "SingleElimination"
}

// GenerateBracket builds the first round of the main bracket. Athletes are
// expected in draw order; seeded ones are pulled out and placed first.
func (g *SingleEliminationGenerator) GenerateBracket(ctx context.Context, params GenerateBracketParams) ([]*models.Match, error) {
	n := len(params.Athletes)
	if n < 2 {
		return nil, errors.New("not enough qualified athletes to generate the main bracket (minimum 2)")
	}

	size := BracketSize(n, MinMainBracketSize)
	seeds, rest := SplitSeeded(params.Athletes)

	slots, err := layoutSlots(size, seeds, rest)
	if err != nil {
		return nil, fmt.Errorf("main bracket layout: %w", err)
	}
	return pairSlots(slots, models.BracketMain, params.BestOf, params.Now), nil
}
