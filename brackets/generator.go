package brackets

import (
	"context"
	"time"

	"github.com/Dosada05/tt-championship/models"
)

type GenerateBracketParams struct {
	GroupID  string
	Athletes []*models.Athlete
	BestOf   int
	Now      time.Time
}

// BracketGenerator builds the initial matches of a phase: a group round
// robin or the first round of a knockout bracket.
type BracketGenerator interface {
	GenerateBracket(ctx context.Context, params GenerateBracketParams) ([]*models.Match, error)

	GetName() string
}
