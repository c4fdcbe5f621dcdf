package brackets

import (
	"fmt"
	"sort"
	"time"

	"github.com/Dosada05/tt-championship/models"
	"github.com/Dosada05/tt-championship/scoring"
)

// BracketPhase is the state of a bracket in its lifecycle:
// Empty -> Playing(stage N) -> ... -> Playing(final) -> Done.
type BracketPhase string

const (
	BracketEmpty   BracketPhase = "empty"
	BracketPlaying BracketPhase = "playing"
	BracketDone    BracketPhase = "done"
)

type BracketState struct {
	Phase BracketPhase
	// Stage is the latest round generated so far, 0 for an empty bracket.
	Stage int
	// RoundComplete is true when every match of Stage is finished.
	RoundComplete bool
}

type AdvanceParams struct {
	Bracket    models.Bracket
	BestOf     int
	ThirdPlace bool
	Now        time.Time
}

// State reads the current state of one bracket from the knockout matches.
// The third-place match never defines the frontier.
func State(matches []*models.Match, bracket models.Bracket) BracketState {
	st := BracketState{Phase: BracketEmpty}
	for _, m := range matches {
		if m.Bracket != bracket || m.IsThirdPlace {
			continue
		}
		if st.Stage == 0 || m.Stage < st.Stage {
			st.Stage = m.Stage
		}
	}
	if st.Stage == 0 {
		return st
	}

	st.Phase = BracketPlaying
	st.RoundComplete = true
	for _, m := range roundMatches(matches, bracket, st.Stage) {
		if !m.IsCompleted {
			st.RoundComplete = false
			break
		}
	}
	if st.Stage == models.StageFinal && st.RoundComplete {
		st.Phase = BracketDone
	}
	return st
}

// IsBracketDecided is true once the final of the bracket is completed.
func IsBracketDecided(matches []*models.Match, bracket models.Bracket) bool {
	return State(matches, bracket).Phase == BracketDone
}

// AdvanceBracket synthesizes the next round of a bracket when its latest
// round is fully played. Winners are paired in match order. When the
// semifinals finish and ThirdPlace is set, the first two semifinal losers
// also get a third-place match; a bye semifinal leaves a single loser and
// no third-place match. It returns nothing when the bracket is not
// ready or already advanced, so it is safe to call after every result.
func AdvanceBracket(matches []*models.Match, p AdvanceParams) ([]*models.Match, error) {
	st := State(matches, p.Bracket)
	if st.Phase != BracketPlaying || !st.RoundComplete {
		return nil, nil
	}

	current := roundMatches(matches, p.Bracket, st.Stage)
	winners := make([]*models.Athlete, 0, len(current))
	losers := make([]*models.Athlete, 0, len(current))
	for _, m := range current {
		w := scoring.ResolveWinner(m)
		if w == "" {
			return nil, fmt.Errorf("completed match %s (%s) has no winner", m.ID, m.Round)
		}
		winners = append(winners, snapshot(m, w))
		if l := scoring.ResolveLoser(m); l != "" {
			losers = append(losers, snapshot(m, l))
		}
	}

	nextStage := st.Stage - 1
	next := make([]*models.Match, 0, len(winners)/2+1)
	order := 0
	for i := 0; i < len(winners); i += 2 {
		order++
		if i+1 == len(winners) {
			next = append(next, newByeMatch(p.Bracket, nextStage, order, winners[i], p.Now))
			continue
		}
		next = append(next, newKnockoutMatch(p.Bracket, nextStage, order, winners[i], winners[i+1], p.BestOf, p.Now))
	}

	if st.Stage == models.StageSemifinal && p.ThirdPlace && len(losers) >= 2 && !hasThirdPlace(matches, p.Bracket) {
		third := newKnockoutMatch(p.Bracket, models.StageFinal, order+1, losers[0], losers[1], p.BestOf, p.Now)
		third.IsThirdPlace = true
		third.Round = models.RoundName(models.StageFinal, p.Bracket, true)
		next = append(next, third)
	}
	return next, nil
}

func roundMatches(matches []*models.Match, bracket models.Bracket, stage int) []*models.Match {
	var out []*models.Match
	for _, m := range matches {
		if m.Bracket == bracket && m.Stage == stage && !m.IsThirdPlace {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}

func hasThirdPlace(matches []*models.Match, bracket models.Bracket) bool {
	for _, m := range matches {
		if m.Bracket == bracket && m.IsThirdPlace {
			return true
		}
	}
	return false
}

// snapshot returns the athlete record stored on the match for id.
func snapshot(m *models.Match, id string) *models.Athlete {
	switch {
	case id == m.Player1ID && m.Player1 != nil:
		return m.Player1
	case id == m.Player2ID && m.Player2 != nil:
		return m.Player2
	}
	return &models.Athlete{ID: id}
}
