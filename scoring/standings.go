package scoring

import (
	"sort"

	"github.com/Dosada05/tt-championship/models"
)

const (
	PointsPerWin  = 3
	PointsPerLoss = 0
)

// CalculateGroupStandings rebuilds the standings of a group from its
// completed matches. Calling it twice on the same group yields the same
// result.
//
// Ranking: points, set difference, rally point difference, then wins in the
// matches played among the tied athletes, then name and id.
func CalculateGroupStandings(group *models.Group) []*models.GroupStanding {
	index := make(map[string]*models.GroupStanding, len(group.Athletes))
	standings := make([]*models.GroupStanding, 0, len(group.Athletes))
	for _, a := range group.Athletes {
		s := &models.GroupStanding{AthleteID: a.ID, Athlete: a}
		index[a.ID] = s
		standings = append(standings, s)
	}

	for _, m := range group.Matches {
		if !m.IsCompleted {
			continue
		}
		s1, s2 := index[m.Player1ID], index[m.Player2ID]
		if s1 == nil || s2 == nil {
			continue
		}
		winner := ResolveWinner(m)
		if winner == "" {
			continue
		}
		s1.Matches++
		s2.Matches++

		w, l := s1, s2
		if winner == m.Player2ID {
			w, l = s2, s1
		}
		w.Wins++
		w.Points += PointsPerWin
		l.Losses++
		l.Points += PointsPerLoss

		if m.IsWalkover {
			continue
		}
		for _, set := range m.Sets {
			s1.PointsWon += set.Player1Score
			s1.PointsLost += set.Player2Score
			s2.PointsWon += set.Player2Score
			s2.PointsLost += set.Player1Score
			if set.Player1Score > set.Player2Score {
				s1.SetsWon++
				s2.SetsLost++
			} else {
				s2.SetsWon++
				s1.SetsLost++
			}
		}
	}

	for _, s := range standings {
		s.SetsDiff = s.SetsWon - s.SetsLost
		s.PointsDiff = s.PointsWon - s.PointsLost
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return compareStats(standings[i], standings[j]) < 0
	})
	breakTies(standings, group.Matches)

	for i, s := range standings {
		s.Position = i + 1
		s.Qualified = s.Position <= group.QualificationSpots
	}
	return standings
}

// compareStats orders by the numeric criteria only; 0 means tied.
func compareStats(a, b *models.GroupStanding) int {
	switch {
	case a.Points != b.Points:
		return b.Points - a.Points
	case a.SetsDiff != b.SetsDiff:
		return b.SetsDiff - a.SetsDiff
	case a.PointsDiff != b.PointsDiff:
		return b.PointsDiff - a.PointsDiff
	}
	return 0
}

// breakTies reorders every run of athletes level on points, set difference
// and point difference by the wins they got against each other.
func breakTies(standings []*models.GroupStanding, matches []*models.Match) {
	for start := 0; start < len(standings); {
		end := start + 1
		for end < len(standings) && compareStats(standings[start], standings[end]) == 0 {
			end++
		}
		if end-start > 1 {
			run := standings[start:end]
			h2h := headToHeadWins(run, matches)
			sort.SliceStable(run, func(i, j int) bool {
				a, b := run[i], run[j]
				if h2h[a.AthleteID] != h2h[b.AthleteID] {
					return h2h[a.AthleteID] > h2h[b.AthleteID]
				}
				if an, bn := athleteName(a), athleteName(b); an != bn {
					return an < bn
				}
				return a.AthleteID < b.AthleteID
			})
		}
		start = end
	}
}

func headToHeadWins(run []*models.GroupStanding, matches []*models.Match) map[string]int {
	tied := make(map[string]bool, len(run))
	for _, s := range run {
		tied[s.AthleteID] = true
	}
	wins := make(map[string]int, len(run))
	for _, m := range matches {
		if !m.IsCompleted || !tied[m.Player1ID] || !tied[m.Player2ID] {
			continue
		}
		if w := ResolveWinner(m); w != "" {
			wins[w]++
		}
	}
	return wins
}

func athleteName(s *models.GroupStanding) string {
	if s.Athlete == nil {
		return ""
	}
	return s.Athlete.Name
}
