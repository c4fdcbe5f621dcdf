package brackets

import "github.com/Dosada05/tt-championship/models"

// OrderQualifiers lists the qualified athletes of all groups in draw order and
// collects everyone else as eliminated. Winners in group order alternate with
// runners-up in reverse group order, so adjacent entrants come from different
// groups; lower qualifying positions follow group by group. Virtual athletes
// are left out of both lists.
func OrderQualifiers(groups []*models.Group) (qualified, eliminated []*models.Athlete) {
	byPosition := make(map[int][]*models.Athlete)
	maxPos := 0
	for _, g := range groups {
		for _, s := range g.Standings {
			a := s.Athlete
			if a == nil {
				a = g.Athlete(s.AthleteID)
			}
			if a == nil || a.IsVirtual {
				continue
			}
			if !s.Qualified {
				eliminated = append(eliminated, a)
				continue
			}
			byPosition[s.Position] = append(byPosition[s.Position], a)
			if s.Position > maxPos {
				maxPos = s.Position
			}
		}
	}

	winners, runnersUp := byPosition[1], byPosition[2]
	for i := 0; i < len(winners) || i < len(runnersUp); i++ {
		if i < len(winners) {
			qualified = append(qualified, winners[i])
		}
		if j := len(runnersUp) - 1 - i; j >= 0 {
			qualified = append(qualified, runnersUp[j])
		}
	}
	for pos := 3; pos <= maxPos; pos++ {
		qualified = append(qualified, byPosition[pos]...)
	}
	return qualified, eliminated
}
