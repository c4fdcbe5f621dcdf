package models

// GroupStanding is derived from the completed matches of a group and is
// recomputed from scratch after every result.
type GroupStanding struct {
	AthleteID  string   `json:"athlete_id"`
	Athlete    *Athlete `json:"athlete,omitempty"`
	Matches    int      `json:"matches"`
	Wins       int      `json:"wins"`
	Losses     int      `json:"losses"`
	Points     int      `json:"points"`
	SetsWon    int      `json:"sets_won"`
	SetsLost   int      `json:"sets_lost"`
	SetsDiff   int      `json:"sets_diff"`
	PointsWon  int      `json:"points_won"`
	PointsLost int      `json:"points_lost"`
	PointsDiff int      `json:"points_diff"`
	Position   int      `json:"position"`
	Qualified  bool     `json:"qualified"`
}

type Group struct {
	ID                 string           `json:"id"`
	Name               string           `json:"name"`
	Athletes           []*Athlete       `json:"athletes"`
	Matches            []*Match         `json:"matches"`
	Standings          []*GroupStanding `json:"standings"`
	QualificationSpots int              `json:"qualification_spots"`
	IsCompleted        bool             `json:"is_completed"`
}

// Athlete looks up a member of the group.
func (g *Group) Athlete(id string) *Athlete {
	for _, a := range g.Athletes {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// AllMatchesCompleted is false for a group without matches.
func (g *Group) AllMatchesCompleted() bool {
	if len(g.Matches) == 0 {
		return false
	}
	for _, m := range g.Matches {
		if !m.IsCompleted {
			return false
		}
	}
	return true
}
