package models

import "time"

type Phase string

const (
	PhaseGroups   Phase = "groups"
	PhaseKnockout Phase = "knockout"
)

type Bracket string

const (
	BracketMain           Bracket = "main"
	BracketSecondDivision Bracket = "second_division"
)

const (
	ThirdPlaceRoundName  = "3º Lugar"
	SecondDivisionSuffix = " 2ª Div"
	StageFinal           = 1
	StageSemifinal       = 2
)

var stageNames = map[int]string{
	1: "Final",
	2: "Semifinal",
	3: "Quartas",
	4: "Oitavas",
	5: "Dezesseis-avos",
	6: "Trinta-e-dois-avos",
}

// RoundName returns the display name of a knockout round. Stage counts the
// rounds left in the bracket, so 1 is the final and 2 the semifinal.
func RoundName(stage int, bracket Bracket, thirdPlace bool) string {
	name, ok := stageNames[stage]
	if !ok {
		name = "Rodada preliminar"
	}
	if thirdPlace {
		name = ThirdPlaceRoundName
	}
	if bracket == BracketSecondDivision {
		name += SecondDivisionSuffix
	}
	return name
}

type SetResult struct {
	Player1Score int `json:"player1_score"`
	Player2Score int `json:"player2_score"`
}

type Timeouts struct {
	Player1 bool `json:"player1"`
	Player2 bool `json:"player2"`
}

type Match struct {
	ID      string  `json:"id"`
	GroupID string  `json:"group_id,omitempty"`
	Phase   Phase   `json:"phase"`
	Bracket Bracket `json:"bracket,omitempty"`
	Stage   int     `json:"stage,omitempty"`
	Round   string  `json:"round,omitempty"`
	Order   int     `json:"order"`

	Player1ID string   `json:"player1_id"`
	Player2ID string   `json:"player2_id,omitempty"`
	Player1   *Athlete `json:"player1,omitempty"`
	Player2   *Athlete `json:"player2,omitempty"`

	Sets             []SetResult `json:"sets"`
	BestOf           int         `json:"best_of"`
	IsThirdPlace     bool        `json:"is_third_place"`
	IsBye            bool        `json:"is_bye"`
	WinnerID         string      `json:"winner_id,omitempty"`
	IsCompleted      bool        `json:"is_completed"`
	IsWalkover       bool        `json:"is_walkover"`
	WalkoverWinnerID string      `json:"walkover_winner_id,omitempty"`
	TimeoutsUsed     Timeouts    `json:"timeouts_used"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// HasPlayer reports whether id is one of the two sides of the match.
func (m *Match) HasPlayer(id string) bool {
	return id != "" && (id == m.Player1ID || id == m.Player2ID)
}

// IsPlayable is true for matches with two distinct players; byes are not playable.
func (m *Match) IsPlayable() bool {
	return m.Player1ID != "" && m.Player2ID != "" && m.Player1ID != m.Player2ID
}

// Opponent returns the other side of the match, or "" if id does not play it.
func (m *Match) Opponent(id string) string {
	switch id {
	case m.Player1ID:
		return m.Player2ID
	case m.Player2ID:
		return m.Player1ID
	}
	return ""
}

// MatchResult is a result submission. It replaces the sets, walkover and
// timeout state of the match as a whole.
type MatchResult struct {
	MatchID          string      `json:"match_id"`
	Sets             []SetResult `json:"sets"`
	Timeouts         *Timeouts   `json:"timeouts,omitempty"`
	IsWalkover       bool        `json:"is_walkover"`
	WalkoverWinnerID string      `json:"walkover_winner_id,omitempty"`
}
