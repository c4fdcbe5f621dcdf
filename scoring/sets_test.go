package scoring

import (
	"testing"

	"github.com/Dosada05/tt-championship/models"
)

func set(a, b int) models.SetResult {
	return models.SetResult{Player1Score: a, Player2Score: b}
}

func TestIsValidSet(t *testing.T) {
	cases := []struct {
		p1, p2 int
		want   bool
	}{
		{11, 9, true},
		{9, 11, true},
		{11, 0, true},
		{11, 10, false},
		{10, 8, false},
		{12, 10, true},
		{10, 12, true},
		{15, 13, true},
		{0, 0, false},
		{11, 11, false},
		{13, 10, false},
		{12, 9, true},
		{15, 3, true},
		{13, 5, true},
		{-1, 11, false},
		{11, -3, false},
	}
	for _, c := range cases {
		if got := IsValidSet(set(c.p1, c.p2)); got != c.want {
			t.Errorf("IsValidSet(%d-%d) = %v, want %v", c.p1, c.p2, got, c.want)
		}
	}
}

func TestSetsToWin(t *testing.T) {
	for bestOf, want := range map[int]int{3: 2, 5: 3, 7: 4} {
		if got := SetsToWin(bestOf); got != want {
			t.Errorf("SetsToWin(%d) = %d, want %d", bestOf, got, want)
		}
	}
}

func TestMatchWinnerBestOfFive(t *testing.T) {
	sets := []models.SetResult{set(11, 9), set(11, 8), set(11, 7)}
	if got := MatchWinner(sets, 5, "a", "b"); got != "a" {
		t.Fatalf("winner = %q, want a", got)
	}

	if got := MatchWinner(sets[:2], 5, "a", "b"); got != "" {
		t.Fatalf("two sets should leave the match undecided, got %q", got)
	}

	trailing := []models.SetResult{set(9, 11), set(8, 11)}
	if got := MatchWinner(trailing, 5, "a", "b"); got != "" {
		t.Fatalf("2-0 lead is not a win in best of 5, got %q", got)
	}

	if got := MatchWinner(nil, 5, "a", "b"); got != "" {
		t.Fatalf("no sets must be undecided, got %q", got)
	}
}

func TestMatchWinnerIgnoresInvalidSets(t *testing.T) {
	sets := []models.SetResult{set(11, 9), set(11, 11), set(11, 8)}
	if got := MatchWinner(sets, 5, "a", "b"); got != "" {
		t.Fatalf("invalid set counted toward the tally, got %q", got)
	}
	sets = append(sets, set(3, 11), set(11, 5))
	if got := MatchWinner(sets, 5, "a", "b"); got != "a" {
		t.Fatalf("winner = %q, want a", got)
	}
}

func TestMatchWinnerCountsLopsidedSets(t *testing.T) {
	sets := []models.SetResult{set(12, 9), set(15, 3)}
	if got := MatchWinner(sets, 3, "a", "b"); got != "a" {
		t.Fatalf("winner = %q, want a", got)
	}
}

func TestResolveWinner(t *testing.T) {
	wo := &models.Match{Player1ID: "a", Player2ID: "b", BestOf: 3, IsWalkover: true, WalkoverWinnerID: "b"}
	if got := ResolveWinner(wo); got != "b" {
		t.Errorf("walkover winner = %q, want b", got)
	}
	bye := &models.Match{Player1ID: "a", IsBye: true}
	if got := ResolveWinner(bye); got != "a" {
		t.Errorf("bye winner = %q, want a", got)
	}
	if got := ResolveLoser(bye); got != "" {
		t.Errorf("bye loser = %q, want none", got)
	}
	played := &models.Match{Player1ID: "a", Player2ID: "b", BestOf: 3, Sets: []models.SetResult{set(5, 11), set(9, 11)}}
	if got := ResolveWinner(played); got != "b" {
		t.Errorf("winner = %q, want b", got)
	}
	if got := ResolveLoser(played); got != "a" {
		t.Errorf("loser = %q, want a", got)
	}
}
