package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/Dosada05/tt-championship/models"
	"github.com/Dosada05/tt-championship/repositories"
)

var testNow = time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

type recordingNotifier struct {
	mu      sync.Mutex
	updates []string
}

func (n *recordingNotifier) ChampionshipUpdated(c *models.Championship) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.updates = append(n.updates, string(c.Status))
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.updates)
}

type fakeArchiver struct {
	calls int
	err   error
}

func (a *fakeArchiver) Archive(ctx context.Context, c *models.Championship) (string, error) {
	a.calls++
	if a.err != nil {
		return "", a.err
	}
	return "https://archive.test/" + c.ID + ".json", nil
}

type fixture struct {
	svc      ChampionshipService
	repo     repositories.ChampionshipRepository
	notifier *recordingNotifier
	archiver *fakeArchiver
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		repo:     repositories.NewMemoryChampionshipRepository(),
		notifier: &recordingNotifier{},
		archiver: &fakeArchiver{},
	}
	f.svc = NewChampionshipService(f.repo, f.notifier, f.archiver, nil,
		WithClock(func() time.Time { return testNow }),
		WithRand(func() *rand.Rand { return rand.New(rand.NewPCG(7, 11)) }),
	)
	return f
}

func defaultConfig() models.Config {
	return models.Config{
		GroupSize:                  4,
		QualificationSpotsPerGroup: 2,
		GroupsBestOf:               3,
		KnockoutBestOf:             3,
		HasThirdPlace:              true,
		HasRepechage:               true,
	}
}

func seedNumber(n int) *int { return &n }

// setupChampionship creates a championship with n athletes, the first two
// seeded.
func (f *fixture) setupChampionship(t *testing.T, n int) *models.Championship {
	t.Helper()
	ctx := context.Background()
	c, err := f.svc.CreateChampionship(ctx, CreateChampionshipInput{Name: "Open de Mesa", Config: defaultConfig()})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	for i := 1; i <= n; i++ {
		input := AthleteInput{Name: fmt.Sprintf("Athlete %02d", i)}
		if i <= 2 {
			input.IsSeeded = true
			input.SeedNumber = seedNumber(i)
		}
		if _, err := f.svc.AddAthlete(ctx, c.ID, input); err != nil {
			t.Fatalf("add athlete %d: %v", i, err)
		}
	}
	return c
}

func straightWin(m *models.Match) models.MatchResult {
	sets := make([]models.SetResult, 0, m.BestOf/2+1)
	for i := 0; i < m.BestOf/2+1; i++ {
		sets = append(sets, models.SetResult{Player1Score: 11, Player2Score: 5 + i})
	}
	return models.MatchResult{MatchID: m.ID, Sets: sets}
}

func checkCounters(t *testing.T, c *models.Championship) {
	t.Helper()
	total, completed := 0, 0
	for _, m := range c.AllMatches() {
		if m.Player1ID == "" || m.Player2ID == "" || m.Player1ID == m.Player2ID {
			continue
		}
		total++
		if m.IsCompleted {
			completed++
		}
	}
	if c.TotalMatches != total || c.CompletedMatches != completed || completed > total {
		t.Fatalf("counters %d/%d, derived %d/%d", c.CompletedMatches, c.TotalMatches, completed, total)
	}
}

func playable(matches []*models.Match, stage int) []*models.Match {
	var out []*models.Match
	for _, m := range matches {
		if m.Stage == stage && !m.IsBye && !m.IsThirdPlace {
			out = append(out, m)
		}
	}
	return out
}

func TestEightAthleteChampionshipRunsToCompletion(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.setupChampionship(t, 8)

	c, err := f.svc.GenerateGroups(ctx, c.ID)
	if err != nil {
		t.Fatalf("generate groups: %v", err)
	}
	if c.Status != models.StatusGroups || len(c.Groups) != 2 || c.TotalMatches != 12 {
		t.Fatalf("after groups: status=%s groups=%d total=%d", c.Status, len(c.Groups), c.TotalMatches)
	}
	checkCounters(t, c)

	if _, err := f.svc.GenerateKnockout(ctx, c.ID); !errors.Is(err, ErrGroupsIncomplete) {
		t.Fatalf("early knockout err = %v, want ErrGroupsIncomplete", err)
	}

	for _, g := range c.Groups {
		for _, m := range g.Matches {
			if c, err = f.svc.SubmitResult(ctx, c.ID, straightWin(m)); err != nil {
				t.Fatalf("group result: %v", err)
			}
			checkCounters(t, c)
		}
	}
	if !c.GroupsCompleted() || c.CompletedMatches != 12 {
		t.Fatalf("groups not completed: %d/%d", c.CompletedMatches, c.TotalMatches)
	}

	c, err = f.svc.GenerateKnockout(ctx, c.ID)
	if err != nil {
		t.Fatalf("generate knockout: %v", err)
	}
	if c.Status != models.StatusKnockout {
		t.Fatalf("status = %s, want knockout", c.Status)
	}
	semis := playable(c.BracketMatches(models.BracketMain), models.StageSemifinal)
	if len(semis) != 2 || semis[0].Round != "Semifinal" {
		t.Fatalf("main bracket = %d semifinals", len(semis))
	}
	second := c.BracketMatches(models.BracketSecondDivision)
	if len(second) != 2 || second[0].Round != "Semifinal 2ª Div" {
		t.Fatalf("second division = %+v", second)
	}
	if c.TotalMatches != 16 {
		t.Fatalf("total = %d, want 16", c.TotalMatches)
	}
	checkCounters(t, c)

	losers := map[string]bool{}
	for _, m := range semis {
		losers[m.Player2ID] = true
		if c, err = f.svc.SubmitResult(ctx, c.ID, straightWin(m)); err != nil {
			t.Fatalf("semifinal result: %v", err)
		}
	}
	checkCounters(t, c)
	if c.TotalMatches != 18 {
		t.Fatalf("total = %d, want 18 after final and third place", c.TotalMatches)
	}

	var final, third *models.Match
	for _, m := range c.BracketMatches(models.BracketMain) {
		if m.Stage != models.StageFinal {
			continue
		}
		if m.IsThirdPlace {
			third = m
		} else {
			final = m
		}
	}
	if final == nil || third == nil {
		t.Fatal("final and third-place match expected")
	}
	if !losers[third.Player1ID] || !losers[third.Player2ID] {
		t.Fatalf("third place %s vs %s is not made of semifinal losers", third.Player1ID, third.Player2ID)
	}
	if third.Round != "3º Lugar" {
		t.Fatalf("third place round = %q", third.Round)
	}

	if _, err := f.svc.SubmitResult(ctx, c.ID, straightWin(semis[0])); !errors.Is(err, ErrMatchLocked) {
		t.Fatalf("editing a decided semifinal err = %v, want ErrMatchLocked", err)
	}

	c, err = f.svc.SubmitResult(ctx, c.ID, straightWin(final))
	if err != nil {
		t.Fatalf("final result: %v", err)
	}
	if c.Status != models.StatusCompleted {
		t.Fatalf("status = %s, want completed", c.Status)
	}
	if c.ArchiveURL == nil || f.archiver.calls != 1 {
		t.Fatalf("archive not recorded: url=%v calls=%d", c.ArchiveURL, f.archiver.calls)
	}
	checkCounters(t, c)

	// The third place and the second division stay playable after completion.
	if c, err = f.svc.SubmitResult(ctx, c.ID, straightWin(third)); err != nil {
		t.Fatalf("third place after completion: %v", err)
	}
	if c.Status != models.StatusCompleted || f.archiver.calls != 2 {
		t.Fatalf("status=%s archive calls=%d", c.Status, f.archiver.calls)
	}

	if _, err := f.svc.SubmitResult(ctx, c.ID, straightWin(final)); !errors.Is(err, ErrMatchLocked) {
		t.Fatalf("editing the decided final err = %v, want ErrMatchLocked", err)
	}

	stored, err := f.svc.GetChampionship(ctx, c.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Status != models.StatusCompleted || stored.CompletedMatches != c.CompletedMatches {
		t.Fatalf("stored championship differs: %s %d", stored.Status, stored.CompletedMatches)
	}
	if f.notifier.count() == 0 {
		t.Fatal("no updates were published")
	}
}

func TestInvalidResultLeavesChampionshipUntouched(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.setupChampionship(t, 4)
	c, err := f.svc.GenerateGroups(ctx, c.ID)
	if err != nil {
		t.Fatal(err)
	}
	m := c.Groups[0].Matches[0]
	before := f.notifier.count()

	_, err = f.svc.SubmitResult(ctx, c.ID, models.MatchResult{
		MatchID: m.ID,
		Sets:    []models.SetResult{{Player1Score: 11, Player2Score: 9}, {Player1Score: 11, Player2Score: 10}},
	})
	var verr *ValidationError
	if !errors.As(err, &verr) || !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if _, ok := verr.Errors["sets[1]"]; !ok {
		t.Fatalf("errors = %v, want sets[1]", verr.Errors)
	}

	stored, _ := f.svc.GetChampionship(ctx, c.ID)
	sm, _ := stored.FindMatch(m.ID)
	if len(sm.Sets) != 0 || sm.IsCompleted || !stored.UpdatedAt.Equal(c.UpdatedAt) {
		t.Fatalf("match changed after rejected result: %+v", sm)
	}
	if f.notifier.count() != before {
		t.Fatal("rejected result was published")
	}
}

func TestSubmitResultModes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.setupChampionship(t, 4)
	c, err := f.svc.GenerateGroups(ctx, c.ID)
	if err != nil {
		t.Fatal(err)
	}
	m := c.Groups[0].Matches[0]

	t.Run("live scoring keeps the match open", func(t *testing.T) {
		c, err := f.svc.SubmitResult(ctx, c.ID, models.MatchResult{
			MatchID:  m.ID,
			Sets:     []models.SetResult{{Player1Score: 9, Player2Score: 11}},
			Timeouts: &models.Timeouts{Player1: true},
		})
		if err != nil {
			t.Fatal(err)
		}
		got, _ := c.FindMatch(m.ID)
		if got.IsCompleted || got.WinnerID != "" || len(got.Sets) != 1 || !got.TimeoutsUsed.Player1 {
			t.Fatalf("partial result applied wrong: %+v", got)
		}
		if c.CompletedMatches != 0 {
			t.Fatalf("completed = %d", c.CompletedMatches)
		}
	})

	t.Run("walkover decides the match", func(t *testing.T) {
		c, err := f.svc.SubmitResult(ctx, c.ID, models.MatchResult{
			MatchID:          m.ID,
			IsWalkover:       true,
			WalkoverWinnerID: m.Player2ID,
		})
		if err != nil {
			t.Fatal(err)
		}
		got, g := c.FindMatch(m.ID)
		if !got.IsCompleted || got.WinnerID != m.Player2ID || len(got.Sets) != 0 {
			t.Fatalf("walkover applied wrong: %+v", got)
		}
		if g.Standings[0].AthleteID != m.Player2ID || g.Standings[0].Points != 3 {
			t.Fatalf("standings not refreshed: %+v", g.Standings[0])
		}
	})

	t.Run("walkover winner must play the match", func(t *testing.T) {
		_, err := f.svc.SubmitResult(ctx, c.ID, models.MatchResult{MatchID: m.ID, IsWalkover: true, WalkoverWinnerID: "stranger"})
		if !errors.Is(err, ErrValidationFailed) {
			t.Fatalf("err = %v", err)
		}
	})

	t.Run("unknown match", func(t *testing.T) {
		_, err := f.svc.SubmitResult(ctx, c.ID, models.MatchResult{MatchID: "missing"})
		if !errors.Is(err, ErrMatchNotFound) {
			t.Fatalf("err = %v", err)
		}
	})

	t.Run("unknown championship", func(t *testing.T) {
		_, err := f.svc.SubmitResult(ctx, "missing", straightWin(m))
		if !errors.Is(err, ErrChampionshipNotFound) {
			t.Fatalf("err = %v", err)
		}
	})
}

func TestCreateChampionshipValidatesConfig(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.CreateChampionship(context.Background(), CreateChampionshipInput{
		Name: " ",
		Config: models.Config{
			GroupSize:                  6,
			QualificationSpotsPerGroup: 6,
			GroupsBestOf:               7,
			KnockoutBestOf:             4,
		},
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want validation error", err)
	}
	for _, key := range []string{"name", "config.group_size", "config.qualification_spots_per_group", "config.groups_best_of", "config.knockout_best_of"} {
		if _, ok := verr.Errors[key]; !ok {
			t.Errorf("missing error for %s in %v", key, verr.Errors)
		}
	}
	if list, _ := f.svc.ListChampionships(context.Background(), repositories.ListChampionshipsFilter{}); len(list) != 0 {
		t.Fatal("invalid championship was stored")
	}
}

func TestRosterRules(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.setupChampionship(t, 3)

	tests := []struct {
		name  string
		input AthleteInput
		field string
	}{
		{"missing name", AthleteInput{}, "name"},
		{"seeded without number", AthleteInput{Name: "X", IsSeeded: true}, "seed_number"},
		{"duplicate seed", AthleteInput{Name: "X", IsSeeded: true, SeedNumber: seedNumber(1)}, "seed_number"},
		{"seed below one", AthleteInput{Name: "X", IsSeeded: true, SeedNumber: seedNumber(0)}, "seed_number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.AddAthlete(ctx, c.ID, tt.input)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v", err)
			}
			if _, ok := verr.Errors[tt.field]; !ok {
				t.Fatalf("errors = %v, want %s", verr.Errors, tt.field)
			}
		})
	}

	stored, _ := f.svc.GetChampionship(ctx, c.ID)
	if stored.TotalAthletes() != 3 {
		t.Fatalf("athletes = %d, want 3", stored.TotalAthletes())
	}

	a := stored.Athletes[2]
	updated, err := f.svc.UpdateAthlete(ctx, c.ID, a.ID, AthleteInput{Name: "Renamed", IsSeeded: true, SeedNumber: seedNumber(3)})
	if err != nil || updated.Name != "Renamed" || updated.Seed() != 3 {
		t.Fatalf("update = %+v, %v", updated, err)
	}
	if err := f.svc.RemoveAthlete(ctx, c.ID, "missing"); !errors.Is(err, ErrAthleteNotFound) {
		t.Fatalf("remove missing err = %v", err)
	}
	if err := f.svc.RemoveAthlete(ctx, c.ID, a.ID); err != nil {
		t.Fatal(err)
	}

	if _, err := f.svc.GenerateGroups(ctx, c.ID); err != nil {
		t.Fatalf("generate groups: %v", err)
	}
	if _, err := f.svc.AddAthlete(ctx, c.ID, AthleteInput{Name: "Late"}); !errors.Is(err, ErrRosterLocked) {
		t.Fatalf("late add err = %v, want ErrRosterLocked", err)
	}
	if _, err := f.svc.GenerateGroups(ctx, c.ID); !errors.Is(err, ErrInvalidStatusTransition) {
		t.Fatalf("second generation err = %v", err)
	}
}

func TestGenerateGroupsRequiresDenseSeeds(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.setupChampionship(t, 4)
	a := c.ID
	stored, _ := f.svc.GetChampionship(ctx, a)
	if _, err := f.svc.UpdateAthlete(ctx, a, stored.Athletes[1].ID, AthleteInput{Name: "Gap", IsSeeded: true, SeedNumber: seedNumber(5)}); err != nil {
		t.Fatal(err)
	}
	_, err := f.svc.GenerateGroups(ctx, a)
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Errors["seeds"] == "" {
		t.Fatalf("err = %v, want seeds validation", err)
	}
}

func TestManualGroups(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.setupChampionship(t, 5)
	stored, _ := f.svc.GetChampionship(ctx, c.ID)
	ids := make([]string, 0, 5)
	for _, a := range stored.Athletes {
		ids = append(ids, a.ID)
	}

	_, err := f.svc.SetManualGroups(ctx, c.ID, ManualGroupsInput{Groups: [][]string{ids[:1], ids[1:]}})
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("one-member group err = %v", err)
	}

	c, err = f.svc.SetManualGroups(ctx, c.ID, ManualGroupsInput{Groups: [][]string{ids[:2], ids[2:]}})
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Groups) != 2 || len(c.Groups[0].Matches) != 1 || len(c.Groups[1].Matches) != 3 || c.TotalMatches != 4 {
		t.Fatalf("groups = %d, total = %d", len(c.Groups), c.TotalMatches)
	}
	if c.Groups[0].QualificationSpots != 1 {
		t.Fatalf("spots = %d, want capped at 1", c.Groups[0].QualificationSpots)
	}

	standings, err := f.svc.GetGroupStandings(ctx, c.ID, c.Groups[1].ID)
	if err != nil || len(standings) != 3 {
		t.Fatalf("standings = %v, %v", standings, err)
	}
	if _, err := f.svc.GetGroupStandings(ctx, c.ID, "missing"); !errors.Is(err, ErrGroupNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestGroupResultsCloseWithKnockout(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.setupChampionship(t, 4)
	c, _ = f.svc.GenerateGroups(ctx, c.ID)
	var err error
	for _, g := range c.Groups {
		for _, m := range g.Matches {
			if c, err = f.svc.SubmitResult(ctx, c.ID, straightWin(m)); err != nil {
				t.Fatal(err)
			}
		}
	}
	if c, err = f.svc.GenerateKnockout(ctx, c.ID); err != nil {
		t.Fatal(err)
	}
	// A single group of four sends two athletes through, so the main
	// bracket of four holds two byes and goes straight to the final.
	mainMatches := c.BracketMatches(models.BracketMain)
	if len(playable(mainMatches, models.StageFinal)) != 1 {
		t.Fatalf("main bracket = %+v", mainMatches)
	}
	checkCounters(t, c)

	m := c.Groups[0].Matches[0]
	if _, err := f.svc.SubmitResult(ctx, c.ID, straightWin(m)); !errors.Is(err, ErrMatchLocked) {
		t.Fatalf("err = %v, want ErrMatchLocked", err)
	}
	if _, err := f.svc.GenerateKnockout(ctx, c.ID); !errors.Is(err, ErrInvalidStatusTransition) {
		t.Fatalf("second knockout err = %v", err)
	}
}

func TestResetKeepsRosterAndConfig(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.setupChampionship(t, 6)
	c, _ = f.svc.GenerateGroups(ctx, c.ID)
	if _, err := f.svc.SubmitResult(ctx, c.ID, straightWin(c.Groups[0].Matches[0])); err != nil {
		t.Fatal(err)
	}

	c, err := f.svc.Reset(ctx, c.ID)
	if err != nil {
		t.Fatal(err)
	}
	if c.Status != models.StatusCreated || len(c.Groups) != 0 || len(c.Knockout) != 0 {
		t.Fatalf("reset left state behind: %+v", c)
	}
	if c.TotalMatches != 0 || c.CompletedMatches != 0 {
		t.Fatalf("counters = %d/%d", c.CompletedMatches, c.TotalMatches)
	}
	if c.TotalAthletes() != 6 || c.Config != defaultConfig() {
		t.Fatal("roster or config lost")
	}
	if _, err := f.svc.GenerateGroups(ctx, c.ID); err != nil {
		t.Fatalf("groups after reset: %v", err)
	}
}

func TestArchiveFailureDoesNotBlockCompletion(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.archiver.err = errors.New("bucket down")
	c := f.setupChampionship(t, 4)
	c, _ = f.svc.GenerateGroups(ctx, c.ID)
	var err error
	for _, g := range c.Groups {
		for _, m := range g.Matches {
			c, _ = f.svc.SubmitResult(ctx, c.ID, straightWin(m))
		}
	}
	c, _ = f.svc.GenerateKnockout(ctx, c.ID)
	final := playable(c.BracketMatches(models.BracketMain), models.StageFinal)[0]
	if c, err = f.svc.SubmitResult(ctx, c.ID, straightWin(final)); err != nil {
		t.Fatal(err)
	}
	if c.Status != models.StatusCompleted || c.ArchiveURL != nil {
		t.Fatalf("status=%s archive=%v", c.Status, c.ArchiveURL)
	}
}

type failingUpdateRepository struct {
	repositories.ChampionshipRepository
	fail bool
}

func (r *failingUpdateRepository) Update(ctx context.Context, c *models.Championship) error {
	if r.fail {
		return errors.New("connection reset")
	}
	return r.ChampionshipRepository.Update(ctx, c)
}

func TestArchiveRunsOnlyAfterSave(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	repo := &failingUpdateRepository{ChampionshipRepository: f.repo}
	f.svc = NewChampionshipService(repo, f.notifier, f.archiver, nil, WithClock(func() time.Time { return testNow }))

	c := f.setupChampionship(t, 4)
	c, _ = f.svc.GenerateGroups(ctx, c.ID)
	for _, g := range c.Groups {
		for _, m := range g.Matches {
			c, _ = f.svc.SubmitResult(ctx, c.ID, straightWin(m))
		}
	}
	c, _ = f.svc.GenerateKnockout(ctx, c.ID)
	final := playable(c.BracketMatches(models.BracketMain), models.StageFinal)[0]

	repo.fail = true
	if _, err := f.svc.SubmitResult(ctx, c.ID, straightWin(final)); err == nil {
		t.Fatal("expected the save error")
	}
	if f.archiver.calls != 0 {
		t.Fatalf("archived a snapshot that was never saved: %d calls", f.archiver.calls)
	}

	repo.fail = false
	if _, err := f.svc.SubmitResult(ctx, c.ID, straightWin(final)); err != nil {
		t.Fatal(err)
	}
	stored, err := f.svc.GetChampionship(ctx, c.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Status != models.StatusCompleted || stored.ArchiveURL == nil || f.archiver.calls != 1 {
		t.Fatalf("status=%s archive=%v calls=%d", stored.Status, stored.ArchiveURL, f.archiver.calls)
	}
}

func TestDeleteChampionship(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.setupChampionship(t, 2)
	if err := f.svc.DeleteChampionship(ctx, c.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.GetChampionship(ctx, c.ID); !errors.Is(err, ErrChampionshipNotFound) {
		t.Fatalf("err = %v", err)
	}
	if err := f.svc.DeleteChampionship(ctx, c.ID); !errors.Is(err, ErrChampionshipNotFound) {
		t.Fatalf("second delete err = %v", err)
	}
}
