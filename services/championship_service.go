package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/Dosada05/tt-championship/logger"
	"github.com/Dosada05/tt-championship/models"
	"github.com/Dosada05/tt-championship/repositories"
	"github.com/google/uuid"
)

// Notifier is told about every persisted change of a championship.
type Notifier interface {
	ChampionshipUpdated(c *models.Championship)
}

// Archiver stores the final snapshot of a championship and returns where it
// can be downloaded.
type Archiver interface {
	Archive(ctx context.Context, c *models.Championship) (string, error)
}

type CreateChampionshipInput struct {
	Name   string        `json:"name"`
	Date   *time.Time    `json:"date,omitempty"`
	Config models.Config `json:"config"`
}

type ChampionshipService interface {
	CreateChampionship(ctx context.Context, input CreateChampionshipInput) (*models.Championship, error)
	GetChampionship(ctx context.Context, id string) (*models.Championship, error)
	ListChampionships(ctx context.Context, filter repositories.ListChampionshipsFilter) ([]*models.Championship, error)
	DeleteChampionship(ctx context.Context, id string) error
	Reset(ctx context.Context, id string) (*models.Championship, error)

	AddAthlete(ctx context.Context, championshipID string, input AthleteInput) (*models.Athlete, error)
	UpdateAthlete(ctx context.Context, championshipID, athleteID string, input AthleteInput) (*models.Athlete, error)
	RemoveAthlete(ctx context.Context, championshipID, athleteID string) error

	GenerateGroups(ctx context.Context, championshipID string) (*models.Championship, error)
	SetManualGroups(ctx context.Context, championshipID string, input ManualGroupsInput) (*models.Championship, error)
	GetGroupStandings(ctx context.Context, championshipID, groupID string) ([]*models.GroupStanding, error)

	SubmitResult(ctx context.Context, championshipID string, result models.MatchResult) (*models.Championship, error)
	GenerateKnockout(ctx context.Context, championshipID string) (*models.Championship, error)
}

type Option func(*championshipService)

// WithClock replaces time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *championshipService) { s.now = now }
}

// WithRand makes the second division draw use a source built by newRand.
func WithRand(newRand func() *rand.Rand) Option {
	return func(s *championshipService) { s.newRand = newRand }
}

type championshipService struct {
	repo     repositories.ChampionshipRepository
	notifier Notifier
	archiver Archiver
	log      *logger.Logger
	now      func() time.Time
	newRand  func() *rand.Rand
	locks    sync.Map // championship id -> *sync.Mutex
}

// NewChampionshipService wires the service. notifier and archiver are
// optional.
func NewChampionshipService(
	repo repositories.ChampionshipRepository,
	notifier Notifier,
	archiver Archiver,
	log *logger.Logger,
	opts ...Option,
) ChampionshipService {
	if log == nil {
		log = logger.Nop()
	}
	s := &championshipService{
		repo:     repo,
		notifier: notifier,
		archiver: archiver,
		log:      log,
		now:      time.Now,
		newRand:  func() *rand.Rand { return nil },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *championshipService) CreateChampionship(ctx context.Context, input CreateChampionshipInput) (*models.Championship, error) {
	name := strings.TrimSpace(input.Name)
	errs := validateConfig(input.Config)
	if name == "" {
		errs["name"] = "name is required"
	}
	if err := newValidationError(errs); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	date := now
	if input.Date != nil {
		date = *input.Date
	}
	c := &models.Championship{
		ID:        uuid.NewString(),
		Name:      name,
		Date:      date,
		Config:    input.Config,
		Athletes:  []*models.Athlete{},
		Groups:    []*models.Group{},
		Knockout:  []*models.Match{},
		Status:    models.StatusCreated,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create championship: %w", err)
	}
	s.log.Info("championship created", "championship_id", c.ID, "name", c.Name)
	return c, nil
}

func (s *championshipService) GetChampionship(ctx context.Context, id string) (*models.Championship, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *championshipService) ListChampionships(ctx context.Context, filter repositories.ListChampionshipsFilter) ([]*models.Championship, error) {
	list, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return []*models.Championship{}, nil
	}
	return list, nil
}

func (s *championshipService) DeleteChampionship(ctx context.Context, id string) error {
	unlock := s.lock(id)
	defer unlock()
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("championship deleted", "championship_id", id)
	return nil
}

// Reset drops groups, knockout and counters while keeping roster and config.
func (s *championshipService) Reset(ctx context.Context, id string) (*models.Championship, error) {
	return s.mutate(ctx, id, func(c *models.Championship, now time.Time) error {
		c.Reset()
		return nil
	})
}

func (s *championshipService) lock(id string) func() {
	mu, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

// mutate runs fn against a freshly loaded championship while holding its
// lock. Nothing is stored when fn fails, so errors never leave partial state.
func (s *championshipService) mutate(ctx context.Context, id string, fn func(c *models.Championship, now time.Time) error) (*models.Championship, error) {
	unlock := s.lock(id)
	defer unlock()

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	if err := fn(c, now); err != nil {
		return nil, err
	}
	c.RecountMatches()
	c.UpdatedAt = now

	if err := s.repo.Update(ctx, c); err != nil {
		s.log.Error("failed to persist championship", "championship_id", c.ID, "error", err)
		return nil, fmt.Errorf("failed to save championship %s: %w", c.ID, err)
	}
	if c.Status == models.StatusCompleted && s.archive(ctx, c) {
		if err := s.repo.Update(ctx, c); err != nil {
			s.log.Error("failed to record archive url", "championship_id", c.ID, "error", err)
		}
	}
	if s.notifier != nil {
		s.notifier.ChampionshipUpdated(c)
	}
	return c, nil
}

// archive uploads the saved final snapshot and reports whether ArchiveURL
// changed. Failures are logged and leave the previous archive URL in place.
func (s *championshipService) archive(ctx context.Context, c *models.Championship) bool {
	if s.archiver == nil {
		return false
	}
	url, err := s.archiver.Archive(ctx, c)
	if err != nil {
		s.log.Warn("failed to archive championship", "championship_id", c.ID, "error", err)
		return false
	}
	c.ArchiveURL = &url
	s.log.Info("championship archived", "championship_id", c.ID, "url", url)
	return true
}

func validateConfig(cfg models.Config) map[string]string {
	errs := make(map[string]string)
	if cfg.GroupSize < 3 || cfg.GroupSize > 5 {
		errs["config.group_size"] = "must be between 3 and 5"
	}
	if cfg.QualificationSpotsPerGroup < 1 {
		errs["config.qualification_spots_per_group"] = "must be at least 1"
	} else if cfg.QualificationSpotsPerGroup >= cfg.GroupSize {
		errs["config.qualification_spots_per_group"] = "must be smaller than the group size"
	}
	if cfg.GroupsBestOf != 3 && cfg.GroupsBestOf != 5 {
		errs["config.groups_best_of"] = "must be 3 or 5"
	}
	switch cfg.KnockoutBestOf {
	case 3, 5, 7:
	default:
		errs["config.knockout_best_of"] = "must be 3, 5 or 7"
	}
	return errs
}
