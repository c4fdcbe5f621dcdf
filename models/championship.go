package models

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidStatusTransition = errors.New("invalid championship status transition")

// ChampionshipStatus only moves forward, except for an explicit reset.
type ChampionshipStatus string

const (
	StatusCreated   ChampionshipStatus = "created"
	StatusGroups    ChampionshipStatus = "groups"
	StatusKnockout  ChampionshipStatus = "knockout"
	StatusCompleted ChampionshipStatus = "completed"
)

var statusOrder = map[ChampionshipStatus]int{
	StatusCreated:   0,
	StatusGroups:    1,
	StatusKnockout:  2,
	StatusCompleted: 3,
}

// CanAdvanceTo reports whether next is exactly one step ahead of s.
func (s ChampionshipStatus) CanAdvanceTo(next ChampionshipStatus) bool {
	cur, ok := statusOrder[s]
	if !ok {
		return false
	}
	n, ok := statusOrder[next]
	return ok && n == cur+1
}

// Advance moves the championship one step forward in its lifecycle.
func (c *Championship) Advance(next ChampionshipStatus) error {
	if !c.Status.CanAdvanceTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, c.Status, next)
	}
	c.Status = next
	return nil
}

type Config struct {
	GroupSize                  int  `json:"group_size"`
	QualificationSpotsPerGroup int  `json:"qualification_spots_per_group"`
	GroupsBestOf               int  `json:"groups_best_of"`
	KnockoutBestOf             int  `json:"knockout_best_of"`
	HasThirdPlace              bool `json:"has_third_place"`
	HasRepechage               bool `json:"has_repechage"`
}

type Championship struct {
	ID               string             `json:"id" db:"id"`
	Name             string             `json:"name" db:"name"`
	Date             time.Time          `json:"date" db:"date"`
	Config           Config             `json:"config" db:"-"`
	Athletes         []*Athlete         `json:"athletes" db:"-"`
	Groups           []*Group           `json:"groups" db:"-"`
	Knockout         []*Match           `json:"knockout" db:"-"`
	Status           ChampionshipStatus `json:"status" db:"status"`
	TotalMatches     int                `json:"total_matches" db:"total_matches"`
	CompletedMatches int                `json:"completed_matches" db:"completed_matches"`
	ArchiveURL       *string            `json:"archive_url,omitempty" db:"archive_url"`
	CreatedAt        time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at" db:"updated_at"`
}

// TotalAthletes is always derived from the roster.
func (c *Championship) TotalAthletes() int {
	return len(c.Athletes)
}

func (c *Championship) Athlete(id string) *Athlete {
	for _, a := range c.Athletes {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// AllMatches returns group matches followed by knockout matches.
func (c *Championship) AllMatches() []*Match {
	var all []*Match
	for _, g := range c.Groups {
		all = append(all, g.Matches...)
	}
	return append(all, c.Knockout...)
}

// FindMatch returns the match and, for group matches, its owning group.
func (c *Championship) FindMatch(id string) (*Match, *Group) {
	for _, g := range c.Groups {
		for _, m := range g.Matches {
			if m.ID == id {
				return m, g
			}
		}
	}
	for _, m := range c.Knockout {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

// BracketMatches filters the knockout matches of one bracket.
func (c *Championship) BracketMatches(b Bracket) []*Match {
	var out []*Match
	for _, m := range c.Knockout {
		if m.Bracket == b {
			out = append(out, m)
		}
	}
	return out
}

// RecountMatches recomputes the counters from the live match list.
// Byes and matches without two distinct players are not counted.
func (c *Championship) RecountMatches() {
	total, completed := 0, 0
	for _, m := range c.AllMatches() {
		if !m.IsPlayable() {
			continue
		}
		total++
		if m.IsCompleted {
			completed++
		}
	}
	c.TotalMatches = total
	c.CompletedMatches = completed
}

// GroupsCompleted is true once every group has finished all its matches.
func (c *Championship) GroupsCompleted() bool {
	if len(c.Groups) == 0 {
		return false
	}
	for _, g := range c.Groups {
		if !g.IsCompleted {
			return false
		}
	}
	return true
}

// Reset drops all match and standing data, keeping roster and config.
func (c *Championship) Reset() {
	c.Groups = nil
	c.Knockout = nil
	c.Status = StatusCreated
	c.TotalMatches = 0
	c.CompletedMatches = 0
	c.ArchiveURL = nil
}
