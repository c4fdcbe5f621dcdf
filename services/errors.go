package services

import (
	"errors"
	"sort"
	"strings"

	"github.com/Dosada05/tt-championship/models"
	"github.com/Dosada05/tt-championship/repositories"
)

var (
	ErrValidationFailed = errors.New("validation failed")

	ErrChampionshipNotFound = repositories.ErrChampionshipNotFound
	ErrMatchNotFound        = errors.New("match not found")
	ErrAthleteNotFound      = errors.New("athlete not found")
	ErrGroupNotFound        = errors.New("group not found")

	ErrInvalidStatusTransition = models.ErrInvalidStatusTransition
	ErrGroupsIncomplete        = errors.New("all group matches must be completed first")
	ErrMatchLocked             = errors.New("match result can no longer be changed")
	ErrRosterLocked            = errors.New("athletes can only change before groups are generated")
)

// ValidationError carries field-level messages. It matches
// ErrValidationFailed with errors.Is.
type ValidationError struct {
	Errors map[string]string
}

func newValidationError(errs map[string]string) error {
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Errors: errs}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Errors))
	for k := range e.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Errors[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}
