package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/Dosada05/tt-championship/models"
)

type memoryChampionshipRepository struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewMemoryChampionshipRepository keeps championships in process. Values are
// stored encoded so callers never share pointers with the store.
func NewMemoryChampionshipRepository() ChampionshipRepository {
	return &memoryChampionshipRepository{items: make(map[string][]byte)}
}

func (r *memoryChampionshipRepository) Create(ctx context.Context, c *models.Championship) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode championship %s: %w", c.ID, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[c.ID]; ok {
		return ErrChampionshipConflict
	}
	r.items[c.ID] = data
	return nil
}

func (r *memoryChampionshipRepository) GetByID(ctx context.Context, id string) (*models.Championship, error) {
	r.mu.RLock()
	data, ok := r.items[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrChampionshipNotFound
	}
	return decodeChampionship(data)
}

func (r *memoryChampionshipRepository) List(ctx context.Context, filter ListChampionshipsFilter) ([]*models.Championship, error) {
	r.mu.RLock()
	out := make([]*models.Championship, 0, len(r.items))
	for _, data := range r.items {
		c, err := decodeChampionship(data)
		if err != nil {
			r.mu.RUnlock()
			return nil, err
		}
		if filter.Status != nil && c.Status != *filter.Status {
			continue
		}
		out = append(out, c)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return []*models.Championship{}, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *memoryChampionshipRepository) Update(ctx context.Context, c *models.Championship) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode championship %s: %w", c.ID, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[c.ID]; !ok {
		return ErrChampionshipNotFound
	}
	r.items[c.ID] = data
	return nil
}

func (r *memoryChampionshipRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return ErrChampionshipNotFound
	}
	delete(r.items, id)
	return nil
}
