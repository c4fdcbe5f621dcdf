package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Dosada05/tt-championship/models"
	"github.com/lib/pq"
)

var (
	ErrChampionshipNotFound = errors.New("championship not found")
	ErrChampionshipConflict = errors.New("championship already exists")
)

type ListChampionshipsFilter struct {
	Status *models.ChampionshipStatus
	Limit  int
	Offset int
}

// ChampionshipRepository persists whole championship aggregates.
type ChampionshipRepository interface {
	Create(ctx context.Context, c *models.Championship) error
	GetByID(ctx context.Context, id string) (*models.Championship, error)
	List(ctx context.Context, filter ListChampionshipsFilter) ([]*models.Championship, error)
	Update(ctx context.Context, c *models.Championship) error
	Delete(ctx context.Context, id string) error
}

const championshipsSchema = `
CREATE TABLE IF NOT EXISTS championships (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	status      TEXT NOT NULL,
	data        JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS championships_status_idx ON championships (status);`

// EnsureSchema creates the championships table when it does not exist.
func EnsureSchema(ctx context.Context, exec SQLExecutor) error {
	if _, err := exec.ExecContext(ctx, championshipsSchema); err != nil {
		return fmt.Errorf("failed to create championships schema: %w", err)
	}
	return nil
}

type postgresChampionshipRepository struct {
	db *sql.DB
}

// NewPostgresChampionshipRepository stores each championship as one JSONB
// document, with name and status copied into columns for listing.
func NewPostgresChampionshipRepository(db *sql.DB) ChampionshipRepository {
	return &postgresChampionshipRepository{db: db}
}

func (r *postgresChampionshipRepository) Create(ctx context.Context, c *models.Championship) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode championship %s: %w", c.ID, err)
	}
	query := `
		INSERT INTO championships (id, name, status, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err = r.db.ExecContext(ctx, query, c.ID, c.Name, c.Status, data, c.CreatedAt, c.UpdatedAt)
	return r.handleChampionshipError(err)
}

func (r *postgresChampionshipRepository) GetByID(ctx context.Context, id string) (*models.Championship, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx, `SELECT data FROM championships WHERE id = $1`, id).Scan(&data)
	if err != nil {
		return nil, r.handleChampionshipError(err)
	}
	return decodeChampionship(data)
}

func (r *postgresChampionshipRepository) List(ctx context.Context, filter ListChampionshipsFilter) ([]*models.Championship, error) {
	query := `SELECT data FROM championships WHERE ($1 = '' OR status = $1) ORDER BY created_at DESC, id`
	status := ""
	if filter.Status != nil {
		status = string(*filter.Status)
	}
	args := []interface{}{status}
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", len(args)+1)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list championships: %w", err)
	}
	defer rows.Close()

	var out []*models.Championship
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan championship: %w", err)
		}
		c, err := decodeChampionship(data)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate championships: %w", err)
	}
	return out, nil
}

func (r *postgresChampionshipRepository) Update(ctx context.Context, c *models.Championship) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode championship %s: %w", c.ID, err)
	}
	query := `
		UPDATE championships
		SET name = $2, status = $3, data = $4, updated_at = $5
		WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, c.ID, c.Name, c.Status, data, c.UpdatedAt)
	if err != nil {
		return r.handleChampionshipError(err)
	}
	return checkAffectedRows(result, ErrChampionshipNotFound)
}

func (r *postgresChampionshipRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM championships WHERE id = $1`, id)
	if err != nil {
		return r.handleChampionshipError(err)
	}
	return checkAffectedRows(result, ErrChampionshipNotFound)
}

func (r *postgresChampionshipRepository) handleChampionshipError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrChampionshipNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrChampionshipConflict
	}
	return fmt.Errorf("championship query failed: %w", err)
}

func decodeChampionship(data []byte) (*models.Championship, error) {
	var c models.Championship
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to decode championship: %w", err)
	}
	return &c, nil
}
