package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cid-docencia/wa-responder/internal/biz/domain"
	"github.com/cid-docencia/wa-responder/internal/biz/repo"
)

type layoutRepo struct {
	db *sql.DB
}

// NewLayoutRepo creates a new layout repository
func NewLayoutRepo(db *sql.DB) repo.LayoutRepo {
	return &layoutRepo{db: db}
}

func (r *layoutRepo) Get(ctx context.Context) (*repo.Layout, error) {
	var positions string
	var updatedAt int64
	err := r.db.QueryRowContext(ctx, `
		SELECT node_positions, updated_at FROM layout WHERE id = 1
	`).Scan(&positions, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query layout: %w", err)
	}
	return &repo.Layout{
		NodePositions: json.RawMessage(positions),
		UpdatedAt:     time.UnixMilli(updatedAt),
	}, nil
}

func (r *layoutRepo) Save(ctx context.Context, positions json.RawMessage) error {
	if !json.Valid(positions) {
		return fmt.Errorf("%w: node positions must be valid JSON", domain.ErrInvalidArgument)
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO layout (id, node_positions, updated_at) VALUES (1, ?, ?)
	`, string(positions), time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to save layout: %w", err)
	}
	return nil
}
