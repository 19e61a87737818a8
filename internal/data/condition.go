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

// conditionRepo implements the rule table repository
type conditionRepo struct {
	db *sql.DB
}

// NewConditionRepo creates a new condition repository
func NewConditionRepo(db *sql.DB) repo.ConditionRepo {
	return &conditionRepo{db: db}
}

func scanCondition(scan func(dest ...any) error) (*domain.Condition, error) {
	var c domain.Condition
	var buttons, keywords string
	if err := scan(&c.ID, &c.Text, &buttons, &keywords); err != nil {
		return nil, err
	}
	if buttons != "" {
		if err := json.Unmarshal([]byte(buttons), &c.Buttons); err != nil {
			return nil, fmt.Errorf("failed to decode buttons of %s: %w", c.ID, err)
		}
	}
	if keywords != "" {
		if err := json.Unmarshal([]byte(keywords), &c.Keywords); err != nil {
			return nil, fmt.Errorf("failed to decode keywords of %s: %w", c.ID, err)
		}
	}
	return &c, nil
}

// List returns all conditions in table order
func (r *conditionRepo) List(ctx context.Context) (domain.ConditionTable, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, text, buttons, keywords FROM conditions ORDER BY position, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list conditions: %w", err)
	}
	defer rows.Close()

	var table domain.ConditionTable
	for rows.Next() {
		c, err := scanCondition(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan condition: %w", err)
		}
		table = append(table, c)
	}
	return table, rows.Err()
}

// Get returns one condition
func (r *conditionRepo) Get(ctx context.Context, id string) (*domain.Condition, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, text, buttons, keywords FROM conditions WHERE id = ?
	`, id)
	c, err := scanCondition(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query condition: %w", err)
	}
	return c, nil
}

// Put creates or replaces a condition
func (r *conditionRepo) Put(ctx context.Context, c *domain.Condition) error {
	var buttons, keywords []byte
	var err error
	if len(c.Buttons) > 0 {
		if buttons, err = json.Marshal(c.Buttons); err != nil {
			return fmt.Errorf("failed to encode buttons: %w", err)
		}
	}
	if len(c.Keywords) > 0 {
		if keywords, err = json.Marshal(c.Keywords); err != nil {
			return fmt.Errorf("failed to encode keywords: %w", err)
		}
	}

	// New rows go to the end of the table; replaced rows keep their position
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO conditions (id, position, text, buttons, keywords, updated_at)
		VALUES (?, (SELECT COALESCE(MAX(position), -1) + 1 FROM conditions), ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			text = excluded.text,
			buttons = excluded.buttons,
			keywords = excluded.keywords,
			updated_at = excluded.updated_at
	`, c.ID, c.Text, string(buttons), string(keywords), time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to save condition: %w", err)
	}
	return nil
}

// Delete removes a condition
func (r *conditionRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM conditions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete condition: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete condition: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
