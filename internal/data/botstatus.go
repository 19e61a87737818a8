package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cid-docencia/wa-responder/internal/biz/domain"
	"github.com/cid-docencia/wa-responder/internal/biz/repo"
)

// botStatusRepo implements the per-sender override repository
type botStatusRepo struct {
	db *sql.DB
}

// NewBotStatusRepo creates a new bot status repository
func NewBotStatusRepo(db *sql.DB) repo.BotStatusRepo {
	return &botStatusRepo{db: db}
}

// Get returns the sender's status, nil when none is stored
func (r *botStatusRepo) Get(ctx context.Context, phone string) (*domain.BotStatus, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT phone, enabled, expiration_ms, updated_at, updated_by
		FROM bot_status
		WHERE phone = ?
	`, phone)

	var status domain.BotStatus
	var enabled int
	var expiration sql.NullInt64
	var updatedAt int64
	err := row.Scan(&status.Phone, &enabled, &expiration, &updatedAt, &status.UpdatedBy)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query bot status: %w", err)
	}

	status.Enabled = enabled == 1
	status.UpdatedAt = time.UnixMilli(updatedAt)
	if expiration.Valid {
		exp := time.UnixMilli(expiration.Int64)
		status.Expiration = &exp
	}
	return &status, nil
}

// Save creates or replaces the sender's status
func (r *botStatusRepo) Save(ctx context.Context, status *domain.BotStatus) error {
	var expiration sql.NullInt64
	if status.Expiration != nil {
		expiration = sql.NullInt64{Int64: status.Expiration.UnixMilli(), Valid: true}
	}
	updatedAt := status.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO bot_status (phone, enabled, expiration_ms, updated_at, updated_by)
		VALUES (?, ?, ?, ?, ?)
	`, status.Phone, boolToInt(status.Enabled), expiration, updatedAt.UnixMilli(), status.UpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to save bot status: %w", err)
	}
	return nil
}
