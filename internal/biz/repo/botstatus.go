package repo

import (
	"context"

	"github.com/cid-docencia/wa-responder/internal/biz/domain"
)

// BotStatusRepo stores per-sender automation overrides
type BotStatusRepo interface {
	// Get returns the sender's status, nil when none is stored
	Get(ctx context.Context, phone string) (*domain.BotStatus, error)

	// Save creates or replaces the sender's status
	Save(ctx context.Context, status *domain.BotStatus) error
}
