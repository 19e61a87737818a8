package repo

import (
	"context"

	"github.com/cid-docencia/wa-responder/internal/biz/domain"
)

// ConditionRepo is the rule table repository interface
type ConditionRepo interface {
	// List returns all conditions in table order
	List(ctx context.Context) (domain.ConditionTable, error)

	// Get returns a condition, domain.ErrNotFound if missing
	Get(ctx context.Context, id string) (*domain.Condition, error)

	// Put creates or replaces a condition, keeping its table position on replace
	Put(ctx context.Context, c *domain.Condition) error

	// Delete removes a condition, domain.ErrNotFound if missing
	Delete(ctx context.Context, id string) error
}
