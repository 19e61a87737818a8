package repo

import (
	"context"
	"encoding/json"
	"time"
)

// Layout is the node arrangement saved by the rule editor
type Layout struct {
	NodePositions json.RawMessage `json:"nodePositions"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// LayoutRepo stores the editor layout
type LayoutRepo interface {
	// Get returns the layout, domain.ErrNotFound if none is saved
	Get(ctx context.Context) (*Layout, error)

	// Save replaces the layout
	Save(ctx context.Context, positions json.RawMessage) error
}
