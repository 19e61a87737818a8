package repo

import (
	"context"

	"github.com/cid-docencia/wa-responder/internal/biz/domain"
)

// ChatRepo is the per-sender conversation log interface.
// The log is append-only; Append and Recent are not atomic together.
type ChatRepo interface {
	// Append adds a message to the sender's log and returns its id
	Append(ctx context.Context, msg *domain.ChatMessage) (int64, error)

	// Recent returns the last n messages of a sender, oldest first
	Recent(ctx context.Context, phone string, n int) ([]domain.ChatMessage, error)

	// List returns the full log of a sender, oldest first
	List(ctx context.Context, phone string) ([]domain.ChatMessage, error)

	// ListAll returns every log keyed by sender
	ListAll(ctx context.Context) (map[string][]domain.ChatMessage, error)

	// Delete removes a sender's log
	Delete(ctx context.Context, phone string) error
}
