package repo

import (
	"context"

	"github.com/cid-docencia/wa-responder/internal/biz/domain"
)

// MessageSender delivers outbound messages.
// Implementations resolve the sender phone number id and access token.
type MessageSender interface {
	Send(ctx context.Context, msg *domain.OutboundMessage) error
}

// TokenExchanger trades an access token for a long-lived one
type TokenExchanger interface {
	ExchangeToken(ctx context.Context, appID, appSecret, token string) (string, error)
}
