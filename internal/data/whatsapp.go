package data

import (
	"context"
	"fmt"

	"github.com/cid-docencia/wa-responder/internal/biz/domain"
	"github.com/cid-docencia/wa-responder/internal/biz/repo"
	"github.com/cid-docencia/wa-responder/internal/infra/whatsapp"
)

// whatsappRepo sends through the Graph API using the stored account settings
type whatsappRepo struct {
	client   *whatsapp.Client
	settings repo.SettingsRepo
}

// newWhatsAppRepo creates the outbound transport.
// Phone number id and token are read on every send so a refreshed token
// takes effect immediately.
func newWhatsAppRepo(client *whatsapp.Client, settings repo.SettingsRepo) *whatsappRepo {
	return &whatsappRepo{client: client, settings: settings}
}

// Send delivers a message from the configured business number
func (r *whatsappRepo) Send(ctx context.Context, msg *domain.OutboundMessage) error {
	phoneNumberID, err := r.settings.GetString(ctx, repo.SettingPhoneNumberID)
	if err != nil {
		return fmt.Errorf("failed to get phone number id: %w", err)
	}
	token, err := r.settings.GetAccessToken(ctx)
	if err != nil {
		return fmt.Errorf("failed to get access token: %w", err)
	}
	return r.client.SendMessage(ctx, phoneNumberID, token.Token, msg)
}

// ExchangeToken trades a token for a long-lived one
func (r *whatsappRepo) ExchangeToken(ctx context.Context, appID, appSecret, token string) (string, error) {
	return r.client.ExchangeToken(ctx, appID, appSecret, token)
}
