package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cid-docencia/wa-responder/internal/biz/domain"
	"github.com/cid-docencia/wa-responder/internal/biz/repo"
)

// ErrAppNotConfigured is returned when app id or secret is missing
var ErrAppNotConfigured = errors.New("facebook app id or app secret not configured")

// TokenStatus is the admin view of the stored access token
type TokenStatus struct {
	AccessToken  string     `json:"accessToken"`
	UpdatedAt    *time.Time `json:"updatedAt"`
	NeedsRefresh bool       `json:"needsRefresh"`
	ExpiresAt    *time.Time `json:"expiresAt"`
}

// TokenUsecase keeps the Graph API access token alive
type TokenUsecase struct {
	settingsRepo repo.SettingsRepo
	exchanger    repo.TokenExchanger
	log          *slog.Logger
	now          func() time.Time
}

// NewTokenUsecase creates a new token usecase
func NewTokenUsecase(settingsRepo repo.SettingsRepo, exchanger repo.TokenExchanger, log *slog.Logger) *TokenUsecase {
	if log == nil {
		log = slog.Default()
	}
	return &TokenUsecase{
		settingsRepo: settingsRepo,
		exchanger:    exchanger,
		log:          log.With("component", "usecase.token"),
		now:          time.Now,
	}
}

// RefreshIfNeeded exchanges the token once it is older than the refresh interval.
// It reports whether a new token was stored.
func (uc *TokenUsecase) RefreshIfNeeded(ctx context.Context) (bool, error) {
	settings, err := uc.settingsRepo.Get(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load settings: %w", err)
	}

	if !settings.AccessToken.NeedsRefresh(uc.now()) {
		return false, nil
	}
	uc.log.Info("Access token needs refreshing", "updated_at", settings.AccessToken.UpdatedAt)

	if !settings.CanExchangeToken() {
		uc.log.Warn("Missing app credentials for token refresh")
		return false, nil
	}

	token, err := uc.exchanger.ExchangeToken(ctx, settings.AppID, settings.AppSecret, settings.AccessToken.Token)
	if err != nil {
		return false, fmt.Errorf("exchange token: %w", err)
	}
	if token == "" {
		return false, nil
	}

	if err := uc.SetAccessToken(ctx, token); err != nil {
		return false, err
	}
	uc.log.Info("Access token refreshed")
	return true, nil
}

// ExchangeShortLived trades a short-lived user token for a long-lived one
func (uc *TokenUsecase) ExchangeShortLived(ctx context.Context, shortLived string) (string, error) {
	if shortLived == "" {
		return "", fmt.Errorf("%w: short-lived token is required", domain.ErrInvalidArgument)
	}

	appID, err := uc.settingsRepo.GetString(ctx, repo.SettingAppID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return "", err
	}
	appSecret, err := uc.settingsRepo.GetString(ctx, repo.SettingAppSecret)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return "", err
	}
	if appID == "" || appSecret == "" {
		return "", ErrAppNotConfigured
	}

	return uc.exchanger.ExchangeToken(ctx, appID, appSecret, shortLived)
}

// SetAccessToken stores a token stamped with the current time
func (uc *TokenUsecase) SetAccessToken(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("%w: access token is required", domain.ErrInvalidArgument)
	}
	err := uc.settingsRepo.SetAccessToken(ctx, &domain.AccessToken{Token: token, UpdatedAt: uc.now()})
	if err != nil {
		return fmt.Errorf("save access token: %w", err)
	}
	return nil
}

// Status returns the stored token with its refresh state
func (uc *TokenUsecase) Status(ctx context.Context) (*TokenStatus, error) {
	tok, err := uc.settingsRepo.GetAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	status := &TokenStatus{
		AccessToken:  tok.Token,
		NeedsRefresh: tok.NeedsRefresh(uc.now()),
		ExpiresAt:    tok.ExpiresAt(),
	}
	if !tok.UpdatedAt.IsZero() {
		updated := tok.UpdatedAt
		status.UpdatedAt = &updated
	}
	return status, nil
}
