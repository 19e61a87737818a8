package repo

import (
	"context"

	"github.com/cid-docencia/wa-responder/internal/biz/domain"
)

// Setting keys
const (
	SettingVerificationToken = "verification_token"
	SettingPhoneNumberID     = "phone_number_id"
	SettingAccessToken       = "access_token"
	SettingAppID             = "app_id"
	SettingAppSecret         = "app_secret"
	SettingEmailsWhitelist   = "emails_whitelist"
)

// SettingsRepo stores the account configuration
type SettingsRepo interface {
	// Get assembles all settings, domain.ErrNotFound when nothing is stored
	Get(ctx context.Context) (*domain.Settings, error)

	// GetString returns a string setting, domain.ErrNotFound if missing
	GetString(ctx context.Context, key string) (string, error)

	// SetString stores a string setting
	SetString(ctx context.Context, key, value string) error

	// GetAccessToken returns the stored token, domain.ErrNotFound if missing
	GetAccessToken(ctx context.Context) (*domain.AccessToken, error)

	// SetAccessToken stores the token
	SetAccessToken(ctx context.Context, token *domain.AccessToken) error

	// GetWhitelist returns the admin email whitelist
	GetWhitelist(ctx context.Context) ([]string, error)

	// SetWhitelist replaces the admin email whitelist
	SetWhitelist(ctx context.Context, emails []string) error
}
