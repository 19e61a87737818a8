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

// settingsRepo stores account settings as JSON values keyed by name
type settingsRepo struct {
	db *sql.DB
}

// NewSettingsRepo creates a new settings repository
func NewSettingsRepo(db *sql.DB) repo.SettingsRepo {
	return &settingsRepo{db: db}
}

func (r *settingsRepo) load(ctx context.Context, key string, v any) error {
	var raw string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to query setting %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("failed to decode setting %s: %w", key, err)
	}
	return nil
}

func (r *settingsRepo) store(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode setting %s: %w", key, err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO settings (key, value, updated_at) VALUES (?, ?, ?)
	`, key, string(raw), time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to save setting %s: %w", key, err)
	}
	return nil
}

// Get assembles all settings
func (r *settingsRepo) Get(ctx context.Context) (*domain.Settings, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	var settings domain.Settings
	found := false
	for rows.Next() {
		var key, raw string
		if err := rows.Scan(&key, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		found = true

		var target any
		switch key {
		case repo.SettingVerificationToken:
			target = &settings.VerificationToken
		case repo.SettingPhoneNumberID:
			target = &settings.PhoneNumberID
		case repo.SettingAccessToken:
			target = &settings.AccessToken
		case repo.SettingAppID:
			target = &settings.AppID
		case repo.SettingAppSecret:
			target = &settings.AppSecret
		case repo.SettingEmailsWhitelist:
			target = &settings.EmailsWhitelist
		default:
			continue
		}
		if err := json.Unmarshal([]byte(raw), target); err != nil {
			return nil, fmt.Errorf("failed to decode setting %s: %w", key, err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	if !found {
		return nil, domain.ErrNotFound
	}
	return &settings, nil
}

// GetString returns a string setting
func (r *settingsRepo) GetString(ctx context.Context, key string) (string, error) {
	var value string
	if err := r.load(ctx, key, &value); err != nil {
		return "", err
	}
	return value, nil
}

// SetString stores a string setting
func (r *settingsRepo) SetString(ctx context.Context, key, value string) error {
	return r.store(ctx, key, value)
}

// GetAccessToken returns the stored token
func (r *settingsRepo) GetAccessToken(ctx context.Context) (*domain.AccessToken, error) {
	var token domain.AccessToken
	if err := r.load(ctx, repo.SettingAccessToken, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

// SetAccessToken stores the token
func (r *settingsRepo) SetAccessToken(ctx context.Context, token *domain.AccessToken) error {
	return r.store(ctx, repo.SettingAccessToken, token)
}

// GetWhitelist returns the admin email whitelist, empty when unset
func (r *settingsRepo) GetWhitelist(ctx context.Context) ([]string, error) {
	var emails []string
	err := r.load(ctx, repo.SettingEmailsWhitelist, &emails)
	if errors.Is(err, domain.ErrNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	return emails, nil
}

// SetWhitelist replaces the admin email whitelist
func (r *settingsRepo) SetWhitelist(ctx context.Context, emails []string) error {
	if emails == nil {
		emails = []string{}
	}
	return r.store(ctx, repo.SettingEmailsWhitelist, emails)
}
