package domain

import "time"

const (
	// TokenRefreshInterval is the age after which the access token is exchanged again
	TokenRefreshInterval = 30 * 24 * time.Hour

	// TokenValidityPeriod is how long a long-lived token stays valid
	TokenValidityPeriod = 60 * 24 * time.Hour
)

// AccessToken is the Graph API bearer token and when it was stored
type AccessToken struct {
	Token     string    `json:"accessToken"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NeedsRefresh reports whether the token is older than the refresh interval.
// A token without a recorded update time is never refreshed.
func (t *AccessToken) NeedsRefresh(now time.Time) bool {
	if t == nil || t.Token == "" || t.UpdatedAt.IsZero() {
		return false
	}
	return now.Sub(t.UpdatedAt) > TokenRefreshInterval
}

// ExpiresAt returns the estimated expiry, nil when the update time is unknown
func (t *AccessToken) ExpiresAt() *time.Time {
	if t == nil || t.UpdatedAt.IsZero() {
		return nil
	}
	exp := t.UpdatedAt.Add(TokenValidityPeriod)
	return &exp
}

// Settings holds the WhatsApp Business account configuration
type Settings struct {
	VerificationToken string
	PhoneNumberID     string
	AccessToken       AccessToken
	AppID             string
	AppSecret         string
	EmailsWhitelist   []string
}

// CanSend reports whether outbound messages can be delivered
func (s *Settings) CanSend() bool {
	return s != nil && s.PhoneNumberID != "" && s.AccessToken.Token != ""
}

// CanExchangeToken reports whether app credentials for token exchange exist
func (s *Settings) CanExchangeToken() bool {
	return s != nil && s.AppID != "" && s.AppSecret != ""
}
