package domain

import (
	"testing"
	"time"
)

func TestAccessToken_NeedsRefresh(t *testing.T) {
	now := time.Now()

	fresh := &AccessToken{Token: "t", UpdatedAt: now.Add(-24 * time.Hour)}
	if fresh.NeedsRefresh(now) {
		t.Error("Expected day-old token not to need refresh")
	}

	stale := &AccessToken{Token: "t", UpdatedAt: now.Add(-31 * 24 * time.Hour)}
	if !stale.NeedsRefresh(now) {
		t.Error("Expected 31-day-old token to need refresh")
	}

	unknown := &AccessToken{Token: "t"}
	if unknown.NeedsRefresh(now) {
		t.Error("Expected token without update time not to be refreshed")
	}
}

func TestAccessToken_ExpiresAt(t *testing.T) {
	updated := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tok := &AccessToken{Token: "t", UpdatedAt: updated}

	exp := tok.ExpiresAt()
	if exp == nil || !exp.Equal(updated.Add(60*24*time.Hour)) {
		t.Errorf("Unexpected expiry %v", exp)
	}
	if (&AccessToken{}).ExpiresAt() != nil {
		t.Error("Expected nil expiry without update time")
	}
}

func TestSettings_CanSend(t *testing.T) {
	s := &Settings{PhoneNumberID: "123"}
	if s.CanSend() {
		t.Error("Expected CanSend to require an access token")
	}
	s.AccessToken.Token = "tok"
	if !s.CanSend() {
		t.Error("Expected CanSend with phone number id and token")
	}
}
