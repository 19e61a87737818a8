package domain

import "time"

// BotStatus is a per-sender override that disables automated replies
type BotStatus struct {
	Phone      string
	Enabled    bool
	Expiration *time.Time // nil means the override does not expire
	UpdatedAt  time.Time
	UpdatedBy  string
}

// Resolve returns the effective enabled flag at now.
// expired is true when a disablement has run out and must be reverted
// by the caller.
func (s *BotStatus) Resolve(now time.Time) (enabled bool, expired bool) {
	if s == nil || s.Enabled {
		return true, false
	}
	if s.Expiration != nil && s.Expiration.Before(now) {
		return true, true
	}
	return false, false
}

// ExpiresIn returns the remaining disablement duration, nil when enabled
// or when the disablement has no expiration
func (s *BotStatus) ExpiresIn(now time.Time) *time.Duration {
	enabled, _ := s.Resolve(now)
	if enabled || s.Expiration == nil {
		return nil
	}
	d := s.Expiration.Sub(now)
	return &d
}

// Reenable clears the disablement
func (s *BotStatus) Reenable(now time.Time) {
	s.Enabled = true
	s.Expiration = nil
	s.UpdatedAt = now
}
