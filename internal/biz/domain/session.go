package domain

import "time"

// SessionWindow is the idle period after which a returning sender is greeted again
const SessionWindow = 12 * time.Hour

// SessionPolicy decides whether the welcome (default) reply is due.
// history holds the messages that precede the current inbound message,
// oldest first.
type SessionPolicy interface {
	ShouldSendDefault(history []ChatMessage, now time.Time) bool
}

// TwoMessageLookback inspects the last two messages of the history.
// The default is sent when there is no history, when no bot or operator
// message is among the last two, or when the latest bot message was not
// the default one and the window has passed since the later of the latest
// user and bot messages. A lone operator message opens a session, so the
// sender's answer to it is not greeted.
type TwoMessageLookback struct {
	Window time.Duration
}

// ShouldSendDefault implements SessionPolicy
func (p TwoMessageLookback) ShouldSendDefault(history []ChatMessage, now time.Time) bool {
	if len(history) == 0 {
		return true
	}

	recent := make([]ChatMessage, min(len(history), 2))
	copy(recent, history[len(history)-len(recent):])
	SortByTimestamp(recent)

	lastUser := LastUser(recent)
	lastBot := LastBot(recent)
	if lastBot == nil {
		return true
	}
	if lastBot.ButtonID == DefaultConditionID {
		return false
	}

	latest := lastBot.Timestamp
	if lastUser != nil && lastUser.Timestamp.After(latest) {
		latest = lastUser.Timestamp
	}
	return now.Sub(latest) > p.window()
}

func (p TwoMessageLookback) window() time.Duration {
	if p.Window <= 0 {
		return SessionWindow
	}
	return p.Window
}

// SingleMessageLookback inspects only the most recent message.
// The default is suppressed when that message is a non-default bot reply
// sent within the window, and sent otherwise. A sender without history is
// a first contact and gets the default.
type SingleMessageLookback struct {
	Window time.Duration
}

// ShouldSendDefault implements SessionPolicy
func (p SingleMessageLookback) ShouldSendDefault(history []ChatMessage, now time.Time) bool {
	if len(history) == 0 {
		return true
	}

	last := history[len(history)-1]
	window := p.Window
	if window <= 0 {
		window = SessionWindow
	}

	if !last.IsUser && last.ButtonID != DefaultConditionID && now.Sub(last.Timestamp) <= window {
		return false
	}
	return true
}
