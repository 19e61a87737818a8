package domain

import (
	"encoding/json"
	"sort"
	"time"
)

// ChatMessage is one entry of a sender's conversation log
type ChatMessage struct {
	ID        int64     `json:"id"`
	Phone     string    `json:"phoneNumber"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"-"`
	IsUser    bool      `json:"isUser"`
	IsAdmin   bool      `json:"isAdmin,omitempty"`
	ButtonID  string    `json:"buttonId,omitempty"` // Condition that produced it, or button the user pressed
}

// TimestampMillis returns the timestamp as epoch milliseconds
func (m *ChatMessage) TimestampMillis() int64 {
	return m.Timestamp.UnixMilli()
}

// IsDefaultReply reports whether this is a bot message attributed to the default rule
func (m *ChatMessage) IsDefaultReply() bool {
	return !m.IsUser && m.ButtonID == DefaultConditionID
}

// MarshalJSON encodes the timestamp as epoch milliseconds
func (m ChatMessage) MarshalJSON() ([]byte, error) {
	type alias ChatMessage
	return json.Marshal(struct {
		alias
		Timestamp int64 `json:"timestamp"`
	}{alias(m), m.TimestampMillis()})
}

// SortByTimestamp orders messages oldest first, keeping insertion order on ties
func SortByTimestamp(messages []ChatMessage) {
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Timestamp.Before(messages[j].Timestamp)
	})
}

// LastUser returns the most recent user message, or nil
func LastUser(messages []ChatMessage) *ChatMessage {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].IsUser {
			return &messages[i]
		}
	}
	return nil
}

// LastBot returns the most recent non-user message, or nil
func LastBot(messages []ChatMessage) *ChatMessage {
	for i := len(messages) - 1; i >= 0; i-- {
		if !messages[i].IsUser {
			return &messages[i]
		}
	}
	return nil
}
