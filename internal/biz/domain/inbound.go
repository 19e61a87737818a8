package domain

import "time"

// InboundMessage is a normalized message received from the webhook
type InboundMessage struct {
	From          string
	Text          string
	ButtonPayload string // Id of the reply button the user tapped
	ReceivedAt    time.Time
}

// IsButtonReply reports whether the user tapped a reply button
func (m *InboundMessage) IsButtonReply() bool {
	return m.ButtonPayload != ""
}

// LogText is the text recorded in the chat history for this message
func (m *InboundMessage) LogText() string {
	if m.IsButtonReply() {
		return "Button: " + m.ButtonPayload
	}
	return m.Text
}

// ToChatMessage converts the inbound message into a history record
func (m *InboundMessage) ToChatMessage() ChatMessage {
	return ChatMessage{
		Phone:     m.From,
		Text:      m.LogText(),
		Timestamp: m.ReceivedAt,
		IsUser:    true,
		ButtonID:  m.ButtonPayload,
	}
}
