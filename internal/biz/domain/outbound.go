package domain

import "unicode/utf8"

// MaxButtonTitleLength is the longest button title WhatsApp accepts
const MaxButtonTitleLength = 20

// Outbound message types
const (
	MessageTypeText        = "text"
	MessageTypeInteractive = "interactive"
)

// OutboundMessage is the Cloud API send-message payload
type OutboundMessage struct {
	MessagingProduct string       `json:"messaging_product"`
	To               string       `json:"to"`
	Type             string       `json:"type"`
	Text             *TextBody    `json:"text,omitempty"`
	Interactive      *Interactive `json:"interactive,omitempty"`
}

// TextBody is the body of a text message
type TextBody struct {
	Body string `json:"body"`
}

// Interactive is a button message
type Interactive struct {
	Type   string            `json:"type"`
	Body   InteractiveBody   `json:"body"`
	Action InteractiveAction `json:"action"`
}

// InteractiveBody is the text shown above the buttons
type InteractiveBody struct {
	Text string `json:"text"`
}

// InteractiveAction holds the reply buttons
type InteractiveAction struct {
	Buttons []ReplyButton `json:"buttons"`
}

// ReplyButton is one button of an interactive message
type ReplyButton struct {
	Type  string     `json:"type"`
	Reply ReplyTitle `json:"reply"`
}

// ReplyTitle identifies a reply button
type ReplyTitle struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// NewTextMessage builds a plain text payload
func NewTextMessage(to, body string) *OutboundMessage {
	return &OutboundMessage{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             MessageTypeText,
		Text:             &TextBody{Body: body},
	}
}

// NewButtonMessage builds an interactive button payload.
// Titles longer than MaxButtonTitleLength characters are cut.
func NewButtonMessage(to, body string, buttons Buttons) *OutboundMessage {
	replies := make([]ReplyButton, 0, len(buttons))
	for _, btn := range buttons {
		replies = append(replies, ReplyButton{
			Type:  "reply",
			Reply: ReplyTitle{ID: btn.ID, Title: TruncateTitle(btn.Title)},
		})
	}

	return &OutboundMessage{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             MessageTypeInteractive,
		Interactive: &Interactive{
			Type:   "button",
			Body:   InteractiveBody{Text: body},
			Action: InteractiveAction{Buttons: replies},
		},
	}
}

// RenderCondition renders a condition reply with the given body text
func RenderCondition(to, body string, c *Condition) *OutboundMessage {
	if c.HasButtons() {
		return NewButtonMessage(to, body, c.Buttons)
	}
	return NewTextMessage(to, body)
}

// TruncateTitle cuts a button title to MaxButtonTitleLength characters
func TruncateTitle(title string) string {
	if utf8.RuneCountInString(title) <= MaxButtonTitleLength {
		return title
	}
	runes := []rune(title)
	return string(runes[:MaxButtonTitleLength])
}

// BodyText returns the visible text of the payload
func (m *OutboundMessage) BodyText() string {
	switch {
	case m.Text != nil:
		return m.Text.Body
	case m.Interactive != nil:
		return m.Interactive.Body.Text
	default:
		return ""
	}
}
