package whatsapp

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/cid-docencia/wa-responder/internal/biz/domain"
)

// SignatureHeader carries the HMAC of the webhook body
const SignatureHeader = "X-Hub-Signature-256"

// WebhookPayload is the body Meta posts to the webhook
type WebhookPayload struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

type Entry struct {
	ID      string   `json:"id"`
	Changes []Change `json:"changes"`
}

type Change struct {
	Field string `json:"field"`
	Value Value  `json:"value"`
}

type Value struct {
	MessagingProduct string            `json:"messaging_product"`
	Metadata         Metadata          `json:"metadata"`
	Messages         []IncomingMessage `json:"messages,omitempty"`
}

type Metadata struct {
	DisplayPhoneNumber string `json:"display_phone_number"`
	PhoneNumberID      string `json:"phone_number_id"`
}

type IncomingMessage struct {
	From        string               `json:"from"`
	ID          string               `json:"id"`
	Timestamp   string               `json:"timestamp"`
	Type        string               `json:"type"`
	Text        *IncomingText        `json:"text,omitempty"`
	Interactive *IncomingInteractive `json:"interactive,omitempty"`
}

type IncomingText struct {
	Body string `json:"body"`
}

type IncomingInteractive struct {
	Type        string       `json:"type"`
	ButtonReply *ButtonReply `json:"button_reply,omitempty"`
}

type ButtonReply struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// InboundMessages returns the first message of every change.
// Changes without messages (status updates) are skipped. ReceivedAt is
// left zero so each message is stamped when it is handled.
func (p *WebhookPayload) InboundMessages() []domain.InboundMessage {
	var result []domain.InboundMessage
	for _, entry := range p.Entry {
		for _, change := range entry.Changes {
			if len(change.Value.Messages) == 0 {
				continue
			}
			m := change.Value.Messages[0]

			inbound := domain.InboundMessage{From: m.From}
			if m.Text != nil {
				inbound.Text = m.Text.Body
			}
			if m.Interactive != nil && m.Interactive.ButtonReply != nil {
				inbound.ButtonPayload = m.Interactive.ButtonReply.ID
			}
			result = append(result, inbound)
		}
	}
	return result
}

// VerifySignature checks an X-Hub-Signature-256 value against the body
func VerifySignature(body []byte, signature, appSecret string) bool {
	if !strings.HasPrefix(signature, "sha256=") {
		return false
	}
	expected, err := hex.DecodeString(strings.TrimPrefix(signature, "sha256="))
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(appSecret))
	mac.Write(body)
	return hmac.Equal(mac.Sum(nil), expected)
}

// Sign computes the X-Hub-Signature-256 value for a body
func Sign(body []byte, appSecret string) string {
	mac := hmac.New(sha256.New, []byte(appSecret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}
