package domain

import (
	"testing"
	"time"
)

func userMsg(ts time.Time) ChatMessage {
	return ChatMessage{Phone: "5215550001", Text: "hola", Timestamp: ts, IsUser: true}
}

func botMsg(ts time.Time, buttonID string) ChatMessage {
	return ChatMessage{Phone: "5215550001", Text: "reply", Timestamp: ts, ButtonID: buttonID}
}

func TestTwoMessageLookback_NoHistory(t *testing.T) {
	p := TwoMessageLookback{}
	if !p.ShouldSendDefault(nil, time.Now()) {
		t.Error("Expected default for a sender without history")
	}
}

func TestTwoMessageLookback_SingleUserMessage(t *testing.T) {
	now := time.Now()
	p := TwoMessageLookback{}
	history := []ChatMessage{userMsg(now.Add(-time.Minute))}

	if !p.ShouldSendDefault(history, now) {
		t.Error("Expected default when the only prior message is from the user")
	}
}

func TestTwoMessageLookback_LoneOperatorMessage(t *testing.T) {
	now := time.Now()
	p := TwoMessageLookback{}

	recent := []ChatMessage{{Phone: "5215550001", Text: "Hola, te escribimos del CID", Timestamp: now.Add(-time.Hour), IsAdmin: true}}
	if p.ShouldSendDefault(recent, now) {
		t.Error("Expected no default when answering a recent operator message")
	}

	old := []ChatMessage{{Phone: "5215550001", Text: "Hola", Timestamp: now.Add(-13 * time.Hour), IsAdmin: true}}
	if !p.ShouldSendDefault(old, now) {
		t.Error("Expected default once the operator message is outside the window")
	}
}

func TestTwoMessageLookback_RecentNonDefaultReply(t *testing.T) {
	now := time.Now()
	p := TwoMessageLookback{}
	history := []ChatMessage{
		userMsg(now.Add(-2 * time.Hour)),
		botMsg(now.Add(-2*time.Hour+time.Second), "pricing"),
	}

	if p.ShouldSendDefault(history, now) {
		t.Error("Expected no default inside the session window")
	}
}

func TestTwoMessageLookback_WindowElapsed(t *testing.T) {
	now := time.Now()
	p := TwoMessageLookback{}
	history := []ChatMessage{
		userMsg(now.Add(-13 * time.Hour)),
		botMsg(now.Add(-13*time.Hour+time.Second), "pricing"),
	}

	if !p.ShouldSendDefault(history, now) {
		t.Error("Expected default after the session window elapsed")
	}
}

func TestTwoMessageLookback_LastReplyWasDefault(t *testing.T) {
	now := time.Now()
	p := TwoMessageLookback{}
	history := []ChatMessage{
		userMsg(now.Add(-48 * time.Hour)),
		botMsg(now.Add(-48*time.Hour+time.Second), DefaultConditionID),
	}

	if p.ShouldSendDefault(history, now) {
		t.Error("Expected no default right after a default reply")
	}
}

func TestTwoMessageLookback_TwoUserMessages(t *testing.T) {
	now := time.Now()
	p := TwoMessageLookback{}
	history := []ChatMessage{
		userMsg(now.Add(-2 * time.Minute)),
		userMsg(now.Add(-time.Minute)),
	}

	if !p.ShouldSendDefault(history, now) {
		t.Error("Expected default when no bot reply is in the lookback")
	}
}

func TestTwoMessageLookback_UsesLaterOfTheTwo(t *testing.T) {
	now := time.Now()
	p := TwoMessageLookback{Window: time.Hour}
	// Bot reply is old, but the user wrote again recently
	history := []ChatMessage{
		botMsg(now.Add(-3*time.Hour), "pricing"),
		userMsg(now.Add(-10 * time.Minute)),
	}

	if p.ShouldSendDefault(history, now) {
		t.Error("Expected the later user message to keep the session open")
	}
}

func TestTwoMessageLookback_OnlyLastTwoCount(t *testing.T) {
	now := time.Now()
	p := TwoMessageLookback{}
	history := []ChatMessage{
		botMsg(now.Add(-5*time.Hour), DefaultConditionID),
		userMsg(now.Add(-time.Hour)),
		botMsg(now.Add(-time.Hour+time.Second), "pricing"),
	}

	if p.ShouldSendDefault(history, now) {
		t.Error("Expected older messages to be ignored")
	}
}

func TestSingleMessageLookback(t *testing.T) {
	now := time.Now()
	p := SingleMessageLookback{}

	cases := []struct {
		name    string
		history []ChatMessage
		want    bool
	}{
		{"no history", nil, true},
		{"recent non-default reply", []ChatMessage{botMsg(now.Add(-time.Hour), "pricing")}, false},
		{"old non-default reply", []ChatMessage{botMsg(now.Add(-13*time.Hour), "pricing")}, true},
		{"recent default reply", []ChatMessage{botMsg(now.Add(-time.Hour), DefaultConditionID)}, true},
		{"last message from user", []ChatMessage{userMsg(now.Add(-time.Minute))}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := p.ShouldSendDefault(tc.history, now); got != tc.want {
				t.Errorf("ShouldSendDefault() = %v, want %v", got, tc.want)
			}
		})
	}
}
