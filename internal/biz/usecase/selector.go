package usecase

import (
	"time"

	"github.com/cid-docencia/wa-responder/internal/biz/domain"
)

// Preambles are prepended to the default condition text
type Preambles struct {
	Welcome       string // Sent when a new session starts
	NotUnderstood string // Sent when nothing matched
}

// DefaultPreambles are used when no messages config is loaded
var DefaultPreambles = Preambles{
	Welcome: "¡Bienvenido/a al Centro de Investigación y Docencia (CID)! \n" +
		"Somos una institución dedicada a la formación de docentes. \n" +
		"¿En qué podemos ayudarte hoy? \n",
	NotUnderstood: "Lo siento, no entiendo tu mensaje. \n",
}

// Selection reasons
const (
	ReasonWelcome  = "welcome"
	ReasonButton   = "button"
	ReasonKeyword  = "keyword"
	ReasonFallback = "fallback"
)

// SelectRequest is the input of Select
type SelectRequest struct {
	Message    domain.InboundMessage
	Conditions domain.ConditionTable
	History    []domain.ChatMessage // Messages before Message, oldest first
	Policy     domain.SessionPolicy
	Preambles  Preambles
	Now        time.Time
}

// Decision is the reply chosen for one inbound message
type Decision struct {
	ConditionID string // Attribution stored with the bot message
	Reason      string
	Text        string
	Payload     *domain.OutboundMessage
}

// Select picks at most one reply for an inbound message.
// Order: session welcome, button reply, keyword match, fallback.
func Select(req SelectRequest) *Decision {
	to := req.Message.From
	def := req.Conditions.Default()

	policy := req.Policy
	if policy == nil {
		policy = domain.TwoMessageLookback{}
	}

	if def != nil && policy.ShouldSendDefault(req.History, req.Now) {
		return render(to, def, req.Preambles.Welcome, ReasonWelcome)
	}

	if req.Message.IsButtonReply() {
		if c := req.Conditions.Get(req.Message.ButtonPayload); c != nil {
			return render(to, c, "", ReasonButton)
		}
	}

	if c := req.Conditions.MatchKeyword(req.Message.Text); c != nil {
		return render(to, c, "", ReasonKeyword)
	}

	if def != nil {
		return render(to, def, req.Preambles.NotUnderstood, ReasonFallback)
	}

	return nil
}

func render(to string, c *domain.Condition, preamble, reason string) *Decision {
	text := preamble + c.Text
	return &Decision{
		ConditionID: c.ID,
		Reason:      reason,
		Text:        text,
		Payload:     domain.RenderCondition(to, text, c),
	}
}
